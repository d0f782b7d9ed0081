package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasktracker/internal/cache"
	"tasktracker/internal/config"
	"tasktracker/internal/database"
	"tasktracker/internal/handlers"
	"tasktracker/internal/middleware"
	"tasktracker/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, relying on environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatalf("migrate database: %v", err)
	}

	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := services.NewAuthService()
	userService := services.NewUserService()

	var taskService services.TaskService = services.NewTaskService()
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache = cache.NewRedisCache(&cache.CacheConfig{
			Addr:         cfg.GetRedisAddr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err := redisCache.Health(); err != nil {
			logger.Warnf("redis unreachable, running without cache: %v", err)
			redisCache.Close()
			redisCache = nil
		} else {
			taskService = services.NewCachedTaskService(taskService, redisCache)
			defer redisCache.Close()
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.Use(middleware.RequestLogger(logger))
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(cfg.Server.CORSOrigins) == 1 && cfg.Server.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	router.Use(cors.New(corsCfg))

	authHandler := handlers.NewAuthHandler(db, userService, authService, tokenService)
	taskHandler := handlers.NewTaskHandler(db, taskService)
	handlers.RegisterRoutes(router, db, tokenService, authHandler, taskHandler, redisCache)

	srv := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
	}
	logger.Info("server exited")
}
