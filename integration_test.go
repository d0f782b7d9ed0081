package main

import (
	"os"
	"testing"
	"time"

	"tasktracker/internal/config"
	"tasktracker/internal/services"

	"github.com/gofrs/uuid"
)

func TestApplicationStartup(t *testing.T) {
	os.Setenv("ENVIRONMENT", "development")
	os.Setenv("DB_DRIVER", "sqlite")
	defer func() {
		os.Unsetenv("ENVIRONMENT")
		os.Unsetenv("DB_DRIVER")
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg == nil {
		t.Fatal("Configuration should not be nil")
	}

	t.Log("Application configuration loaded successfully")
}

func TestTokenRoundTripWithConfiguredTTL(t *testing.T) {
	os.Setenv("TOKEN_TTL", "720h")
	defer os.Unsetenv("TOKEN_TTL")

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Auth.TokenTTL != 30*24*time.Hour {
		t.Fatalf("Expected 30 day TTL, got %s", cfg.Auth.TokenTTL)
	}

	tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	userID := uuid.Must(uuid.NewV4())

	token, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	subject, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Failed to verify token: %v", err)
	}
	if subject != userID {
		t.Errorf("Expected subject %s, got %s", userID, subject)
	}
}
