package handlers

import (
	"errors"
	"net/http"

	"tasktracker/internal/middleware"
	"tasktracker/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db           *gorm.DB
	userService  services.UserService
	authService  services.AuthService
	tokenService services.TokenService
}

func NewAuthHandler(db *gorm.DB, userService services.UserService, authService services.AuthService, tokenService services.TokenService) *AuthHandler {
	return &AuthHandler{
		db:           db,
		userService:  userService,
		authService:  authService,
		tokenService: tokenService,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the user summary returned by register and login. It
// never carries the password hash.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	user, err := h.userService.RegisterUser(h.db, req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "duplicate_email",
				"message": "User already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "registration_failed",
			"message": "failed to register user",
		})
		return
	}

	token, err := h.tokenService.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "token_generation_failed",
			"message": "failed to generate authentication token",
		})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	user, err := h.authService.LoginUser(h.db, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_credentials",
			"message": "Invalid email or password",
		})
		return
	}

	token, err := h.tokenService.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "token_generation_failed",
			"message": "failed to generate authentication token",
		})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "Not authorized"})
		return
	}

	var update services.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	updated, err := h.userService.UpdateProfile(h.db, user.ID, update)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "user_not_found",
				"message": "User not found",
			})
		case errors.Is(err, services.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "duplicate_email",
				"message": "User already exists",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "update_failed",
				"message": "failed to update profile",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    updated.ID.String(),
		"name":  updated.Name,
		"email": updated.Email,
	})
}

// DeleteAccount removes the user and cascades to every owned task.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "Not authorized"})
		return
	}

	if err := h.userService.DeleteAccount(h.db, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "delete_failed",
			"message": "failed to delete account",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User and all tasks deleted"})
}
