package services

import (
	"errors"

	"tasktracker/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 10

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func VerifyPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

type AuthService interface {
	LoginUser(db *gorm.DB, email, password string) (*models.User, error)
}

type AuthServiceImpl struct{}

func NewAuthService() *AuthServiceImpl {
	return &AuthServiceImpl{}
}

// LoginUser verifies the credentials against the stored hash. A missing
// user and a wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) LoginUser(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
