package services

import (
	"errors"

	"tasktracker/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type RegistrationRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// ProfileUpdate carries the optional profile fields. A nil field is
// left untouched; a supplied password is re-hashed before persistence.
type ProfileUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type UserService interface {
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.User, error)
	GetUserByID(db *gorm.DB, id uuid.UUID) (*models.User, error)
	UpdateProfile(db *gorm.DB, id uuid.UUID, update ProfileUpdate) (*models.User, error)
	DeleteAccount(db *gorm.DB, id uuid.UUID) error
}

type UserServiceImpl struct{}

func NewUserService() *UserServiceImpl {
	return &UserServiceImpl{}
}

func (s *UserServiceImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserServiceImpl) GetUserByID(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserServiceImpl) RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.User, error) {
	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, id uuid.UUID, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetUserByID(db, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != "" {
		user.Name = *update.Name
	}
	if update.Email != nil && *update.Email != "" && *update.Email != user.Email {
		var existing models.User
		if err := db.Where("email = ?", *update.Email).First(&existing).Error; err == nil {
			return nil, ErrDuplicateEmail
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *update.Email
	}
	if update.Password != nil && *update.Password != "" {
		hashed, err := HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user and cascades to every task the user
// owns. Both deletes happen in one transaction so a failure leaves no
// orphaned records.
func (s *UserServiceImpl) DeleteAccount(db *gorm.DB, id uuid.UUID) error {
	if _, err := s.GetUserByID(db, id); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}
