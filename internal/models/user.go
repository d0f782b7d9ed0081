package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name           string    `json:"name" gorm:"not null"`
	Email          string    `json:"email" gorm:"unique;not null"`
	Password       string    `json:"-" gorm:"not null"`
	ProfilePicture string    `json:"profile_picture"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:UserID"`
}
