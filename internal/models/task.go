package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Status      string     `json:"status" gorm:"not null;default:'Pending'"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ValidStatus reports whether s is one of the fixed task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// HasDueDate reports whether the task participates in date-based views.
func (t *Task) HasDueDate() bool {
	return t.DueDate != nil
}
