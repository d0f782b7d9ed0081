package services

import (
	"errors"
	"strings"
	"time"

	"tasktracker/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

// TaskUpdate carries the optional task fields of a partial update.
// The owner is not part of it: ownership is immutable after creation.
type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	ClearDue    bool       `json:"clear_due_date"`
}

type TaskService interface {
	ListTasks(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error)
	ListTasksDueBetween(db *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]models.Task, error)
	CreateTask(db *gorm.DB, ownerID uuid.UUID, input TaskInput) (*models.Task, error)
	GetTask(db *gorm.DB, ownerID, taskID uuid.UUID) (*models.Task, error)
	UpdateTask(db *gorm.DB, ownerID, taskID uuid.UUID, update TaskUpdate) (*models.Task, error)
	DeleteTask(db *gorm.DB, ownerID, taskID uuid.UUID) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func (s *TaskServiceImpl) ListTasks(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	if err := db.Where("user_id = ?", ownerID).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListTasksDueBetween returns the owner's tasks with a due date inside
// [from, to). Tasks without a due date never appear in date-based views.
func (s *TaskServiceImpl) ListTasksDueBetween(db *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := db.Where("user_id = ? AND due_date IS NOT NULL AND due_date >= ? AND due_date < ?", ownerID, from, to).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, ownerID uuid.UUID, input TaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	status := input.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		DueDate:     input.DueDate,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask loads a task by id, hiding tasks of other owners behind
// ErrForbidden regardless of whether the id is known to the caller.
func (s *TaskServiceImpl) GetTask(db *gorm.DB, ownerID, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if task.UserID != ownerID {
		return nil, ErrForbidden
	}
	return &task, nil
}

func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, ownerID, taskID uuid.UUID, update TaskUpdate) (*models.Task, error) {
	// Ownership is checked before any field is merged.
	task, err := s.GetTask(db, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		if !models.ValidStatus(*update.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *update.Status
	}
	if update.ClearDue {
		task.DueDate = nil
	} else if update.DueDate != nil {
		task.DueDate = update.DueDate
	}

	if err := db.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, ownerID, taskID uuid.UUID) error {
	task, err := s.GetTask(db, ownerID, taskID)
	if err != nil {
		return err
	}
	return db.Delete(task).Error
}
