package services

import (
	"fmt"
	"time"

	"tasktracker/internal/cache"
	"tasktracker/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const taskListTTL = 15 * time.Minute

// CachedTaskService decorates a TaskService with a per-owner redis
// cache of the unfiltered list. Cache failures fall through to the
// store; they never surface to callers.
type CachedTaskService struct {
	taskService TaskService
	cache       *cache.RedisCache
}

func NewCachedTaskService(taskService TaskService, cacheInstance *cache.RedisCache) *CachedTaskService {
	return &CachedTaskService{
		taskService: taskService,
		cache:       cacheInstance,
	}
}

func ownerTasksKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("user_tasks:%s", ownerID.String())
}

func (s *CachedTaskService) invalidate(ownerID uuid.UUID) {
	s.cache.Delete(ownerTasksKey(ownerID))
}

func (s *CachedTaskService) ListTasks(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error) {
	var cached []models.Task
	if err := s.cache.Get(ownerTasksKey(ownerID), &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.taskService.ListTasks(db, ownerID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ownerTasksKey(ownerID), tasks, taskListTTL)
	return tasks, nil
}

// Due-window reads are not cached: the window is caller-chosen and the
// result set is already a small per-owner slice.
func (s *CachedTaskService) ListTasksDueBetween(db *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]models.Task, error) {
	return s.taskService.ListTasksDueBetween(db, ownerID, from, to)
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, ownerID uuid.UUID, input TaskInput) (*models.Task, error) {
	task, err := s.taskService.CreateTask(db, ownerID, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ownerID)
	return task, nil
}

func (s *CachedTaskService) GetTask(db *gorm.DB, ownerID, taskID uuid.UUID) (*models.Task, error) {
	return s.taskService.GetTask(db, ownerID, taskID)
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, ownerID, taskID uuid.UUID, update TaskUpdate) (*models.Task, error) {
	task, err := s.taskService.UpdateTask(db, ownerID, taskID, update)
	if err != nil {
		return nil, err
	}
	s.invalidate(ownerID)
	return task, nil
}

func (s *CachedTaskService) DeleteTask(db *gorm.DB, ownerID, taskID uuid.UUID) error {
	if err := s.taskService.DeleteTask(db, ownerID, taskID); err != nil {
		return err
	}
	s.invalidate(ownerID)
	return nil
}
