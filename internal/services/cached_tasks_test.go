package services_test

import (
	"testing"

	"tasktracker/internal/cache"
	"tasktracker/internal/models"
	"tasktracker/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCachedService(t *testing.T) (*services.CachedTaskService, *cache.RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisCache := cache.NewRedisCache(&cache.CacheConfig{Addr: mr.Addr()})
	t.Cleanup(func() { redisCache.Close() })
	return services.NewCachedTaskService(services.NewTaskService(), redisCache), redisCache
}

func TestCachedTaskService_ListIsCached(t *testing.T) {
	db := setupTestDB(t)
	svc, redisCache := setupCachedService(t)
	owner := newUUID(t)

	_, err := svc.CreateTask(db, owner, services.TaskInput{Title: "first"})
	require.NoError(t, err)

	list, err := svc.ListTasks(db, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)

	var cached []models.Task
	err = redisCache.Get("user_tasks:"+owner.String(), &cached)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestCachedTaskService_MutationsInvalidate(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := setupCachedService(t)
	owner := newUUID(t)

	task, err := svc.CreateTask(db, owner, services.TaskInput{Title: "first"})
	require.NoError(t, err)

	list, err := svc.ListTasks(db, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// A second create must show up despite the cached list.
	_, err = svc.CreateTask(db, owner, services.TaskInput{Title: "second"})
	require.NoError(t, err)

	list, err = svc.ListTasks(db, owner)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	status := models.StatusCompleted
	_, err = svc.UpdateTask(db, owner, task.ID, services.TaskUpdate{Status: &status})
	require.NoError(t, err)

	list, err = svc.ListTasks(db, owner)
	require.NoError(t, err)
	for _, got := range list {
		if got.ID == task.ID {
			assert.Equal(t, models.StatusCompleted, got.Status)
		}
	}

	require.NoError(t, svc.DeleteTask(db, owner, task.ID))

	list, err = svc.ListTasks(db, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCachedTaskService_OwnershipStillEnforced(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := setupCachedService(t)
	ann := newUUID(t)
	bob := newUUID(t)

	task, err := svc.CreateTask(db, ann, services.TaskInput{Title: "Ann's task"})
	require.NoError(t, err)

	err = svc.DeleteTask(db, bob, task.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
}
