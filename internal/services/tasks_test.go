package services_test

import (
	"testing"
	"time"

	"tasktracker/internal/models"
	"tasktracker/internal/services"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.Must(uuid.NewV4())
}

func TestCreateTask_Defaults(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewTaskService()
	owner := newUUID(t)

	task, err := svc.CreateTask(db, owner, services.TaskInput{Title: "Write report"})
	require.NoError(t, err)

	assert.Equal(t, owner, task.UserID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Nil(t, task.DueDate)
}

func TestCreateTask_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewTaskService()
	owner := newUUID(t)

	_, err := svc.CreateTask(db, owner, services.TaskInput{Title: "  "})
	assert.ErrorIs(t, err, services.ErrTitleRequired)

	_, err = svc.CreateTask(db, owner, services.TaskInput{Title: "ok", Status: "Done"})
	assert.ErrorIs(t, err, services.ErrInvalidStatus)
}

func TestListTasks_ScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewTaskService()
	ann := newUUID(t)
	bob := newUUID(t)

	annTask, err := svc.CreateTask(db, ann, services.TaskInput{Title: "Ann's task"})
	require.NoError(t, err)
	_, err = svc.CreateTask(db, bob, services.TaskInput{Title: "Bob's task"})
	require.NoError(t, err)

	annList, err := svc.ListTasks(db, ann)
	require.NoError(t, err)
	require.Len(t, annList, 1)
	assert.Equal(t, annTask.ID, annList[0].ID)

	bobList, err := svc.ListTasks(db, bob)
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.NotEqual(t, annTask.ID, bobList[0].ID)
}

func TestUpdateTask_OwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewTaskService()
	ann := newUUID(t)
	bob := newUUID(t)

	task, err := svc.CreateTask(db, ann, services.TaskInput{Title: "Ann's task"})
	require.NoError(t, err)

	// Bob knows the id but does not own the task.
	title := "hijacked"
	_, err = svc.UpdateTask(db, bob, task.ID, services.TaskUpdate{Title: &title})
	assert.ErrorIs(t, err, services.ErrForbidden)

	err = svc.DeleteTask(db, bob, task.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// The task is untouched.
	unchanged, err := svc.GetTask(db, ann, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann's task", unchanged.Title)
}

func TestUpdateTask_StatusRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewTaskService()
	owner := newUUID(t)

	task, err := svc.CreateTask(db, owner, services.TaskInput{Title: "Write report"})
	require.NoError(t, err)

	status := models.StatusCompleted
	updated, err := svc.UpdateTask(db, owner, task.ID, services.TaskUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, "Write report", updated.Title)
	assert.Equal(t, owner, updated.UserID)

	list, err := svc.ListTasks(db, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusCompleted, list[0].Status)
}

func TestUpdateTask_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewTaskService()

	title := "anything"
	_, err := svc.UpdateTask(db, newUUID(t), newUUID(t), services.TaskUpdate{Title: &title})
	assert.ErrorIs(t, err, services.ErrNotFound)

	err = svc.DeleteTask(db, newUUID(t), newUUID(t))
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUpdateTask_InvalidFields(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewTaskService()
	owner := newUUID(t)

	task, err := svc.CreateTask(db, owner, services.TaskInput{Title: "ok"})
	require.NoError(t, err)

	empty := " "
	_, err = svc.UpdateTask(db, owner, task.ID, services.TaskUpdate{Title: &empty})
	assert.ErrorIs(t, err, services.ErrTitleRequired)

	bad := "Done"
	_, err = svc.UpdateTask(db, owner, task.ID, services.TaskUpdate{Status: &bad})
	assert.ErrorIs(t, err, services.ErrInvalidStatus)
}

func TestDueDateWindow(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewTaskService()
	owner := newUUID(t)

	due := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	dated, err := svc.CreateTask(db, owner, services.TaskInput{Title: "dated", DueDate: &due})
	require.NoError(t, err)
	undated, err := svc.CreateTask(db, owner, services.TaskInput{Title: "undated"})
	require.NoError(t, err)

	monthStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	inMarch, err := svc.ListTasksDueBetween(db, owner, monthStart, monthStart.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, inMarch, 1)
	assert.Equal(t, dated.ID, inMarch[0].ID)

	aprilStart := monthStart.AddDate(0, 1, 0)
	inApril, err := svc.ListTasksDueBetween(db, owner, aprilStart, aprilStart.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Empty(t, inApril)

	// The undated task still shows up in the unfiltered list.
	all, err := svc.ListTasks(db, owner)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	_ = undated
}

func TestUpdateTask_ClearDueDate(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewTaskService()
	owner := newUUID(t)

	due := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	task, err := svc.CreateTask(db, owner, services.TaskInput{Title: "dated", DueDate: &due})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(db, owner, task.ID, services.TaskUpdate{ClearDue: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)

	window, err := svc.ListTasksDueBetween(db, owner, due.AddDate(0, 0, -1), due.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, window)
}
