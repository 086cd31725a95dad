package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/go-mediator/internal/adapters/persistence"
	"github.com/andrescamacho/go-mediator/test/helpers"
)

func TestTaskRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTaskRepository(db)

	task := &persistence.TaskModel{
		ID:       "task-1",
		Title:    "write release notes",
		Priority: 3,
		Status:   "pending",
	}

	// Act - Save
	err := repo.Save(context.Background(), task)

	// Assert
	require.NoError(t, err)

	// Act - FindByID
	found, err := repo.FindByID(context.Background(), "task-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, task.ID, found.ID)
	assert.Equal(t, task.Title, found.Title)
	assert.Equal(t, task.Priority, found.Priority)
	assert.Equal(t, "pending", found.Status)
}

func TestTaskRepository_SaveUpdatesExisting(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTaskRepository(db)

	task := &persistence.TaskModel{ID: "task-2", Title: "triage bugs", Status: "pending"}
	require.NoError(t, repo.Save(context.Background(), task))

	// Act - Save again with new status
	task.Status = "done"
	err := repo.Save(context.Background(), task)

	// Assert
	require.NoError(t, err)
	found, err := repo.FindByID(context.Background(), "task-2")
	require.NoError(t, err)
	assert.Equal(t, "done", found.Status)
}

func TestTaskRepository_FindByIDNotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTaskRepository(db)

	// Act
	found, err := repo.FindByID(context.Background(), "missing")

	// Assert
	require.Error(t, err)
	assert.Nil(t, found)
	assert.Contains(t, err.Error(), "task not found")
}

func TestTaskRepository_ListOrdersByCreation(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTaskRepository(db)

	first := &persistence.TaskModel{ID: "a", Title: "first", Status: "pending", CreatedAt: time.Now().Add(-time.Hour)}
	second := &persistence.TaskModel{ID: "b", Title: "second", Status: "pending", CreatedAt: time.Now()}
	require.NoError(t, repo.Save(context.Background(), second))
	require.NoError(t, repo.Save(context.Background(), first))

	// Act
	tasks, err := repo.List(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, "b", tasks[1].ID)
}
