package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/go-mediator/internal/adapters/persistence"
	"github.com/andrescamacho/go-mediator/internal/application/tasks/commands"
	"github.com/andrescamacho/go-mediator/test/helpers"
)

func TestCompleteTaskHandler_MarksTaskDone(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTaskRepository(db)
	require.NoError(t, repo.Save(context.Background(), &persistence.TaskModel{
		ID:     "task-1",
		Title:  "review pull request",
		Status: "pending",
	}))

	handler := commands.NewCompleteTaskHandler(repo)

	// Act
	err := handler.Handle(context.Background(), &commands.CompleteTaskCommand{TaskID: "task-1"})

	// Assert
	require.NoError(t, err)
	found, err := repo.FindByID(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, "done", found.Status)
}

func TestCompleteTaskHandler_FailsForUnknownTask(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	handler := commands.NewCompleteTaskHandler(persistence.NewGormTaskRepository(db))

	// Act
	err := handler.Handle(context.Background(), &commands.CompleteTaskCommand{TaskID: "missing"})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task not found")
}
