package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/go-mediator/internal/adapters/persistence"
	"github.com/andrescamacho/go-mediator/internal/application/tasks/commands"
	"github.com/andrescamacho/go-mediator/internal/application/tasks/events"
	"github.com/andrescamacho/go-mediator/mediator"
	"github.com/andrescamacho/go-mediator/test/helpers"
)

func TestCreateTaskHandler_SavesTaskAndPublishesEvent(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTaskRepository(db)

	var published []*events.TaskCreatedEvent
	m := mediator.NewMediator()
	err := mediator.RegisterNotificationHandler[*events.TaskCreatedEvent](m, mediator.NotificationHandlerFunc(
		func(ctx context.Context, notification mediator.Notification) error {
			published = append(published, notification.(*events.TaskCreatedEvent))
			return nil
		}))
	require.NoError(t, err)

	handler := commands.NewCreateTaskHandler(repo, m)

	// Act
	response, err := handler.Handle(context.Background(), &commands.CreateTaskCommand{
		Title:    "ship the release",
		Priority: 5,
	})

	// Assert
	require.NoError(t, err)
	created, ok := response.(*commands.CreateTaskResponse)
	require.True(t, ok)
	assert.NotEmpty(t, created.TaskID)

	saved, err := repo.FindByID(context.Background(), created.TaskID)
	require.NoError(t, err)
	assert.Equal(t, "ship the release", saved.Title)
	assert.Equal(t, "pending", saved.Status)

	require.Len(t, published, 1)
	assert.Equal(t, created.TaskID, published[0].TaskID)
	assert.Equal(t, "ship the release", published[0].Title)
}

func TestCreateTaskHandler_RejectsWrongRequestType(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	handler := commands.NewCreateTaskHandler(persistence.NewGormTaskRepository(db), mediator.NewMediator())

	// Act
	response, err := handler.Handle(context.Background(), "not a command")

	// Assert
	assert.Nil(t, response)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request type")
}
