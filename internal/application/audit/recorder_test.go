package audit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/go-mediator/internal/adapters/persistence"
	"github.com/andrescamacho/go-mediator/internal/application/audit"
	"github.com/andrescamacho/go-mediator/mediator"
	"github.com/andrescamacho/go-mediator/middleware"
	"github.com/andrescamacho/go-mediator/test/helpers"
)

type sampleCommand struct{ Name string }

func TestRecorder_RecordsSuccessfulRequest(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	logs := persistence.NewGormDispatchLogRepository(db)
	recorder := audit.NewRecorder(logs)
	ctx := middleware.WithDispatchID(context.Background(), "dispatch-42")

	// Act
	err := recorder.Process(ctx, &sampleCommand{Name: "demo"}, "response")

	// Assert
	require.NoError(t, err)
	entries, err := logs.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "dispatch-42", entries[0].DispatchID)
	assert.Equal(t, "sampleCommand", entries[0].RequestName)
	assert.Equal(t, "request", entries[0].Kind)
	assert.Equal(t, "ok", entries[0].Outcome)
}

func TestRecorder_GeneratesDispatchIDWhenMissing(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	logs := persistence.NewGormDispatchLogRepository(db)
	recorder := audit.NewRecorder(logs)

	// Act
	err := recorder.Process(context.Background(), &sampleCommand{}, nil)

	// Assert
	require.NoError(t, err)
	entries, err := logs.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].DispatchID)
}

func TestNotificationRecorder_RecordsNotification(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	logs := persistence.NewGormDispatchLogRepository(db)
	recorder := audit.NewNotificationRecorder(logs)

	// Act
	err := recorder.Handle(context.Background(), &sampleCommand{Name: "event"})

	// Assert
	require.NoError(t, err)
	entries, err := logs.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "notification", entries[0].Kind)
	assert.Equal(t, "ok", entries[0].Outcome)
}

func TestRecorder_RunsThroughMediatorPipeline(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	logs := persistence.NewGormDispatchLogRepository(db)
	m := mediator.NewMediator(
		mediator.WithMiddleware(middleware.DispatchID()),
		mediator.WithPostProcessors(audit.NewRecorder(logs)),
	)
	err := mediator.RegisterHandler[*sampleCommand](m, mediator.HandlerFunc(
		func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
			return "done", nil
		}))
	require.NoError(t, err)

	// Act
	response, err := m.Send(context.Background(), &sampleCommand{Name: "wired"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "done", response)
	entries, err := logs.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sampleCommand", entries[0].RequestName)
	assert.NotEmpty(t, entries[0].DispatchID)
}
