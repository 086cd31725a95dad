package queries_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/go-mediator/internal/adapters/persistence"
	"github.com/andrescamacho/go-mediator/internal/application/tasks/queries"
	"github.com/andrescamacho/go-mediator/test/helpers"
)

func seedDispatchLogs(t *testing.T, repo persistence.DispatchLogRepository, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		err := repo.Record(context.Background(), persistence.DispatchLogEntry{
			RequestName: fmt.Sprintf("Request%d", i),
			Kind:        "request",
			Outcome:     "ok",
		})
		require.NoError(t, err)
	}
}

func TestTaskActivityHandler_StreamsNewestFirst(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormDispatchLogRepository(db)
	seedDispatchLogs(t, repo, 5)

	handler := queries.NewTaskActivityHandler(repo)

	// Act - page size smaller than the total forces multiple fetches
	var names []string
	for response, err := range handler.Handle(context.Background(), &queries.TaskActivityQuery{PageSize: 2}) {
		require.NoError(t, err)
		names = append(names, response.(persistence.DispatchLogEntry).RequestName)
	}

	// Assert
	assert.Equal(t, []string{"Request4", "Request3", "Request2", "Request1", "Request0"}, names)
}

func TestTaskActivityHandler_HonorsLimit(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormDispatchLogRepository(db)
	seedDispatchLogs(t, repo, 5)

	handler := queries.NewTaskActivityHandler(repo)

	// Act
	count := 0
	for _, err := range handler.Handle(context.Background(), &queries.TaskActivityQuery{PageSize: 2, Limit: 3}) {
		require.NoError(t, err)
		count++
	}

	// Assert
	assert.Equal(t, 3, count)
}

func TestTaskActivityHandler_EarlyBreakStopsFetching(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormDispatchLogRepository(db)
	seedDispatchLogs(t, repo, 10)

	handler := queries.NewTaskActivityHandler(repo)

	// Act - consumer stops after the first element
	var first string
	for response, err := range handler.Handle(context.Background(), &queries.TaskActivityQuery{PageSize: 3}) {
		require.NoError(t, err)
		first = response.(persistence.DispatchLogEntry).RequestName
		break
	}

	// Assert
	assert.Equal(t, "Request9", first)
}

func TestTaskActivityHandler_RejectsWrongRequestType(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	handler := queries.NewTaskActivityHandler(persistence.NewGormDispatchLogRepository(db))

	// Act
	var streamErr error
	for _, err := range handler.Handle(context.Background(), "not a query") {
		streamErr = err
	}

	// Assert
	require.Error(t, streamErr)
	assert.Contains(t, streamErr.Error(), "invalid request type")
}
