package queries

import (
	"context"
	"fmt"
	"iter"

	"github.com/andrescamacho/go-mediator/internal/adapters/persistence"
	"github.com/andrescamacho/go-mediator/mediator"
)

// TaskActivityQuery streams recent dispatch log entries, newest first.
// Pages are fetched from the database only as the consumer advances.
type TaskActivityQuery struct {
	// Number of entries fetched per database round-trip
	PageSize int `validate:"min=1"`

	// Maximum number of entries to yield (0 means unbounded)
	Limit int `validate:"min=0"`
}

// TaskActivityHandler handles the TaskActivity stream query
type TaskActivityHandler struct {
	logs persistence.DispatchLogRepository
}

// NewTaskActivityHandler creates a new TaskActivityHandler
func NewTaskActivityHandler(logs persistence.DispatchLogRepository) *TaskActivityHandler {
	return &TaskActivityHandler{logs: logs}
}

// Handle executes the TaskActivity query as a lazy sequence
func (h *TaskActivityHandler) Handle(ctx context.Context, request mediator.StreamRequest) iter.Seq2[mediator.Response, error] {
	query, ok := request.(*TaskActivityQuery)
	if !ok {
		return func(yield func(mediator.Response, error) bool) {
			yield(nil, fmt.Errorf("invalid request type: expected *TaskActivityQuery"))
		}
	}

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	return func(yield func(mediator.Response, error) bool) {
		offset := 0
		yielded := 0

		for {
			entries, err := h.logs.RecentWithOffset(ctx, pageSize, offset)
			if err != nil {
				yield(nil, fmt.Errorf("failed to query dispatch logs: %w", err))
				return
			}
			if len(entries) == 0 {
				return
			}

			for _, entry := range entries {
				if query.Limit > 0 && yielded >= query.Limit {
					return
				}
				if !yield(entry, nil) {
					return
				}
				yielded++
			}

			offset += len(entries)
		}
	}
}
