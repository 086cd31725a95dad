package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/go-mediator/internal/adapters/persistence"
	"github.com/andrescamacho/go-mediator/mediator"
)

// GetTaskQuery represents a query for a single task by ID
type GetTaskQuery struct {
	TaskID string `validate:"required"`
}

// TaskDTO is the read model returned by task queries
type TaskDTO struct {
	ID        string
	Title     string
	Priority  int
	Status    string
	CreatedAt time.Time
}

// GetTaskHandler handles the GetTask query
type GetTaskHandler struct {
	tasks persistence.TaskRepository
}

// NewGetTaskHandler creates a new GetTaskHandler
func NewGetTaskHandler(tasks persistence.TaskRepository) *GetTaskHandler {
	return &GetTaskHandler{tasks: tasks}
}

// Handle executes the GetTask query
func (h *GetTaskHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetTaskQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTaskQuery")
	}

	task, err := h.tasks.FindByID(ctx, query.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return &TaskDTO{
		ID:        task.ID,
		Title:     task.Title,
		Priority:  task.Priority,
		Status:    task.Status,
		CreatedAt: task.CreatedAt,
	}, nil
}
