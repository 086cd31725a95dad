package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/go-mediator/internal/adapters/persistence"
	"github.com/andrescamacho/go-mediator/internal/application/tasks/events"
	"github.com/andrescamacho/go-mediator/mediator"
)

// CreateTaskCommand represents a command to create a new task
type CreateTaskCommand struct {
	Title    string `validate:"required,min=1"`
	Priority int    `validate:"min=0,max=9"`
}

// CreateTaskResponse represents the result of creating a task
type CreateTaskResponse struct {
	TaskID string
}

// CreateTaskHandler handles the CreateTask command
type CreateTaskHandler struct {
	tasks     persistence.TaskRepository
	publisher mediator.Mediator
}

// NewCreateTaskHandler creates a new CreateTaskHandler
func NewCreateTaskHandler(tasks persistence.TaskRepository, publisher mediator.Mediator) *CreateTaskHandler {
	return &CreateTaskHandler{
		tasks:     tasks,
		publisher: publisher,
	}
}

// Handle executes the CreateTask command
func (h *CreateTaskHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateTaskCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateTaskCommand")
	}

	task := &persistence.TaskModel{
		ID:        uuid.NewString(),
		Title:     cmd.Title,
		Priority:  cmd.Priority,
		Status:    "pending",
		CreatedAt: time.Now(),
	}

	if err := h.tasks.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	event := &events.TaskCreatedEvent{
		TaskID:   task.ID,
		Title:    task.Title,
		Priority: task.Priority,
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to publish task created event: %w", err)
	}

	return &CreateTaskResponse{TaskID: task.ID}, nil
}
