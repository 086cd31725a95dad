package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/go-mediator/internal/adapters/persistence"
	"github.com/andrescamacho/go-mediator/mediator"
)

// CompleteTaskCommand represents a command to mark a task as done
type CompleteTaskCommand struct {
	TaskID string `validate:"required"`
}

// CompleteTaskHandler handles the CompleteTask command. It produces no
// response value, only success or failure.
type CompleteTaskHandler struct {
	tasks persistence.TaskRepository
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler
func NewCompleteTaskHandler(tasks persistence.TaskRepository) *CompleteTaskHandler {
	return &CompleteTaskHandler{tasks: tasks}
}

// Handle executes the CompleteTask command
func (h *CompleteTaskHandler) Handle(ctx context.Context, request mediator.Request) error {
	cmd, ok := request.(*CompleteTaskCommand)
	if !ok {
		return fmt.Errorf("invalid request type: expected *CompleteTaskCommand")
	}

	task, err := h.tasks.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	task.Status = "done"
	task.UpdatedAt = time.Now()

	if err := h.tasks.Save(ctx, task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}
