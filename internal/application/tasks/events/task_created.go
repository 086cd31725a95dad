package events

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/andrescamacho/go-mediator/mediator"
)

// TaskCreatedEvent is published after a task has been persisted
type TaskCreatedEvent struct {
	TaskID   string
	Title    string
	Priority int
}

// TaskCreatedLogger logs task creation events
type TaskCreatedLogger struct {
	logger *zap.Logger
}

// NewTaskCreatedLogger creates a new TaskCreatedLogger
func NewTaskCreatedLogger(logger *zap.Logger) *TaskCreatedLogger {
	return &TaskCreatedLogger{logger: logger}
}

// Handle logs the created task
func (h *TaskCreatedLogger) Handle(ctx context.Context, notification mediator.Notification) error {
	event, ok := notification.(*TaskCreatedEvent)
	if !ok {
		return fmt.Errorf("invalid notification type: expected *TaskCreatedEvent")
	}

	h.logger.Info("task created",
		zap.String("task_id", event.TaskID),
		zap.String("title", event.Title),
		zap.Int("priority", event.Priority),
	)
	return nil
}
