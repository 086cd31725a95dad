// Package audit records dispatched messages into the dispatch log so the
// CLI can show what went through the pipeline.
package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/go-mediator/internal/adapters/persistence"
	"github.com/andrescamacho/go-mediator/mediator"
	"github.com/andrescamacho/go-mediator/middleware"
)

// Recorder is a post-processor that writes an audit entry for every
// successfully handled request.
type Recorder struct {
	logs persistence.DispatchLogRepository
}

var _ mediator.PostProcessor = (*Recorder)(nil)

// NewRecorder creates a new audit recorder
func NewRecorder(logs persistence.DispatchLogRepository) *Recorder {
	return &Recorder{logs: logs}
}

// Process records the completed dispatch
func (r *Recorder) Process(ctx context.Context, request mediator.Request, response mediator.Response) error {
	entry := persistence.DispatchLogEntry{
		DispatchID:  dispatchID(ctx),
		RequestName: middleware.RequestName(request),
		Kind:        "request",
		Outcome:     "ok",
	}
	if err := r.logs.Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record dispatch audit: %w", err)
	}
	return nil
}

// NotificationRecorder audits published notifications. Register it as a
// notification handler for any event type that should appear in the log.
type NotificationRecorder struct {
	logs persistence.DispatchLogRepository
}

var _ mediator.NotificationHandler = (*NotificationRecorder)(nil)

// NewNotificationRecorder creates a new notification audit handler
func NewNotificationRecorder(logs persistence.DispatchLogRepository) *NotificationRecorder {
	return &NotificationRecorder{logs: logs}
}

// Handle records the delivered notification
func (h *NotificationRecorder) Handle(ctx context.Context, notification mediator.Notification) error {
	entry := persistence.DispatchLogEntry{
		DispatchID:  dispatchID(ctx),
		RequestName: middleware.RequestName(notification),
		Kind:        "notification",
		Outcome:     "ok",
	}
	if err := h.logs.Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record notification audit: %w", err)
	}
	return nil
}

func dispatchID(ctx context.Context) string {
	if id, ok := middleware.DispatchIDFromContext(ctx); ok {
		return id
	}
	return uuid.NewString()
}
