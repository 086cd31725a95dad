package mediator

import (
	"context"
	"sync"

	"go.uber.org/multierr"
)

// PublishStrategy selects how notification handlers are invoked
type PublishStrategy int

const (
	// PublishConcurrent starts every handler before awaiting any and returns
	// once all have completed. Failures from all handlers are combined into a
	// single aggregate error.
	PublishConcurrent PublishStrategy = iota

	// PublishSequential invokes handlers one at a time in registration order,
	// checking cancellation before each. The first failure stops the rest.
	PublishSequential
)

func publishConcurrent(ctx context.Context, notification Notification, handlers []NotificationHandler) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	errs := make([]error, len(handlers))
	var wg sync.WaitGroup
	for i, handler := range handlers {
		wg.Add(1)
		go func(i int, handler NotificationHandler) {
			defer wg.Done()
			errs[i] = handler.Handle(ctx, notification)
		}(i, handler)
	}
	wg.Wait()

	return multierr.Combine(errs...)
}

func publishSequential(ctx context.Context, notification Notification, handlers []NotificationHandler) error {
	for _, handler := range handlers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := handler.Handle(ctx, notification); err != nil {
			return err
		}
	}
	return nil
}
