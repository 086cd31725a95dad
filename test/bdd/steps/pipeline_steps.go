package steps

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/go-mediator/mediator"
)

type pipelineRequest struct{}

type pipelineEvent struct{}

type pipelineStreamRequest struct{ count int }

type pipelineContext struct {
	mu sync.Mutex

	middlewares       []mediator.Middleware
	streamMiddlewares []mediator.StreamMiddleware

	executionOrder   []string
	handlerCalls     int
	notifiedHandlers int
	failSecond       bool
	forwarded        int
	streamed         []int

	mediator mediator.Mediator
	response mediator.Response
	err      error
}

func (ctx *pipelineContext) reset() {
	ctx.middlewares = nil
	ctx.streamMiddlewares = nil
	ctx.executionOrder = nil
	ctx.handlerCalls = 0
	ctx.notifiedHandlers = 0
	ctx.failSecond = false
	ctx.forwarded = 0
	ctx.streamed = nil
	ctx.mediator = nil
	ctx.response = nil
	ctx.err = nil
}

func (ctx *pipelineContext) record(step string) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.executionOrder = append(ctx.executionOrder, step)
}

func (ctx *pipelineContext) namedMiddleware(name string) mediator.Middleware {
	return func(c context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		ctx.record(name + "-in")
		response, err := next(c, request)
		ctx.record(name + "-out")
		return response, err
	}
}

// Given steps

func (ctx *pipelineContext) aMediatorWithMiddlewareAnd(first, second string) error {
	ctx.middlewares = append(ctx.middlewares, ctx.namedMiddleware(first), ctx.namedMiddleware(second))
	return nil
}

func (ctx *pipelineContext) aMediatorWithAShortCircuitingMiddleware() error {
	ctx.middlewares = append(ctx.middlewares, func(c context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return "short-circuited", nil
	})
	return nil
}

func (ctx *pipelineContext) aRequestHandlerThatRecordsItsExecution() error {
	ctx.buildMediator()
	return mediator.RegisterHandler[*pipelineRequest](ctx.mediator, mediator.HandlerFunc(
		func(c context.Context, request mediator.Request) (mediator.Response, error) {
			ctx.handlerCalls++
			ctx.record("handler")
			return "handled", nil
		}))
}

func (ctx *pipelineContext) aMediatorWithNoHandlers() error {
	ctx.buildMediator()
	return nil
}

func (ctx *pipelineContext) aMediatorWithNotificationHandlers(count int) error {
	ctx.buildMediator()
	for i := 0; i < count; i++ {
		index := i
		err := mediator.RegisterNotificationHandler[*pipelineEvent](ctx.mediator, mediator.NotificationHandlerFunc(
			func(c context.Context, notification mediator.Notification) error {
				ctx.mu.Lock()
				ctx.notifiedHandlers++
				fail := ctx.failSecond && index == 1
				ctx.mu.Unlock()
				if fail {
					return errors.New("delivery failed")
				}
				return nil
			}))
		if err != nil {
			return err
		}
	}
	return nil
}

func (ctx *pipelineContext) theSecondNotificationHandlerFails() error {
	ctx.failSecond = true
	return nil
}

func (ctx *pipelineContext) aMediatorWithAStreamHandlerProducingElements(count int) error {
	ctx.buildMediator()
	return mediator.RegisterStreamHandler[*pipelineStreamRequest](ctx.mediator, mediator.StreamFunc(
		func(c context.Context, request mediator.StreamRequest) iter.Seq2[mediator.Response, error] {
			query := request.(*pipelineStreamRequest)
			return func(yield func(mediator.Response, error) bool) {
				for i := 0; i < query.count; i++ {
					if !yield(i, nil) {
						return
					}
				}
			}
		}))
}

func (ctx *pipelineContext) aPassThroughStreamMiddleware() error {
	// Middleware is fixed at construction time
	if ctx.mediator != nil {
		return errors.New("stream middleware must be declared before handlers")
	}
	ctx.streamMiddlewares = append(ctx.streamMiddlewares, func(c context.Context, request mediator.StreamRequest, next mediator.StreamFunc) iter.Seq2[mediator.Response, error] {
		return func(yield func(mediator.Response, error) bool) {
			for response, err := range next(c, request) {
				ctx.mu.Lock()
				ctx.forwarded++
				ctx.mu.Unlock()
				if !yield(response, err) {
					return
				}
			}
		}
	})
	return nil
}

func (ctx *pipelineContext) buildMediator() {
	if ctx.mediator != nil {
		return
	}
	ctx.mediator = mediator.NewMediator(
		mediator.WithMiddleware(ctx.middlewares...),
		mediator.WithStreamMiddleware(ctx.streamMiddlewares...),
	)
}

// When steps

func (ctx *pipelineContext) iSendTheRequest() error {
	ctx.buildMediator()
	ctx.response, ctx.err = ctx.mediator.Send(context.Background(), &pipelineRequest{})
	return nil
}

func (ctx *pipelineContext) iSendTheRequestWithACanceledContext() error {
	ctx.buildMediator()
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	ctx.response, ctx.err = ctx.mediator.Send(canceled, &pipelineRequest{})
	return nil
}

func (ctx *pipelineContext) iPublishANotification() error {
	ctx.buildMediator()
	ctx.err = ctx.mediator.Publish(context.Background(), &pipelineEvent{})
	return nil
}

func (ctx *pipelineContext) iStreamTheRequest() error {
	ctx.buildMediator()
	for response, err := range ctx.mediator.Stream(context.Background(), &pipelineStreamRequest{count: 4}) {
		if err != nil {
			ctx.err = err
			return nil
		}
		ctx.streamed = append(ctx.streamed, response.(int))
	}
	return nil
}

// Then steps

func (ctx *pipelineContext) theDispatchShouldSucceed() error {
	if ctx.err != nil {
		return fmt.Errorf("expected dispatch to succeed, got: %v", ctx.err)
	}
	return nil
}

func (ctx *pipelineContext) theExecutionOrderShouldBe(expected string) error {
	actual := strings.Join(ctx.executionOrder, ",")
	if actual != expected {
		return fmt.Errorf("expected execution order %q, got %q", expected, actual)
	}
	return nil
}

func (ctx *pipelineContext) theResponseShouldBe(expected string) error {
	if ctx.err != nil {
		return fmt.Errorf("expected a response, got error: %v", ctx.err)
	}
	if ctx.response != expected {
		return fmt.Errorf("expected response %q, got %v", expected, ctx.response)
	}
	return nil
}

func (ctx *pipelineContext) theHandlerShouldNotHaveBeenCalled() error {
	if ctx.handlerCalls != 0 {
		return fmt.Errorf("expected handler not to run, but it ran %d times", ctx.handlerCalls)
	}
	return nil
}

func (ctx *pipelineContext) theDispatchShouldFailWith(message string) error {
	if ctx.err == nil {
		return errors.New("expected dispatch to fail, but it succeeded")
	}
	if !strings.Contains(ctx.err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got: %v", message, ctx.err)
	}
	return nil
}

func (ctx *pipelineContext) allNotificationHandlersShouldHaveBeenInvoked(count int) error {
	if ctx.notifiedHandlers != count {
		return fmt.Errorf("expected %d notification handlers invoked, got %d", count, ctx.notifiedHandlers)
	}
	return nil
}

func (ctx *pipelineContext) iShouldReceiveElementsInOrder(count int) error {
	if len(ctx.streamed) != count {
		return fmt.Errorf("expected %d streamed elements, got %d", count, len(ctx.streamed))
	}
	for i, value := range ctx.streamed {
		if value != i {
			return fmt.Errorf("expected element %d at position %d, got %d", i, i, value)
		}
	}
	return nil
}

func (ctx *pipelineContext) theStreamMiddlewareShouldHaveForwardedElements(count int) error {
	if ctx.forwarded != count {
		return fmt.Errorf("expected stream middleware to forward %d elements, got %d", count, ctx.forwarded)
	}
	return nil
}

// InitializePipelineScenario registers the dispatch pipeline step definitions
func InitializePipelineScenario(sc *godog.ScenarioContext) {
	pipelineCtx := &pipelineContext{}

	sc.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		pipelineCtx.reset()
		return c, nil
	})

	sc.Step(`^a mediator with middleware "([^"]*)" and "([^"]*)"$`, pipelineCtx.aMediatorWithMiddlewareAnd)
	sc.Step(`^a mediator with a short-circuiting middleware$`, pipelineCtx.aMediatorWithAShortCircuitingMiddleware)
	sc.Step(`^a request handler that records its execution$`, pipelineCtx.aRequestHandlerThatRecordsItsExecution)
	sc.Step(`^a mediator with no handlers$`, pipelineCtx.aMediatorWithNoHandlers)
	sc.Step(`^a mediator with (\d+) notification handlers$`, pipelineCtx.aMediatorWithNotificationHandlers)
	sc.Step(`^the second notification handler fails$`, pipelineCtx.theSecondNotificationHandlerFails)
	sc.Step(`^a mediator with a stream handler producing (\d+) elements$`, pipelineCtx.aMediatorWithAStreamHandlerProducingElements)
	sc.Step(`^a pass-through stream middleware$`, pipelineCtx.aPassThroughStreamMiddleware)
	sc.Step(`^I send the request$`, pipelineCtx.iSendTheRequest)
	sc.Step(`^I send the request with a canceled context$`, pipelineCtx.iSendTheRequestWithACanceledContext)
	sc.Step(`^I publish a notification$`, pipelineCtx.iPublishANotification)
	sc.Step(`^I stream the request$`, pipelineCtx.iStreamTheRequest)
	sc.Step(`^the dispatch should succeed$`, pipelineCtx.theDispatchShouldSucceed)
	sc.Step(`^the execution order should be "([^"]*)"$`, pipelineCtx.theExecutionOrderShouldBe)
	sc.Step(`^the response should be "([^"]*)"$`, pipelineCtx.theResponseShouldBe)
	sc.Step(`^the handler should not have been called$`, pipelineCtx.theHandlerShouldNotHaveBeenCalled)
	sc.Step(`^the dispatch should fail with "([^"]*)"$`, pipelineCtx.theDispatchShouldFailWith)
	sc.Step(`^the publish should fail with "([^"]*)"$`, pipelineCtx.theDispatchShouldFailWith)
	sc.Step(`^all (\d+) notification handlers should have been invoked$`, pipelineCtx.allNotificationHandlersShouldHaveBeenInvoked)
	sc.Step(`^I should receive (\d+) elements in order$`, pipelineCtx.iShouldReceiveElementsInOrder)
	sc.Step(`^the stream middleware should have forwarded (\d+) elements$`, pipelineCtx.theStreamMiddlewareShouldHaveForwardedElements)
}
