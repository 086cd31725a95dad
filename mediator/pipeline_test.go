package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/go-mediator/mediator"
)

type orderedRequest struct{}

// suffixMiddleware appends suffix to the string response after awaiting next
func suffixMiddleware(suffix string) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		response, err := next(ctx, request)
		if err != nil {
			return nil, err
		}
		return response.(string) + suffix, nil
	}
}

func stringHandler(value string, calls *int) mediator.HandlerFunc {
	return func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		*calls++
		return value, nil
	}
}

func TestPipeline_MiddlewareRunsInRegistrationOrder(t *testing.T) {
	// Arrange
	calls := 0
	m := mediator.NewMediator(
		mediator.WithMiddleware(suffixMiddleware("_MW1"), suffixMiddleware("_MW2")),
	)
	require.NoError(t, mediator.RegisterHandler[*orderedRequest](m, stringHandler("HANDLER", &calls)))

	// Act
	response, err := m.Send(context.Background(), &orderedRequest{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "HANDLER_MW2_MW1", response)
	assert.Equal(t, 1, calls)
}

func TestPipeline_ShortCircuitSkipsDownstream(t *testing.T) {
	// Arrange
	handlerCalls := 0
	innerCalls := 0
	shortCircuit := func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return "SHORTCIRCUIT", nil
	}
	counting := func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		innerCalls++
		return next(ctx, request)
	}
	m := mediator.NewMediator(mediator.WithMiddleware(shortCircuit, counting))
	require.NoError(t, mediator.RegisterHandler[*orderedRequest](m, stringHandler("HANDLER", &handlerCalls)))

	// Act
	response, err := m.Send(context.Background(), &orderedRequest{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "SHORTCIRCUIT", response)
	assert.Equal(t, 0, innerCalls, "downstream middleware must never run")
	assert.Equal(t, 0, handlerCalls, "handler must never run")
}

func TestPipeline_PreCanceledContext(t *testing.T) {
	// Arrange
	handlerCalls := 0
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*orderedRequest](m, stringHandler("HANDLER", &handlerCalls)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	response, err := m.Send(ctx, &orderedRequest{})

	// Assert
	assert.Nil(t, response)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, handlerCalls)
}

func TestPipeline_MidPipelineCancellation(t *testing.T) {
	// Arrange
	handlerCalls := 0
	ctx, cancel := context.WithCancel(context.Background())
	cancelThenContinue := func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		cancel()
		return next(ctx, request)
	}
	m := mediator.NewMediator(mediator.WithMiddleware(cancelThenContinue))
	require.NoError(t, mediator.RegisterHandler[*orderedRequest](m, stringHandler("HANDLER", &handlerCalls)))

	// Act
	response, err := m.Send(ctx, &orderedRequest{})

	// Assert
	assert.Nil(t, response)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, handlerCalls, "handler must not run after cancellation")
}

func TestPipeline_HandlerErrorPropagatesUnmodified(t *testing.T) {
	// Arrange
	wantErr := errors.New("storage unavailable")
	observed := 0
	passThrough := func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		observed++
		return next(ctx, request)
	}
	m := mediator.NewMediator(mediator.WithMiddleware(passThrough, passThrough))
	err := mediator.RegisterHandler[*orderedRequest](m, mediator.HandlerFunc(
		func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
			return nil, wantErr
		}))
	require.NoError(t, err)

	// Act
	_, err = m.Send(context.Background(), &orderedRequest{})

	// Assert
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 2, observed)
}

func TestPipeline_MiddlewareErrorSkipsHandler(t *testing.T) {
	// Arrange
	handlerCalls := 0
	wantErr := errors.New("request rejected")
	failing := func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return nil, wantErr
	}
	m := mediator.NewMediator(mediator.WithMiddleware(failing))
	require.NoError(t, mediator.RegisterHandler[*orderedRequest](m, stringHandler("HANDLER", &handlerCalls)))

	// Act
	_, err := m.Send(context.Background(), &orderedRequest{})

	// Assert
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, handlerCalls)
}

func TestPipeline_EmptyMiddlewareListInvokesHandlerDirectly(t *testing.T) {
	// Arrange
	calls := 0
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*orderedRequest](m, stringHandler("HANDLER", &calls)))

	// Act
	response, err := m.Send(context.Background(), &orderedRequest{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "HANDLER", response)
	assert.Equal(t, 1, calls)
}
