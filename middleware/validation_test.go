package middleware_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/go-mediator/mediator"
	"github.com/andrescamacho/go-mediator/middleware"
)

type validatedCommand struct {
	Title    string `validate:"required,min=1"`
	Priority int    `validate:"min=0,max=9"`
}

func TestValidationPreProcessor_ValidRequestPasses(t *testing.T) {
	// Arrange
	pre := middleware.NewValidationPreProcessor()

	// Act
	err := pre.Process(context.Background(), &validatedCommand{Title: "write docs", Priority: 3})

	// Assert
	assert.NoError(t, err)
}

func TestValidationPreProcessor_InvalidRequestFails(t *testing.T) {
	// Arrange
	pre := middleware.NewValidationPreProcessor()

	// Act
	err := pre.Process(context.Background(), &validatedCommand{Title: "", Priority: 12})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "validatedCommand")
}

func TestValidationPreProcessor_NonStructRequestPasses(t *testing.T) {
	// Arrange
	pre := middleware.NewValidationPreProcessor()

	// Act
	err := pre.Process(context.Background(), "just a string")

	// Assert
	assert.NoError(t, err)
}

func TestValidationPreProcessor_FailureSkipsHandler(t *testing.T) {
	// Arrange
	handlerCalls := 0
	m := mediator.NewMediator(
		mediator.WithPreProcessors(middleware.NewValidationPreProcessor()),
	)
	err := mediator.RegisterHandler[*validatedCommand](m, mediator.HandlerFunc(
		func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
			handlerCalls++
			return "ok", nil
		}))
	require.NoError(t, err)

	// Act
	response, err := m.Send(context.Background(), &validatedCommand{Title: ""})

	// Assert
	assert.Nil(t, response)
	require.Error(t, err)
	assert.Equal(t, 0, handlerCalls)
}
