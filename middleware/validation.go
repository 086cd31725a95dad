package middleware

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/go-mediator/mediator"
)

// ValidationPreProcessor validates struct requests against their validate
// tags before the handler runs. Requests that are not structs (or carry no
// tags) pass through untouched.
type ValidationPreProcessor struct {
	validate *validator.Validate
}

// Compile-time interface check
var _ mediator.PreProcessor = (*ValidationPreProcessor)(nil)

// NewValidationPreProcessor creates a validation pre-processor with a
// default validator instance
func NewValidationPreProcessor() *ValidationPreProcessor {
	return &ValidationPreProcessor{validate: validator.New()}
}

// NewValidationPreProcessorWith reuses an existing validator, keeping any
// custom rules registered on it
func NewValidationPreProcessorWith(validate *validator.Validate) *ValidationPreProcessor {
	return &ValidationPreProcessor{validate: validate}
}

// Process validates the request, failing the dispatch before the handler
// runs when a constraint is violated
func (p *ValidationPreProcessor) Process(ctx context.Context, request mediator.Request) error {
	if request == nil {
		return nil
	}

	value := reflect.ValueOf(request)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	if err := p.validate.StructCtx(ctx, request); err != nil {
		return fmt.Errorf("request validation failed for %s: %w", RequestName(request), err)
	}
	return nil
}
