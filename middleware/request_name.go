// Package middleware provides reusable cross-cutting middleware and
// processors for the mediator pipeline: logging, metrics, rate limiting,
// request validation, and dispatch correlation.
package middleware

import (
	"reflect"
	"strings"
)

// RequestName extracts a clean, label-friendly name from a request using reflection
// Examples:
//   - "*commands.CreateTaskCommand" → "CreateTaskCommand"
//   - "*queries.GetTaskQuery" → "GetTaskQuery"
func RequestName(request interface{}) string {
	if request == nil {
		return "UnknownRequest"
	}

	fullName := reflect.TypeOf(request).String()
	fullName = strings.TrimPrefix(fullName, "*")

	// Split by '.' to separate package from type name
	parts := strings.Split(fullName, ".")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}
	return fullName
}
