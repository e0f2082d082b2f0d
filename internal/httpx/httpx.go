// Package httpx provides helper functions for creating HTTP responses.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/propertypulse/inspection-platform/internal/apperr"

	"github.com/aws/aws-lambda-go/events"
)

// corsHeaders is attached to every response so the browser UI can call the
// API directly.
var corsHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type",
	"Access-Control-Allow-Methods": "OPTIONS,POST,GET,PUT",
}

// JSON creates a JSON HTTP response with the given status code and value.
func JSON(status int, v any) (events.APIGatewayV2HTTPResponse, error) {
	b, _ := json.Marshal(v)
	h := make(map[string]string, len(corsHeaders))
	for k, val := range corsHeaders {
		h[k] = val
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    h,
		Body:       string(b),
	}, nil
}

// Error creates a JSON HTTP error response with the given status code and message.
func Error(status int, msg string) (events.APIGatewayV2HTTPResponse, error) {
	return JSON(status, map[string]string{"error": msg})
}

// StatusOf maps the error taxonomy to an HTTP status: validation and
// incomplete-checklist failures are the caller's fault, unknown ids are 404,
// everything else is internal.
func StatusOf(err error) int {
	switch {
	case apperr.IsValidation(err), errors.Is(err, apperr.ErrIncompleteChecklist):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromError converts a service error into the structured error response. The
// message of internal errors is not leaked to callers.
func FromError(err error) (events.APIGatewayV2HTTPResponse, error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	return Error(status, msg)
}
