package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/daehyun/grant-agent/internal/extraction"
	"github.com/daehyun/grant-agent/internal/llm"
	"github.com/daehyun/grant-agent/internal/schemas"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if llm.IsRateLimit(err) {
		return http.StatusTooManyRequests
	}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		return http.StatusBadRequest
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return http.StatusBadRequest
	}

	var timeoutErr *extraction.TimeoutError
	if errors.As(err, &timeoutErr) {
		return http.StatusGatewayTimeout
	}

	var toolErr *extraction.ToolError
	var convErr *extraction.ConversionError
	if errors.As(err, &toolErr) || errors.As(err, &convErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
