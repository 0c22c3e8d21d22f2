package llm

import (
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// RateLimitError indicates the provider rejected a call for quota reasons.
// Callers should back off or fall through to a cheaper path instead of
// retrying immediately.
type RateLimitError struct {
	Cause error
}

func (e *RateLimitError) Error() string {
	if e.Cause != nil {
		return "rate limited by provider: " + e.Cause.Error()
	}
	return "rate limited by provider"
}

func (e *RateLimitError) Unwrap() error {
	return e.Cause
}

// IsRateLimit reports whether err, anywhere in its chain, is a rate-limit
// rejection.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return true
	}
	return isRateLimited(err)
}

// isRateLimited classifies a raw provider error. Gemini surfaces quota
// exhaustion either as HTTP 429 or as a RESOURCE_EXHAUSTED status string.
func isRateLimited(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "429")
}
