package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestIsRateLimit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit error", &RateLimitError{}, true},
		{"wrapped rate limit error", fmt.Errorf("call failed: %w", &RateLimitError{Cause: errors.New("quota")}), true},
		{"googleapi 429", &googleapi.Error{Code: 429}, true},
		{"googleapi 500", &googleapi.Error{Code: 500, Message: "internal"}, false},
		{"resource exhausted string", errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"), true},
		{"429 string", errors.New("got HTTP 429 from upstream"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimit(tt.err))
		})
	}
}

func TestRateLimitError_Unwrap(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &RateLimitError{Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestRateLimitError_NoCause(t *testing.T) {
	err := &RateLimitError{}

	assert.Equal(t, "rate limited by provider", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
