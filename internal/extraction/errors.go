package extraction

import "fmt"

// ToolError represents a subprocess conversion tool failure
type ToolError struct {
	Tool    string
	Message string
	Cause   error
}

func (e *ToolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Tool, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s failed: %s", e.Tool, e.Message)
}

func (e *ToolError) Unwrap() error {
	return e.Cause
}

// ConversionError represents a failure from an online conversion service
type ConversionError struct {
	Service string
	Message string
	Cause   error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s conversion failed: %s: %v", e.Service, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s conversion failed: %s", e.Service, e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// TimeoutError indicates an online conversion exceeded its polling budget.
// It is a normal fall-through outcome, not a crash.
type TimeoutError struct {
	Service  string
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s conversion timed out after %d polling attempts", e.Service, e.Attempts)
}
