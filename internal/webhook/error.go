package webhook

import (
	"fmt"

	"github.com/pkg/errors"
)

// InternalError marks a fault inside the processing pipeline. It always maps to a 500.
type InternalError struct {
	Cause error
}

func (m *InternalError) Error() string {
	return fmt.Sprintf("webhook error: %v", m.Cause)
}

// Unwrap returns the underlying cause.
func (m *InternalError) Unwrap() error {
	return m.Cause
}

// NewInternalError creates a new InternalError with the given message.
func NewInternalError(msg string) error {
	return &InternalError{Cause: errors.New(msg)}
}

// NewInternalErrorf creates a new InternalError with a formatted message.
func NewInternalErrorf(format string, args ...any) error {
	return &InternalError{Cause: errors.Errorf(format, args...)}
}

// NewPanicError wraps a recovered panic value.
func NewPanicError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return &InternalError{Cause: errors.Wrap(err, "recovered panic")}
	}
	return NewInternalErrorf("recovered panic: %v", recovered)
}
