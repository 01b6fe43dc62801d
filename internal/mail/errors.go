package mail

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigIncomplete is returned when host, username or password is
	// unset. Checked before any network attempt, so a missing credential
	// never consumes a retry slot.
	ErrConfigIncomplete = errors.New("mail configuration is incomplete: host, username and password are required")

	// ErrAttemptTimeout is returned when a single send attempt exceeds its
	// deadline. Downstream it is treated like any other transport failure.
	ErrAttemptTimeout = errors.New("mail send attempt timed out")

	// ErrDeliveryFailed marks an exhausted delivery: match with errors.Is.
	ErrDeliveryFailed = errors.New("email delivery failed")
)

// DeliveryError reports an exhausted delivery with its last underlying cause.
type DeliveryError struct {
	Recipient string
	Attempts  int
	Err       error
}

// Error implements the error interface.
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("email delivery to %s failed after %d attempts: %v", e.Recipient, e.Attempts, e.Err)
}

// Unwrap returns the last underlying transport error.
func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Is matches the ErrDeliveryFailed sentinel.
func (e *DeliveryError) Is(target error) bool {
	return target == ErrDeliveryFailed
}
