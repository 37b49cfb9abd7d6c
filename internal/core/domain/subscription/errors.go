package subscription

import "fmt"

// The error variants below form a closed set: every failure a subscription
// workflow can surface is one of them, and the HTTP layer maps each variant
// to exactly one response status.

// ValidationError reports malformed subscriber input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a confirmation token with no matching subscriber.
type NotFoundError struct {
	Token string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no subscriber found for token %q", e.Token)
}

// PersistenceError wraps a storage failure.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("subscription storage failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// DispatchError wraps a confirmation email delivery failure. Non-2xx
// responses, timeouts and transport faults are all folded into this one
// variant.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("confirmation email dispatch failure: %v", e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
