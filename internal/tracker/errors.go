package tracker

import "errors"

// ErrNoRecipient is returned by SendReport when no recipient is configured.
var ErrNoRecipient = errors.New("no recipient email address configured")

// LoadError reports that the current month's entries could not be read.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return "loading entries: " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// MutationError reports a failed insert or delete. The cache is left
// untouched when it is returned.
type MutationError struct {
	Op  string
	Err error
}

func (e *MutationError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *MutationError) Unwrap() error {
	return e.Err
}
