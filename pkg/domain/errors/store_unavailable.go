package domain

import (
	"fmt"
)

// StoreUnavailableError wraps a connectivity or query failure on one of the
// backing stores. It is fatal for the current operation and safe to retry.
type StoreUnavailableError struct {
	Store string
	Err   error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s store unavailable: %v", e.Store, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

func NewStoreUnavailableError(store string, err error) error {
	return &StoreUnavailableError{
		Store: store,
		Err:   err,
	}
}
