package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCustomerNotFound signals a missing customer record.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrNoHistory signals a customer with an empty watched history.
	ErrNoHistory = errors.New("no watch history found")
	// ErrMovieNotFound signals a missing movie record.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrMovieExists signals a duplicate movie write under create-only policy.
	ErrMovieExists = errors.New("movie already exists")
	// ErrMalformedInput signals input that failed schema decoding.
	ErrMalformedInput = errors.New("malformed input")
)

// CustomerNotFoundError wraps ErrCustomerNotFound with the customer id.
type CustomerNotFoundError struct {
	ID string
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCustomerNotFound.Error(), e.ID)
}

func (e *CustomerNotFoundError) Unwrap() error { return ErrCustomerNotFound }

// NoHistoryError wraps ErrNoHistory with the customer id.
type NoHistoryError struct {
	ID string
}

func (e *NoHistoryError) Error() string {
	return fmt.Sprintf("%s for customer: %s", ErrNoHistory.Error(), e.ID)
}

func (e *NoHistoryError) Unwrap() error { return ErrNoHistory }

// MalformedInputError wraps ErrMalformedInput with a detail message.
type MalformedInputError struct {
	Detail string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedInput.Error(), e.Detail)
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// NewMalformedInput creates a malformed-input error with a formatted detail.
func NewMalformedInput(format string, args ...any) error {
	return &MalformedInputError{Detail: fmt.Sprintf(format, args...)}
}
