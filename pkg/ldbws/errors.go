package ldbws

import (
	"errors"
	"fmt"
)

var ErrInvalidCRS = errors.New("invalid CRS code")

// TransportError is a connectivity failure or timeout, no HTTP exchange completed
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError is a completed HTTP exchange with a non-200 status
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Message)
}

// DecodeError means the response body did not match the expected schema
type DecodeError struct {
	Schema string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %s", e.Schema, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MappingError means the response matched the schema but a value broke a domain assumption
type MappingError struct {
	Field    string
	RawValue string
	Err      error
}

func (e *MappingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot map field %s with value %q", e.Field, e.RawValue)
	}

	return fmt.Sprintf("cannot map field %s with value %q: %s", e.Field, e.RawValue, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

func missingElement(name string) error {
	return fmt.Errorf("missing required element %s", name)
}
