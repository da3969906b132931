package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound  = errors.New("object not found")
	ErrValueIsInvalid  = errors.New("value is invalid")
	ErrValueIsRequired = errors.New("value is required")

	ErrTransport      = errors.New("transport failure")
	ErrValidation     = errors.New("content validation failed")
	ErrRetryExhausted = errors.New("retry budget exhausted")
)

// sanitize collapses newlines so error messages stay on a single log line.
func sanitize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ObjectNotFoundError indicates that a requested object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// TransportError indicates a network or server failure while calling an
// external service. Transport failures are transient and may be retried up
// to a stage-specific bound.
type TransportError struct {
	Service    string
	Operation  string
	StatusCode int
	Cause      error
}

func NewTransportError(service, operation string, statusCode int) *TransportError {
	return &TransportError{Service: service, Operation: operation, StatusCode: statusCode}
}

func NewTransportErrorWithCause(service, operation string, statusCode int, cause error) *TransportError {
	return &TransportError{Service: service, Operation: operation, StatusCode: statusCode, Cause: cause}
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s, status is: %d (cause: %s)",
			ErrTransport, e.Service, e.Operation, e.StatusCode, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s %s, status is: %d", ErrTransport, e.Service, e.Operation, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return ErrTransport
}

// ValidationError indicates a structural or content mismatch detected after
// a successful external call. Validation failures are never retried:
// repetition would reproduce the same defective result.
type ValidationError struct {
	Subject string
	Detail  string
	Cause   error
}

func NewValidationError(subject, detail string) *ValidationError {
	return &ValidationError{Subject: subject, Detail: detail}
}

func NewValidationErrorWithCause(subject, detail string, cause error) *ValidationError {
	return &ValidationError{Subject: subject, Detail: detail, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s (cause: %s)",
			ErrValidation, e.Subject, sanitize(e.Detail), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Subject, sanitize(e.Detail))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// RetryExhaustedError indicates that the retry budget for an operation was
// consumed without reaching a terminal outcome.
type RetryExhaustedError struct {
	Operation string
	Attempts  int
	LastState string
	Cause     error
}

func NewRetryExhaustedError(operation string, attempts int, lastState string) *RetryExhaustedError {
	return &RetryExhaustedError{Operation: operation, Attempts: attempts, LastState: lastState}
}

func NewRetryExhaustedErrorWithCause(operation string, attempts int, lastState string, cause error) *RetryExhaustedError {
	return &RetryExhaustedError{Operation: operation, Attempts: attempts, LastState: lastState, Cause: cause}
}

func (e *RetryExhaustedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s after %d attempts, last state is: %s (cause: %s)",
			ErrRetryExhausted, e.Operation, e.Attempts, sanitize(e.LastState), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s after %d attempts, last state is: %s",
		ErrRetryExhausted, e.Operation, e.Attempts, sanitize(e.LastState))
}

func (e *RetryExhaustedError) Unwrap() error {
	return ErrRetryExhausted
}
