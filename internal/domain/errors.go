package domain

import (
	"errors"
	"fmt"
)

// Validation error codes surfaced to callers so bad input can be fixed.
const (
	CodeInvalidDistance           = "INVALID_DISTANCE"
	CodeInvalidDuration           = "INVALID_DURATION"
	CodeInvalidTripType           = "INVALID_TRIP_TYPE"
	CodeMissingDistanceForDropoff = "MISSING_DISTANCE_FOR_DROPOFF"
	CodeInvalidMonth              = "INVALID_MONTH"
	CodeInvalidScope              = "INVALID_SCOPE"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Code  string
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// ConfigurationError marks broken configuration data, e.g. more than one
// ACTIVE row for the same scope. Picking one silently would be an unauditable
// pricing decision, so callers must treat this as fatal.
type ConfigurationError struct {
	Scope string
	Msg   string
	Err   error
}

func (e ConfigurationError) Error() string {
	switch {
	case e.Msg != "" && e.Scope != "":
		return fmt.Sprintf("configuration error (%s): %s", e.Scope, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Scope != "":
		return fmt.Sprintf("configuration error (%s)", e.Scope)
	default:
		return "configuration error"
	}
}

func (e ConfigurationError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsConfiguration(err error) bool {
	var target ConfigurationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// ValidationCode extracts the machine code from a validation error, if any.
func ValidationCode(err error) string {
	var target ValidationError
	if errors.As(err, &target) {
		return target.Code
	}
	return ""
}
