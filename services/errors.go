package services

import "errors"

// NotFoundError means the requested id does not resolve to a stored record.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.What
}

// AlreadyExistsError means a write would duplicate a unique value.
type AlreadyExistsError struct {
	What string
}

func (e *AlreadyExistsError) Error() string {
	return "already exists: " + e.What
}

// ValidationError means a business rule rejected the input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsAlreadyExists(err error) bool {
	var e *AlreadyExistsError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
