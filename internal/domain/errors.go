package domain

import (
	"errors"
	"fmt"
)

// NotFoundError covers missing external entities (orders, products, users).
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

// InvalidTokenError means the export token is missing, malformed, expired,
// or bound to a different order.
type InvalidTokenError struct {
	Err error
}

func (e InvalidTokenError) Error() string { return "security check failed" }

func (e InvalidTokenError) Unwrap() error { return e.Err }

// NotOwnerError means a customer requested an export of someone else's order.
type NotOwnerError struct {
	OrderID int64
}

func (e NotOwnerError) Error() string {
	return "you do not have permission to download this file"
}

// OrderNotCompletedError means a customer requested an export of an order
// that is still in a mutable state.
type OrderNotCompletedError struct {
	Status string
}

func (e OrderNotCompletedError) Error() string {
	return "only completed orders can be exported"
}

// InsufficientPrivilegeError means the requester lacks the management capability.
type InsufficientPrivilegeError struct{}

func (e InsufficientPrivilegeError) Error() string {
	return "you do not have permission to perform this action"
}

// GenerationError wraps I/O failures while building or streaming an export.
type GenerationError struct {
	Err error
}

func (e GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("export generation failed: %v", e.Err)
	}
	return "export generation failed"
}

func (e GenerationError) Unwrap() error { return e.Err }

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

func IsInvalidToken(err error) bool {
	var target InvalidTokenError
	return errors.As(err, &target)
}

func IsNotOwner(err error) bool {
	var target NotOwnerError
	return errors.As(err, &target)
}

func IsOrderNotCompleted(err error) bool {
	var target OrderNotCompletedError
	return errors.As(err, &target)
}

func IsInsufficientPrivilege(err error) bool {
	var target InsufficientPrivilegeError
	return errors.As(err, &target)
}

func IsGeneration(err error) bool {
	var target GenerationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
