package errors

import (
	"errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// InvalidQuantityError reports a quantity the allocation engine refuses to
// classify: a negative value, or an allocation above the available stock.
type InvalidQuantityError struct {
	ProductCode string
	Field       string
	Value       int
	Limit       int
}

func (e *InvalidQuantityError) Error() string {
	if e.Value < 0 {
		return fmt.Sprintf("invalid quantity for %s: %s must be non-negative, got %d", e.ProductCode, e.Field, e.Value)
	}
	return fmt.Sprintf("invalid quantity for %s: %s %d exceeds %d", e.ProductCode, e.Field, e.Value, e.Limit)
}

func NewInvalidQuantityError(productCode, field string, value, limit int) *InvalidQuantityError {
	return &InvalidQuantityError{
		ProductCode: productCode,
		Field:       field,
		Value:       value,
		Limit:       limit,
	}
}

func IsInvalidQuantityError(err error) (*InvalidQuantityError, bool) {
	var qe *InvalidQuantityError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		return nfe, true
	}
	return nil, false
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// DeadlockError is returned when a write kept hitting database lock
// contention after every retry.
type DeadlockError struct {
	Message string
}

func (e *DeadlockError) Error() string {
	return e.Message
}

func NewDeadlockError(message string) *DeadlockError {
	return &DeadlockError{Message: message}
}

func IsDeadlockError(err error) (*DeadlockError, bool) {
	var de *DeadlockError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
