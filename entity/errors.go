package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrInvalidState = errors.New("invalid state")
	// ErrUnreconciled marks a settled payment whose SIP was not advanced.
	ErrUnreconciled = errors.New("settled payment not applied to SIP")
)

const (
	KindFund        = "Fund"
	KindSip         = "SIP"
	KindUser        = "User"
	KindTransaction = "Transaction"
	KindRun         = "Execution run"
)

type NotFoundError struct {
	Kind string
	ID   string
}

func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InvalidStateError reports an illegal lifecycle transition.
type InvalidStateError struct {
	SipID     string
	State     string
	Operation string
}

func NewInvalidStateError(sipID, state, operation string) *InvalidStateError {
	return &InvalidStateError{SipID: sipID, State: state, Operation: operation}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid operation '%s' for SIP %s in state %s", e.Operation, e.SipID, e.State)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// IsFundNotFound reports whether err is a NotFound error for a fund.
func IsFundNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) && nf.Kind == KindFund
}
