// Package reward implements the point ledger, the level policy, and the
// validation rules shared by the task and wish lifecycles. It has no
// dependencies beyond the entity model.
package reward

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Callers match with errors.Is; the concrete error
// value carries the entity context needed for a precise message.
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrNotAuthorized       = errors.New("not authorized")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidRating       = errors.New("invalid rating")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotEligible         = errors.New("not eligible")
	ErrStorage             = errors.New("storage failure")
)

// Error is a domain error with enough context to render a user-facing
// message: which entity, which id, its current status where relevant, and
// what went wrong.
type Error struct {
	Kind   error
	Entity string
	ID     string
	Status string
	Detail string
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg = e.Detail
	}
	switch {
	case e.ID != "" && e.Status != "":
		return fmt.Sprintf("%s %s (status %s): %s", e.Entity, e.ID, e.Status, msg)
	case e.ID != "":
		return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, msg)
	case e.Entity != "":
		return fmt.Sprintf("%s: %s", e.Entity, msg)
	default:
		return msg
	}
}

func (e *Error) Unwrap() error { return e.Kind }

// NewError builds a domain error for an entity. Detail may be empty, in
// which case the kind's message is used.
func NewError(kind error, entity, id, detail string) *Error {
	return &Error{Kind: kind, Entity: entity, ID: id, Detail: detail}
}

// TransitionError reports an illegal lifecycle move from the given status.
func TransitionError(entity, id, status, detail string) *Error {
	return &Error{Kind: ErrInvalidTransition, Entity: entity, ID: id, Status: status, Detail: detail}
}

// IsRecoverable reports whether the caller may usefully retry or correct
// the operation. Only storage failures are treated as fatal to the attempt.
func IsRecoverable(err error) bool {
	return !errors.Is(err, ErrStorage)
}
