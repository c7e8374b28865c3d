// Package apperr is the closed error taxonomy shared by every entity family.
//
// Repositories return *Error values; each domain package exposes sentinels
// built with New so callers can match with errors.Is regardless of the
// storage cause attached by Wrap.
package apperr

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	Internal Kind = iota
	NotFound
	Duplicate
	InvalidReference
	ConstraintViolation
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Duplicate:
		return "duplicate_entry"
	case InvalidReference:
		return "invalid_reference"
	case ConstraintViolation:
		return "constraint_violation"
	default:
		return "internal_error"
	}
}

// Entity names the family an error belongs to.
type Entity string

const (
	Event    Entity = "event"
	Packet   Entity = "event_packet"
	Ticket   Entity = "ticket"
	Relation Entity = "event_packet_relation"
)

type Error struct {
	Entity Entity
	Kind   Kind
	// Err is the underlying cause. It is logged, never sent to clients.
	Err error
}

func New(entity Entity, kind Kind) *Error {
	return &Error{Entity: entity, Kind: kind}
}

func Wrap(entity Entity, kind Kind, cause error) *Error {
	return &Error{Entity: entity, Kind: kind, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Entity, e.Kind, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Entity, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same entity and kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Entity == e.Entity && t.Kind == e.Kind
}

// From extracts the first *Error in err's chain. Any other error is
// reported as an Internal error of an unknown entity.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return &Error{Kind: Internal, Err: err}
}

func KindOf(err error) Kind {
	return From(err).Kind
}
