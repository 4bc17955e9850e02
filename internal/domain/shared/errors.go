package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures so adapters can map them to transport codes
type ErrorKind string

const (
	KindInvalidIdentifier     ErrorKind = "invalid_identifier"
	KindNotFound              ErrorKind = "not_found"
	KindIneligibleActor       ErrorKind = "ineligible_actor"
	KindInsufficientResources ErrorKind = "insufficient_resources"
	KindInvalidRequest        ErrorKind = "invalid_request"
	KindCancelled             ErrorKind = "cancelled"
	KindUnauthenticated       ErrorKind = "unauthenticated"
	KindForbidden             ErrorKind = "forbidden"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// ErrorKind lets typed wrappers expose the kind of their embedded DomainError
func (e *DomainError) ErrorKind() ErrorKind {
	return e.Kind
}

// Is matches any domain error of the same kind, so errors.Is(err, ErrNotFound) works
// through typed wrappers and fmt.Errorf chains.
func (e *DomainError) Is(target error) bool {
	k, ok := target.(kinded)
	return ok && k.ErrorKind() == e.Kind
}

type kinded interface {
	ErrorKind() ErrorKind
}

func NewDomainError(kind ErrorKind, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

// Sentinels for errors.Is checks
var (
	ErrInvalidIdentifier     = &DomainError{Kind: KindInvalidIdentifier, Message: "invalid identifier"}
	ErrNotFound              = &DomainError{Kind: KindNotFound, Message: "not found"}
	ErrIneligibleActor       = &DomainError{Kind: KindIneligibleActor, Message: "ineligible actor"}
	ErrInsufficientResources = &DomainError{Kind: KindInsufficientResources, Message: "insufficient resources"}
	ErrInvalidRequest        = &DomainError{Kind: KindInvalidRequest, Message: "invalid request"}
	ErrCancelled             = &DomainError{Kind: KindCancelled, Message: "cancelled"}
	ErrUnauthenticated       = &DomainError{Kind: KindUnauthenticated, Message: "unauthenticated"}
	ErrForbidden             = &DomainError{Kind: KindForbidden, Message: "forbidden"}
)

// KindOf returns the kind of the first DomainError in err's chain, or "" if there is none
func KindOf(err error) ErrorKind {
	var k kinded
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return ""
}

type InvalidIdentifierError struct {
	*DomainError
	Value string
}

func NewInvalidIdentifierError(value string) *InvalidIdentifierError {
	return &InvalidIdentifierError{
		DomainError: NewDomainError(KindInvalidIdentifier, fmt.Sprintf("invalid identifier %q", value)),
		Value:       value,
	}
}

type NotFoundError struct {
	*DomainError
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{
		DomainError: NewDomainError(KindNotFound, fmt.Sprintf("%s %q not found", entity, id)),
		Entity:      entity,
		ID:          id,
	}
}

type IneligibleActorError struct {
	*DomainError
}

func NewIneligibleActorError(message string) *IneligibleActorError {
	return &IneligibleActorError{DomainError: NewDomainError(KindIneligibleActor, message)}
}

type InsufficientResourcesError struct {
	*DomainError
	Resource  ResourceKind
	Required  int
	Available int
}

func NewInsufficientResourcesError(resource ResourceKind, required, available int) *InsufficientResourcesError {
	return &InsufficientResourcesError{
		DomainError: NewDomainError(KindInsufficientResources,
			fmt.Sprintf("insufficient %s: need %d, have %d", resource, required, available)),
		Resource:  resource,
		Required:  required,
		Available: available,
	}
}

type InvalidRequestError struct {
	*DomainError
}

func NewInvalidRequestError(message string) *InvalidRequestError {
	return &InvalidRequestError{DomainError: NewDomainError(KindInvalidRequest, message)}
}

type CancelledError struct {
	*DomainError
}

func NewCancelledError(message string) *CancelledError {
	return &CancelledError{DomainError: NewDomainError(KindCancelled, message)}
}

func NewUnauthenticatedError(message string) *DomainError {
	return NewDomainError(KindUnauthenticated, message)
}

func NewForbiddenError(message string) *DomainError {
	return NewDomainError(KindForbidden, message)
}
