// Package weberror holds the closed set of request-handling failures
// and their mapping to HTTP statuses and wire messages.
package weberror

import (
	"fmt"
	"net/http"
)

// A Kind identifies a recognized request-handling failure.
type Kind int

const (
	// KindInternal is the fallthrough for uncategorized failures.
	KindInternal Kind = iota
	// KindNotFound is returned when no route matches.
	KindNotFound
	// KindBadRequest covers a missing required header or an oversized body.
	KindBadRequest
	// KindUnauthorized is returned on credential mismatch.
	KindUnauthorized
	// KindMethodNotAllowed is returned when a route matches but not the method.
	KindMethodNotAllowed
	// KindSystem covers internal configuration, filesystem and database failures.
	KindSystem
)

// An Error is a recognized failure destined for the status table.
type Error struct {
	Kind Kind
	// Detail is logged server-side and never rendered on the wire.
	Detail string
}

// New returns a new Error of the given kind.
func New(kind Kind, detail string) error {
	return &Error{
		Kind:   kind,
		Detail: detail,
	}
}

// NotFound returns a route-not-found Error.
func NotFound() error {
	return New(KindNotFound, "")
}

// BadRequest returns a malformed-request Error.
func BadRequest(detail string) error {
	return New(KindBadRequest, detail)
}

// Unauthorized returns a credential-mismatch Error.
func Unauthorized() error {
	return New(KindUnauthorized, "")
}

// MethodNotAllowed returns a wrong-method Error.
func MethodNotAllowed() error {
	return New(KindMethodNotAllowed, "")
}

// System returns an internal failure Error carrying the underlying cause.
func System(err error) error {
	return New(KindSystem, err.Error())
}

// Error stringifies the error.
func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Message()
	}
	return fmt.Sprintf("%s: %s", e.Message(), e.Detail)
}

// HTTPCode returns the HTTP status code of the error's kind.
func (e *Error) HTTPCode() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindSystem, KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// Message returns the short wire message of the error's kind.
func (e *Error) Message() string {
	switch e.Kind {
	case KindNotFound:
		return "NOT_FOUND"
	case KindBadRequest:
		return "BAD_REQUEST"
	case KindUnauthorized:
		return "Unauthorized"
	case KindMethodNotAllowed:
		return "Invalid Request Method"
	case KindSystem:
		return "SYS_ERROR"
	}
	return "INTERNAL_SERVER_ERROR"
}
