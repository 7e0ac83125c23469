// Package apperr defines the error taxonomy every handler maps through.
// Each error carries a stable kind plus a human-readable reason; reasons for
// not-found and forbidden never describe the entity's actual owner or
// assignees.
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	// KindNotFound covers both a missing id and an id outside the caller's
	// ownership scope; the two are deliberately indistinguishable.
	KindNotFound Kind = "not_found"
	// KindForbidden means the entity is provably visible to the caller but
	// the action is not permitted for their role or assignment.
	KindForbidden  Kind = "forbidden"
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	// KindUpstream wraps collaborator failures (database, photo store).
	// Retries, if any, belong to the caller.
	KindUpstream Kind = "upstream"
)

type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(reason string) *Error   { return &Error{Kind: KindNotFound, Reason: reason} }
func Forbidden(reason string) *Error  { return &Error{Kind: KindForbidden, Reason: reason} }
func Validation(reason string) *Error { return &Error{Kind: KindValidation, Reason: reason} }
func Conflict(reason string) *Error   { return &Error{Kind: KindConflict, Reason: reason} }

func Upstream(reason string, err error) *Error {
	return &Error{Kind: KindUpstream, Reason: reason, Err: err}
}

// KindOf extracts the taxonomy kind, or "" for errors outside it.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func IsNotFound(err error) bool  { return KindOf(err) == KindNotFound }
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }

func statusOf(k Kind) int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Write renders err as the standard JSON error body. Errors outside the
// taxonomy become an opaque 500 so internal details never leak.
func Write(w http.ResponseWriter, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		ae = &Error{Kind: "internal", Reason: "internal server error"}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusOf(ae.Kind))
	json.NewEncoder(w).Encode(map[string]string{
		"error":  string(ae.Kind),
		"reason": ae.Reason,
	})
}
