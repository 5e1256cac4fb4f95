package provider

import (
	"errors"
	"fmt"
)

// Kind classifies the outcome of a provider call. Every error crossing the
// CloudProvider boundary maps to exactly one kind; nothing is silently
// discarded.
type Kind int

const (
	// KindNotFound means the resource is already gone. Benign.
	KindNotFound Kind = iota
	// KindConflict means a dependent still references the resource. Retried
	// with backoff until the dependent converges or attempts run out.
	KindConflict
	// KindTransient covers throttling, timeouts and other short-lived API
	// failures. Retried with backoff.
	KindTransient
	// KindPermanent covers authorization and validation failures. Never
	// retried.
	KindPermanent
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	case KindTransient:
		return "Transient"
	case KindPermanent:
		return "Permanent"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a classified provider failure.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with a classification.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the classification from err. Unclassified errors default
// to transient and go through the bounded retry.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindTransient
}

// IsNotFound reports whether err classifies as an already-gone resource.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}
