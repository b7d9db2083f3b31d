// Package apperr defines the error kinds surfaced to tool callers.
// Business logic returns these values; only the dispatch boundary decides how
// they are rendered on the wire.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	KindConfiguration    Kind = "configuration"
	KindInvalidParameter Kind = "invalid_parameter"
	KindUpstream         Kind = "upstream"
	KindUnknownTool      Kind = "unknown_tool"
	KindInternal         Kind = "internal"
)

// Error carries a kind, a caller-safe message and an optional cause.
// The cause is for logs only and is never part of Error().
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Configuration reports a missing or unusable setting.
func Configuration(msg string) *Error {
	return &Error{Kind: KindConfiguration, Message: msg}
}

// InvalidParameter reports caller input that violates a tool contract.
func InvalidParameter(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidParameter, Message: fmt.Sprintf(format, args...)}
}

// Upstream reports a failed call to a government API. msg must not contain
// upstream detail; cause is kept for logging.
func Upstream(msg string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: cause}
}

// UnknownTool reports a dispatch to a name outside the catalog.
func UnknownTool(name string) *Error {
	return &Error{Kind: KindUnknownTool, Message: "알 수 없는 도구입니다: " + name}
}

// Internal wraps a failure that is a bug on our side.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// KindOf returns the kind of err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is an *Error of kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
