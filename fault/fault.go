// Package fault defines the error kinds shared by the filter pipeline and
// the media session service.
//
// Every error surfaced to a caller carries a machine-readable [Kind] and a
// diagnostic message bounded to [MaxMessage] runes. Callers match kinds with
// errors.Is against the exported sentinels:
//
//	if errors.Is(err, fault.ErrStateConflict) { ... }
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUnknown is reported for errors that carry no kind.
	KindUnknown Kind = iota
	// KindInvalidParameter covers unknown filter identifiers, wrong parameter
	// types and values outside an operation's valid domain.
	KindInvalidParameter
	// KindFilterDesign covers cutoff frequencies violating ordering or
	// Nyquist constraints.
	KindFilterDesign
	// KindExternalProcess covers decode/encode collaborator failures.
	KindExternalProcess
	// KindStateConflict covers operations attempted in an invalid session state.
	KindStateConflict
)

// MaxMessage bounds the diagnostic text carried by an Error.
const MaxMessage = 400

var kindNames = map[Kind]string{
	KindUnknown:          "Unknown",
	KindInvalidParameter: "InvalidParameter",
	KindFilterDesign:     "FilterDesignError",
	KindExternalProcess:  "ExternalProcessError",
	KindStateConflict:    "StateConflict",
}

// String returns the kind name used in API responses.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels for errors.Is matching. Any *Error with the same Kind matches.
var (
	ErrInvalidParameter = &Error{Kind: KindInvalidParameter}
	ErrFilterDesign     = &Error{Kind: KindFilterDesign}
	ErrExternalProcess  = &Error{Kind: KindExternalProcess}
	ErrStateConflict    = &Error{Kind: KindStateConflict}
)

// Error is a kinded failure with a bounded diagnostic message.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "effects.delay"
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if msg == "" {
		msg = e.Kind.String()
	}

	if e.Op == "" {
		return msg
	}

	return e.Op + ": " + msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind && t.Op == "" && t.Msg == "" && t.Err == nil
}

// New returns an Error of the given kind with a formatted, bounded message.
func New(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: Truncate(fmt.Sprintf(format, args...), MaxMessage)}
}

// Wrap attaches a kind to err. A nil err returns nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Kind: kind, Op: op, Msg: Truncate(err.Error(), MaxMessage), Err: err}
}

// InvalidParameter is shorthand for New(KindInvalidParameter, ...).
func InvalidParameter(op, format string, args ...any) *Error {
	return New(KindInvalidParameter, op, format, args...)
}

// FilterDesign is shorthand for New(KindFilterDesign, ...).
func FilterDesign(op, format string, args ...any) *Error {
	return New(KindFilterDesign, op, format, args...)
}

// StateConflict is shorthand for New(KindStateConflict, ...).
func StateConflict(op, format string, args ...any) *Error {
	return New(KindStateConflict, op, format, args...)
}

// ExternalProcess reports a collaborator failure. The diagnostic output is
// truncated to limit runes; a non-positive limit uses MaxMessage.
func ExternalProcess(op string, diagnostic string, limit int, cause error) *Error {
	if limit <= 0 {
		limit = MaxMessage
	}

	return &Error{Kind: KindExternalProcess, Op: op, Msg: Truncate(diagnostic, limit), Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// Truncate limits s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}

	if len(s) <= n {
		return s
	}

	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
