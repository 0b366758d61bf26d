package errs

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Error Kinds
// --------------------------------------------------------------------------

// Kind classifies an error into one of the failure categories of the
// dictionary. Every error returned by this module wraps exactly one Kind.
type Kind uint64

const (
	KindUnknown       Kind = iota // 0: Unclassified failure.
	KindKeyNotFound               // 1: The requested key does not exist.
	KindSerialization             // 2: A value could not be encoded or decoded.
	KindCorruption                // 3: A stored blob is damaged or has an unknown format.
	KindStorage                   // 4: The underlying storage engine failed.
	KindClosed                    // 5: The dictionary or engine was already closed.
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindKeyNotFound:
		return "KeyNotFound"
	case KindSerialization:
		return "Serialization"
	case KindCorruption:
		return "Corruption"
	case KindStorage:
		return "Storage"
	case KindClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is the error type returned by all packages of this module. It carries
// the failure category (Kind), the operation that failed (Op), the key the
// operation was acting on (Key, may be empty for key-less operations such as
// Keys or Close) and an optional underlying cause (Err).
type Error struct {
	Kind Kind   // The failure category.
	Op   string // The operation that failed, e.g. "dict.Get".
	Key  string // The key involved, empty if not applicable.
	Err  error  // The underlying cause, nil if there is none.
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("pdict: %s: %s", e.Op, e.Kind)
	if e.Key != "" {
		msg += fmt.Sprintf(" (key %q)", e.Key)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As
// to traverse into wrapped engine or codec errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error. Two *Error values match when
// their kinds are equal, so errors.Is(err, &Error{Kind: KindClosed}) holds for
// every closed error regardless of operation or key.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// --------------------------------------------------------------------------
// Constructors
// --------------------------------------------------------------------------

// New creates a new *Error with the given kind, operation and key.
func New(kind Kind, op, key string) *Error {
	return &Error{Kind: kind, Op: op, Key: key}
}

// Wrap creates a new *Error with the given kind, operation and key that wraps
// an underlying cause. A nil cause is allowed and equivalent to New.
func Wrap(kind Kind, op, key string, err error) *Error {
	return &Error{Kind: kind, Op: op, Key: key, Err: err}
}

// --------------------------------------------------------------------------
// Predicates
// --------------------------------------------------------------------------

// KindOf returns the kind of err, or KindUnknown if err is nil or does not
// wrap an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKeyNotFound reports whether err signals a missing key.
func IsKeyNotFound(err error) bool {
	return KindOf(err) == KindKeyNotFound
}

// IsSerialization reports whether err signals an encode or decode failure.
func IsSerialization(err error) bool {
	return KindOf(err) == KindSerialization
}

// IsCorruption reports whether err signals a damaged stored blob.
func IsCorruption(err error) bool {
	return KindOf(err) == KindCorruption
}

// IsStorage reports whether err signals a storage engine failure.
func IsStorage(err error) bool {
	return KindOf(err) == KindStorage
}

// IsClosed reports whether err signals use after Close.
func IsClosed(err error) bool {
	return KindOf(err) == KindClosed
}
