package config

import (
	"errors"
	"fmt"
)

// ErrFrozen is returned by every mutating operation invoked after Freeze.
// The requested mutation never applies, but the store itself stays intact.
var ErrFrozen = errors.New("configuration is frozen and can no longer be modified")

// ParseError reports a key string that does not match the path grammar.
type ParseError struct {
	Fragment string // offending portion of the key
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid path fragment %q", e.Fragment)
}

// NotFoundError reports a lookup against a key with no resolvable value
// in the merged tree.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("configuration key %q not found", e.Key)
}

// TypeError reports a coercion requested against a value of an
// incompatible shape, including malformed numeric or boolean strings.
type TypeError struct {
	Origin   string // provenance of the value, if known
	Actual   string // shape the value actually has
	Expected string // shape the caller asked for
	Key      string // path that addressed the value, if any
}

func (e *TypeError) Error() string {
	msg := fmt.Sprintf("invalid type: %s, expected %s", e.Actual, e.Expected)
	if e.Key != "" {
		msg += fmt.Sprintf(" for key %q", e.Key)
	}
	if e.Origin != "" {
		msg += fmt.Sprintf(" in %s", e.Origin)
	}
	return msg
}

// withKey re-wraps a coercion failure with the path that produced it.
func withKey(err error, key string) error {
	var te *TypeError
	if errors.As(err, &te) {
		return &TypeError{Origin: te.Origin, Actual: te.Actual, Expected: te.Expected, Key: key}
	}
	return err
}

// SourceError wraps a source-specific failure surfaced during a refresh.
// The underlying diagnostic is carried unchanged and reachable through
// errors.Is and errors.As.
type SourceError struct {
	Desc  string // source description, e.g. a file path or "environment"
	Cause error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %s", e.Desc, e.Cause)
}

func (e *SourceError) Unwrap() error { return e.Cause }
