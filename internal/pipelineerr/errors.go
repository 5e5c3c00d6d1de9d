// Package pipelineerr defines the reflow pipeline's error taxonomy as
// wrapped sentinel errors usable with errors.Is, in the teacher pack's
// fmt.Errorf("...: %w", err) idiom.
package pipelineerr

import "fmt"

// Sentinel errors identifying the taxonomy from the error handling design.
// Wrap one of these with fmt.Errorf("...: %w", ErrX) to preserve errors.Is
// classification while adding context.
var (
	// ErrIO marks a failure reading input or writing output.
	ErrIO = sentinel("io error")
	// ErrEncoding marks input bytes that are not valid UTF-8 where a text
	// leaf is being flattened.
	ErrEncoding = sentinel("encoding error")
	// ErrUnsupportedInline marks an inline AST variant the flattener does
	// not know how to reflow.
	ErrUnsupportedInline = sentinel("unsupported inline")
	// ErrInvariant marks an internal invariant violation; reaching this via
	// valid input is always a bug.
	ErrInvariant = sentinel("invariant violation")
)

type sentinelError string

func sentinel(msg string) error { return sentinelError(msg) }

func (e sentinelError) Error() string { return string(e) }

// Unsupported wraps ErrUnsupportedInline with the offending AST kind name.
func Unsupported(kind string) error {
	return fmt.Errorf("inline kind %q not supported: %w", kind, ErrUnsupportedInline)
}

// Invariant wraps ErrInvariant with a description of the violated invariant.
func Invariant(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvariant)...)
}

// IO wraps ErrIO with context about the operation that failed.
func IO(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrIO, err)
}

// Encoding wraps ErrEncoding with context about where the bad bytes were found.
func Encoding(context string) error {
	return fmt.Errorf("%s: %w", context, ErrEncoding)
}
