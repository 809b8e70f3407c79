package bracefmt

import (
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for programmatic error handling.
var (
	ErrMalformedIndex          = errors.New("malformed index")
	ErrIndexOutOfRange         = errors.New("index out of range")
	ErrMalformedWidth          = errors.New("malformed width")
	ErrUnexpectedCharacter     = errors.New("unexpected character")
	ErrUnterminatedPlaceholder = errors.New("unterminated placeholder")
	ErrNoRenderer              = errors.New("no renderer")
	ErrInvalidOptions          = errors.New("invalid options")
	ErrOverflow                = errors.New("overflow")
	ErrWriteFailure            = errors.New("write failure")
	ErrArgCount                = errors.New("argument count mismatch")
	ErrUnsupportedDestination  = errors.New("unsupported destination")
)

// ParseError reports a template syntax problem. It unwraps to one of the
// parser sentinels so callers can use [errors.Is].
type ParseError struct {
	Err    error
	Offset int
	// Ordinal is the zero-based placeholder number the error occurred in, or
	// -1 when it occurred before the first placeholder.
	Ordinal int
	// Index and Max are set for ErrIndexOutOfRange. Max is -1 when no
	// arguments were given.
	Index int
	Max   int
	// Char is set for ErrUnexpectedCharacter.
	Char byte
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
	switch e.Err {
	case ErrUnexpectedCharacter:
		msg += fmt.Sprintf(" %q", e.Char)
	case ErrIndexOutOfRange:
		if e.Max < 0 {
			msg += fmt.Sprintf(" (%d specified, no arguments given)", e.Index)
		} else {
			msg += fmt.Sprintf(" (%d specified, max allowed is %d)", e.Index, e.Max)
		}
	}
	if e.Ordinal >= 0 {
		msg += fmt.Sprintf(" in placeholder #%d", e.Ordinal)
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Format renders template with args into dest and returns the number of
// bytes written. The destination is wrapped by [AppenderFor].
//
// Output written before an error is left in dest.
func Format(dest any, template string, args ...any) (int, error) {
	a, err := AppenderFor(dest)
	if err != nil {
		return 0, err
	}
	return FormatTo(a, template, args...)
}

// FormatTo renders template with args into a.
func FormatTo(a Appender, template string, args ...any) (int, error) {
	table, err := newDispatchTable(args)
	if err != nil {
		return 0, err
	}
	e := newEngine(a, table, args)
	defer e.release()
	if err := parse(NewParser(template, len(args)), e.literal, e.placeholder); err != nil {
		return e.total, err
	}
	return e.total, nil
}

// Fprint renders template with args to w.
func Fprint(w io.Writer, template string, args ...any) (int, error) {
	return FormatTo(NewWriterAppender(w), template, args...)
}

// Append renders template with args onto dst and returns the extended slice.
// On error the slice holds everything written before the failure.
func Append(dst []byte, template string, args ...any) ([]byte, error) {
	_, err := FormatTo(NewBufferAppender(&dst), template, args...)
	return dst, err
}

// Sprint renders template with args into a new string.
func Sprint(template string, args ...any) (string, error) {
	var buf []byte
	if _, err := FormatTo(NewBufferAppender(&buf), template, args...); err != nil {
		return "", err
	}
	return string(buf), nil
}

// Validate checks template against an argument count without rendering.
// It returns the same parse error [Format] would return for nargs arguments
// that all have renderers.
func Validate(template string, nargs int) error {
	sink := NewDiscardAppender()
	return parse(NewParser(template, nargs),
		sink.AppendString,
		func(Component) error { return nil },
	)
}

// IsValid reports whether [Validate] succeeds.
func IsValid(template string, nargs int) bool {
	return Validate(template, nargs) == nil
}
