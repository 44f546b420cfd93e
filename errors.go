package goexpect

import (
	"errors"
	"fmt"
	"strings"

	goskema "github.com/reoring/goskema"

	"github.com/reoring/goexpect/internal/diag"
)

// Error codes (exported consts for IDE completion and pattern matching by
// downstream tooling; the string values are stable API).
const (
	CodeUnknownAssertion   = "unknown_assertion"
	CodeAmbiguousAssertion = "ambiguous_assertion"
	CodeImplementation     = "assertion_implementation"
	CodeAssertionFailed    = "assertion_failed"
)

// Coder is implemented by every error the engine raises.
type Coder interface{ Code() string }

// ErrorCode extracts the stable code from an engine error, or "" for foreign
// errors.
func ErrorCode(err error) string {
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// AssertionError is the expected failure: the subject genuinely did not satisfy
// (or, when negated, did satisfy) the matched assertion. Test frameworks are
// expected to catch and report this kind; the other kinds indicate defects in
// the call or in the registered pool.
type AssertionError struct {
	Message  string
	Actual   any
	Expected any
	Diff     string
	// Negated marks failures of the form "expected X not to ..., but it did".
	Negated bool
	// HasActual/HasExpected distinguish "unset" from a nil value.
	HasActual   bool
	HasExpected bool
}

func (e *AssertionError) Code() string { return CodeAssertionFailed }

func (e *AssertionError) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Message)
	if e.HasExpected {
		fmt.Fprintf(b, "\nexpected: %s", diag.Format(e.Expected))
	}
	if e.HasActual {
		fmt.Fprintf(b, "\nactual:   %s", diag.Format(e.Actual))
	}
	if e.Diff != "" {
		fmt.Fprintf(b, "\ndiff (-expected +actual):\n%s", e.Diff)
	}
	return b.String()
}

// UnknownAssertionError reports that no registered definition structurally
// matched the call. It carries the attempted phrase and the argument shapes so
// the caller can see what was looked up.
type UnknownAssertionError struct {
	Phrase string
	Args   []any
}

func (e *UnknownAssertionError) Code() string { return CodeUnknownAssertion }

func (e *UnknownAssertionError) Error() string {
	shapes := make([]string, len(e.Args))
	for i, a := range e.Args {
		shapes[i] = diag.TypeName(a)
	}
	return fmt.Sprintf("unknown assertion %q with arguments (%s)", e.Phrase, strings.Join(shapes, ", "))
}

// AmbiguousAssertionError reports that more than one definition matched with
// equal specificity. This is a defect in the registered pool, not a transient
// condition; all tied definitions are named.
type AmbiguousAssertionError struct {
	Phrase  string
	Matches []string
}

func (e *AmbiguousAssertionError) Code() string { return CodeAmbiguousAssertion }

func (e *AmbiguousAssertionError) Error() string {
	return fmt.Sprintf("ambiguous assertion %q: %d definitions match with equal specificity: %s",
		e.Phrase, len(e.Matches), strings.Join(e.Matches, "; "))
}

// ImplementationError reports that the author of an assertion wrote broken
// logic: malformed parts or impl at creation time, an invalid return shape, an
// unexpected error type, or an async result under the sync entrypoint.
type ImplementationError struct {
	Assertion string // human-readable definition form, when known
	Reason    string
	Cause     error
}

func (e *ImplementationError) Code() string { return CodeImplementation }

func (e *ImplementationError) Unwrap() error { return e.Cause }

func (e *ImplementationError) Error() string {
	b := &strings.Builder{}
	b.WriteString("invalid assertion implementation")
	if e.Assertion != "" {
		fmt.Fprintf(b, " %q", e.Assertion)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Cause != nil {
		fmt.Fprintf(b, ": %v", e.Cause)
	}
	return b.String()
}

// AsAssertionError extracts an AssertionError using errors.As internally.
func AsAssertionError(err error) (*AssertionError, bool) {
	var e *AssertionError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// AsUnknownAssertionError extracts an UnknownAssertionError.
func AsUnknownAssertionError(err error) (*UnknownAssertionError, bool) {
	var e *UnknownAssertionError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// AsAmbiguousAssertionError extracts an AmbiguousAssertionError.
func AsAmbiguousAssertionError(err error) (*AmbiguousAssertionError, bool) {
	var e *AmbiguousAssertionError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// AsImplementationError extracts an ImplementationError.
func AsImplementationError(err error) (*ImplementationError, bool) {
	var e *ImplementationError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Fail returns the engine's base assertion failure unconditionally. Useful for
// "this branch must be unreachable" checks inside test helpers.
func Fail(format string, args ...any) error {
	msg := "explicit failure"
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &AssertionError{Message: msg}
}

// translateIssues turns a validation-library failure into an AssertionError.
// Raw goskema.Issues never leave the engine; callers see a rendered message
// plus the subject as actual. Non-Issues errors are returned unchanged.
func translateIssues(err error, subject any, expected string) error {
	iss, ok := goskema.AsIssues(err)
	if !ok {
		return err
	}
	return &AssertionError{
		Message:     renderIssues(iss),
		Actual:      subject,
		HasActual:   true,
		Expected:    expected,
		HasExpected: expected != "",
	}
}

// renderIssues pretty-prints issues for humans: messages when present, codes
// otherwise, with paths when they carry information.
func renderIssues(iss goskema.Issues) string {
	if len(iss) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(iss))
	for _, it := range iss {
		msg := it.Message
		if msg == "" {
			msg = it.Code
		}
		if it.Path != "" && it.Path != "/" {
			msg = fmt.Sprintf("%s at %s", msg, it.Path)
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}
