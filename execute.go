package goexpect

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	goskema "github.com/reoring/goskema"

	"github.com/reoring/goexpect/internal/diag"
)

// Waiter is the engine's stand-in for a deferred result: async subjects and
// async parameters may implement it, and the async built-ins await it. A sync
// implementation returning a Waiter is an implementation error.
type Waiter interface {
	Wait(ctx context.Context) (any, error)
}

// execute runs the matched definition's implementation against the parsed
// values and normalizes every legal outcome shape into nil (pass) or an error
// from the stable taxonomy. rawArgs are the negation-stripped call arguments;
// rawArgs[0] is the subject.
func (a *Assertion) execute(ctx context.Context, pr parsed, rawArgs []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = a.recovered(r)
		}
	}()

	subject := rawArgs[0]

	if a.schemaImpl != nil {
		verr := pr.subjectErr
		if !pr.subjectChecked {
			_, verr = a.schemaImpl.Parse(ctx, subject)
		}
		return a.classify(verr, subject)
	}

	if a.async {
		out, ferr := a.asyncFn(ctx, pr.values...)
		if ferr != nil {
			return a.classify(ferr, subject)
		}
		return a.interpret(ctx, out, pr.values[0], rawArgs)
	}

	out := a.syncFn(pr.values...)
	if shape, isAsync := asyncShape(out); isAsync {
		// The stray deferred result is deliberately never awaited.
		return &ImplementationError{
			Assertion: a.repr,
			Reason:    fmt.Sprintf("sync implementation returned an async result (%s); use NewAsyncAssertion", shape),
		}
	}
	return a.interpret(ctx, out, pr.values[0], rawArgs)
}

// interpret normalizes a function-backed implementation's return value. The
// precedence order (Schema, Failure, bool, Issues/error, invalid) is part of
// the dispatch contract. subject is the parsed slot-0 value, so a returned
// Schema validates exactly what the implementation saw, coercions included.
func (a *Assertion) interpret(ctx context.Context, out any, subject any, rawArgs []any) error {
	switch t := out.(type) {
	case nil:
		return nil
	case Schema:
		_, verr := t.Parse(ctx, subject)
		return a.classify(verr, subject)
	case *Failure:
		return a.failureError(t, rawArgs)
	case bool:
		if t {
			return nil
		}
		return &AssertionError{Message: a.describeCall(rawArgs)}
	case goskema.Issues:
		return translateIssues(t, subject, a.repr)
	case error:
		return a.classify(t, subject)
	default:
		return &ImplementationError{
			Assertion: a.repr,
			Reason:    fmt.Sprintf("invalid return type %T (want bool, Schema, *Failure, Issues, error, or nil)", out),
		}
	}
}

// classify routes an error produced by an implementation or schema:
// validation-library Issues become assertion failures, AssertionErrors pass
// through, anything else is the assertion author's bug.
func (a *Assertion) classify(err error, subject any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if _, ok := goskema.AsIssues(err); ok {
		return translateIssues(err, subject, a.repr)
	}
	if _, ok := AsAssertionError(err); ok {
		return err
	}
	if _, ok := AsImplementationError(err); ok {
		return err
	}
	return &ImplementationError{Assertion: a.repr, Reason: "implementation returned an unexpected error", Cause: err}
}

func (a *Assertion) recovered(r any) error {
	if err, ok := r.(error); ok {
		if _, isAssert := AsAssertionError(err); isAssert {
			return err
		}
		return &ImplementationError{Assertion: a.repr, Reason: "implementation panicked", Cause: err}
	}
	return &ImplementationError{Assertion: a.repr, Reason: fmt.Sprintf("implementation panicked: %v", r)}
}

func (a *Assertion) failureError(f *Failure, rawArgs []any) error {
	e := &AssertionError{
		Message:     f.Message,
		Actual:      f.Actual,
		Expected:    f.Expected,
		HasActual:   f.HasActual,
		HasExpected: f.HasExpected,
	}
	if e.Message == "" {
		e.Message = a.describeCall(rawArgs)
	}
	if f.FormatActual != nil && f.HasActual {
		e.Actual = f.FormatActual(f.Actual)
	}
	if f.FormatExpected != nil && f.HasExpected {
		e.Expected = f.FormatExpected(f.Expected)
	}
	if f.HasActual && f.HasExpected && !f.NoDiff {
		e.Diff = diag.Diff(f.Expected, f.Actual)
	}
	return e
}

// describeCall synthesizes the generic failure message: the subject, the
// phrase as called, and any parameter values.
func (a *Assertion) describeCall(rawArgs []any) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "expected %s", diag.Format(rawArgs[0]))
	for i, s := range a.slots {
		if i == 0 {
			continue
		}
		if s.isLiteral() {
			fmt.Fprintf(b, " %v", rawArgs[i])
			continue
		}
		fmt.Fprintf(b, " %s", diag.Format(rawArgs[i]))
	}
	return b.String()
}

var ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()

// asyncShape detects deferred results a sync implementation must not return:
// Waiters, channels, and ctx-taking functions.
func asyncShape(out any) (string, bool) {
	if out == nil {
		return "", false
	}
	if _, ok := out.(Schema); ok {
		// Schemas are a legal sync return shape even when function-typed.
		return "", false
	}
	if _, ok := out.(Waiter); ok {
		return "Waiter", true
	}
	rt := reflect.TypeOf(out)
	switch rt.Kind() {
	case reflect.Chan:
		return rt.String(), true
	case reflect.Func:
		if rt.NumIn() >= 1 && rt.In(0) == ctxType {
			return rt.String(), true
		}
	}
	return "", false
}
