package goexpect_test

import (
	"fmt"
	"testing"

	goexpect "github.com/reoring/goexpect"
)

func mustNew(t *testing.T, parts []goexpect.Part, impl any) *goexpect.Assertion {
	t.Helper()
	a, err := goexpect.NewAssertion(parts, impl)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	return a
}

func TestDispatch_ExactMatchPrecedence(t *testing.T) {
	fallback := mustNew(t, []goexpect.Part{"to blurb"}, func(values ...any) any {
		return &goexpect.Failure{Message: "fallback definition chosen"}
	})
	exact := mustNew(t, []goexpect.Part{goexpect.String(), "to blurb"}, func(values ...any) any {
		return true
	})
	e := goexpect.Use(fallback, exact)

	// A string subject parses under both; the exact (typed-subject) one wins.
	if err := e.Expect("s", "to blurb"); err != nil {
		t.Fatalf("exact definition should win and pass: %v", err)
	}
	// A non-string subject only matches the fallback.
	err := e.Expect(42, "to blurb")
	ae, ok := goexpect.AsAssertionError(err)
	if !ok || ae.Message != "fallback definition chosen" {
		t.Fatalf("fallback should be selected for non-string subject, got %v", err)
	}
}

func TestDispatch_AmbiguityDetected(t *testing.T) {
	a := mustNew(t, []goexpect.Part{"to frobnicate"}, goexpect.String())
	b := mustNew(t, []goexpect.Part{"to frobnicate"}, goexpect.String())
	e := goexpect.Use(a, b)

	err := e.Expect("x", "to frobnicate")
	amb, ok := goexpect.AsAmbiguousAssertionError(err)
	if !ok {
		t.Fatalf("expected AmbiguousAssertionError, got %T: %v", err, err)
	}
	if len(amb.Matches) != 2 {
		t.Fatalf("both tied definitions must be named, got %v", amb.Matches)
	}
	if goexpect.ErrorCode(err) != goexpect.CodeAmbiguousAssertion {
		t.Fatalf("wrong code %q", goexpect.ErrorCode(err))
	}
}

func TestDispatch_TwoExactTieIsAmbiguous(t *testing.T) {
	a := mustNew(t, []goexpect.Part{goexpect.Number(), "to wobble"}, func(values ...any) any { return true })
	b := mustNew(t, []goexpect.Part{goexpect.Number(), "to wobble"}, func(values ...any) any { return false })
	e := goexpect.Use(a, b)
	if _, ok := goexpect.AsAmbiguousAssertionError(e.Expect(1, "to wobble")); !ok {
		t.Fatalf("two exact matches must be ambiguous, never first-seen-wins")
	}
}

func TestDispatch_Deterministic(t *testing.T) {
	for i := 0; i < 50; i++ {
		if err := goexpect.Expect(5, "to be greater than", 3); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if goexpect.ErrorCode(goexpect.Expect(42, "to do something impossible")) != goexpect.CodeUnknownAssertion {
			t.Fatalf("run %d: unknown outcome changed", i)
		}
	}
}

func TestDispatch_AndLiteralSlotBeatsSplitter(t *testing.T) {
	pair := mustNew(t,
		[]goexpect.Part{"to pair with", goexpect.Unknown(), "and", goexpect.Unknown()},
		func(values ...any) any {
			joined := fmt.Sprintf("%v%v", values[1], values[2])
			if values[0] == joined {
				return true
			}
			return goexpect.FailureOf(values[0], joined)
		},
	)
	e := goexpect.Use(pair)

	// The whole-call slot match consumes "and" as a literal; the conjunction
	// splitter never runs.
	if err := e.Expect("xy", "to pair with", "x", "and", "y"); err != nil {
		t.Fatalf("literal-and definition should consume the call: %v", err)
	}
	err := e.Expect("xz", "to pair with", "x", "and", "y")
	if _, ok := goexpect.AsAssertionError(err); !ok {
		t.Fatalf("mismatch must be an assertion failure, not unknown: %v", err)
	}
}

func TestDispatch_ImplementationErrors(t *testing.T) {
	boom := mustNew(t, []goexpect.Part{"to explode"}, func(values ...any) any {
		panic("kaboom")
	})
	badShape := mustNew(t, []goexpect.Part{"to return garbage"}, func(values ...any) any {
		return 3.14
	})
	e := goexpect.Use(boom, badShape)

	if _, ok := goexpect.AsImplementationError(e.Expect(1, "to explode")); !ok {
		t.Fatalf("panicking impl must surface as ImplementationError")
	}
	if _, ok := goexpect.AsImplementationError(e.Expect(1, "to return garbage")); !ok {
		t.Fatalf("invalid return shape must surface as ImplementationError")
	}
	// Implementation defects propagate even under negation.
	if _, ok := goexpect.AsImplementationError(e.Expect(1, "not to explode")); !ok {
		t.Fatalf("negation must not swallow implementation errors")
	}
}

func TestDispatch_SchemaReturnValidatesParsedSubject(t *testing.T) {
	// A coercing subject slot hands the implementation the parsed value; a
	// returned schema must validate that same value, not the raw argument.
	normalized := mustNew(t, []goexpect.Part{goexpect.Number(), "to normalize"}, func(values ...any) any {
		return goexpect.TypeOf[float64]()
	})
	e := goexpect.Use(normalized)
	if err := e.Expect(42, "to normalize"); err != nil {
		t.Fatalf("returned schema must see the parsed subject: %v", err)
	}
}

func TestDispatch_SchemaReturnShape(t *testing.T) {
	viaSchema := mustNew(t, []goexpect.Part{"to check out"}, func(values ...any) any {
		return goexpect.String()
	})
	e := goexpect.Use(viaSchema)
	if err := e.Expect("ok", "to check out"); err != nil {
		t.Fatalf("schema return should validate the subject: %v", err)
	}
	if _, ok := goexpect.AsAssertionError(e.Expect(7, "to check out")); !ok {
		t.Fatalf("schema return failure must translate to AssertionError")
	}
}
