package goexpect_test

import (
	"context"
	"strings"
	"testing"

	goexpect "github.com/reoring/goexpect"
	"github.com/reoring/goskema/dsl"
)

func TestUse_ExtensionIsolation(t *testing.T) {
	custom := mustNew(t, []goexpect.Part{"to be frobbed"}, func(values ...any) any { return true })
	e2 := goexpect.Use(custom)

	// The original default pool must not see the extension.
	if _, ok := goexpect.AsUnknownAssertionError(goexpect.Expect(1, "to be frobbed")); !ok {
		t.Fatalf("default pool must not be mutated by Use")
	}
	if err := e2.Expect(1, "to be frobbed"); err != nil {
		t.Fatalf("extended pool must resolve the custom phrase: %v", err)
	}
	// Built-ins still work through the extended dispatcher.
	if err := e2.Expect("foo", "to be a string"); err != nil {
		t.Fatalf("extension must not drop built-ins: %v", err)
	}
}

func TestUse_Chained(t *testing.T) {
	first := mustNew(t, []goexpect.Part{"to be first"}, func(values ...any) any { return true })
	second := mustNew(t, []goexpect.Part{"to be second"}, func(values ...any) any { return true })

	e1 := goexpect.Use(first)
	e2 := e1.Use(second)

	if err := e2.Expect(1, "to be first"); err != nil {
		t.Fatalf("chained pool keeps earlier extensions: %v", err)
	}
	if err := e2.Expect(1, "to be second"); err != nil {
		t.Fatalf("chained pool has later extensions: %v", err)
	}
	if _, ok := goexpect.AsUnknownAssertionError(e1.Expect(1, "to be second")); !ok {
		t.Fatalf("earlier expecter must not see later extensions")
	}
}

func TestUse_SplitsFamilies(t *testing.T) {
	asyncDef, err := goexpect.NewAsyncAssertion(
		[]goexpect.Part{"to tick"},
		func(ctx context.Context, values ...any) (any, error) { return true, nil },
	)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	e := goexpect.Use(asyncDef)

	// Async definitions are invisible to the sync entrypoint.
	if _, ok := goexpect.AsUnknownAssertionError(e.Expect(1, "to tick")); !ok {
		t.Fatalf("sync entrypoint must not dispatch async definitions")
	}
	if err := e.ExpectAsync(context.Background(), 1, "to tick"); err != nil {
		t.Fatalf("async entrypoint should dispatch it: %v", err)
	}
}

func TestUse_GoskemaSchemaAdapter(t *testing.T) {
	// A goskema schema slots straight into a definition via Of.
	quoted := mustNew(t,
		[]goexpect.Part{goexpect.Of(dsl.String()), "to be quoted"},
		func(values ...any) any {
			s := values[0].(string)
			return strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
		},
	)
	e := goexpect.Use(quoted)

	if err := e.Expect(`"hi"`, "to be quoted"); err != nil {
		t.Fatalf("quoted string should pass: %v", err)
	}
	if err := e.Expect(`hi`, "to be quoted"); err == nil {
		t.Fatalf("unquoted string should fail")
	}
	// A non-string subject fails the goskema subject slot structurally.
	if _, ok := goexpect.AsUnknownAssertionError(e.Expect(7, "to be quoted")); !ok {
		t.Fatalf("non-string subject should not match the typed definition")
	}
}

func TestUse_SchemaBackedViaGoskema(t *testing.T) {
	// Schema-backed definition whose impl is a goskema schema through Of: the
	// Issues it produces are translated, never surfaced raw.
	isBool := mustNew(t, []goexpect.Part{"to be boolish"}, goexpect.Of(dsl.Bool()))
	e := goexpect.Use(isBool)

	if err := e.Expect(true, "to be boolish"); err != nil {
		t.Fatalf("bool subject should pass: %v", err)
	}
	err := e.Expect("nope", "to be boolish")
	ae, ok := goexpect.AsAssertionError(err)
	if !ok {
		t.Fatalf("goskema Issues must translate into AssertionError, got %T: %v", err, err)
	}
	if ae.Message == "" {
		t.Fatalf("translated failure must carry a rendered message")
	}
}
