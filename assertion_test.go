package goexpect_test

import (
	"context"
	"strings"
	"testing"

	goexpect "github.com/reoring/goexpect"
)

func TestNewAssertion_RejectsMalformedParts(t *testing.T) {
	passImpl := func(values ...any) any { return true }
	cases := []struct {
		name   string
		parts  []goexpect.Part
		reason string
	}{
		{"empty parts", []goexpect.Part{}, "non-empty"},
		{"not prefix", []goexpect.Part{"not to be here"}, `"not "`},
		{"not prefix in choice", []goexpect.Part{goexpect.PhraseChoice{"to be ok", "not to be ok"}}, `"not "`},
		{"empty literal", []goexpect.Part{""}, "non-empty"},
		{"trailing and", []goexpect.Part{"to pair", goexpect.Unknown(), "and"}, `"and"`},
		{"and before phrase", []goexpect.Part{"to pair", "and", "to fail"}, `"and"`},
		{"leading schema without phrase", []goexpect.Part{goexpect.String()}, "followed by a phrase"},
		{"leading schema then schema", []goexpect.Part{goexpect.String(), goexpect.Number()}, "followed by a phrase"},
		{"invalid part type", []goexpect.Part{42}, "expected schema"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := goexpect.NewAssertion(tc.parts, passImpl)
			if err == nil {
				t.Fatalf("expected construction error")
			}
			ie, ok := goexpect.AsImplementationError(err)
			if !ok {
				t.Fatalf("expected ImplementationError, got %T: %v", err, err)
			}
			if !strings.Contains(ie.Error(), tc.reason) {
				t.Fatalf("error %q should mention %q", ie.Error(), tc.reason)
			}
		})
	}
}

func TestNewAssertion_RejectsBadImpl(t *testing.T) {
	if _, err := goexpect.NewAssertion([]goexpect.Part{"to be ok"}, nil); err == nil {
		t.Fatalf("nil impl must fail at construction")
	}
	if _, err := goexpect.NewAssertion([]goexpect.Part{"to be ok"}, 42); err == nil {
		t.Fatalf("non-callable impl must fail at construction")
	}
	// An async-shaped function is the wrong family for NewAssertion.
	async := func(ctx context.Context, values ...any) (any, error) { return true, nil }
	if _, err := goexpect.NewAssertion([]goexpect.Part{"to be ok"}, async); err == nil {
		t.Fatalf("async impl under NewAssertion must fail")
	}
}

func TestNewAsyncAssertion_RejectsSyncImpl(t *testing.T) {
	syncFn := func(values ...any) any { return true }
	if _, err := goexpect.NewAsyncAssertion([]goexpect.Part{"to be ok"}, syncFn); err == nil {
		t.Fatalf("sync impl under NewAsyncAssertion must fail")
	}
}

func TestAssertion_StringForm(t *testing.T) {
	a, err := goexpect.NewAssertion(
		[]goexpect.Part{goexpect.Number(), goexpect.PhraseChoice{"to be near", "to approximate"}, goexpect.Number()},
		func(values ...any) any { return true },
	)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	want := "<number> to be near|to approximate <number>"
	if a.String() != want {
		t.Fatalf("String() = %q, want %q", a.String(), want)
	}
	if a.IsAsync() {
		t.Fatalf("sync family expected")
	}
	if a.ID() == "" {
		t.Fatalf("id must be populated")
	}

	b, err := goexpect.NewAssertion([]goexpect.Part{"to shimmer"}, goexpect.String())
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	if b.String() != "<unknown> to shimmer" {
		t.Fatalf("shorthand form renders implicit subject, got %q", b.String())
	}
	if b.ID() == a.ID() {
		t.Fatalf("ids must be unique per definition")
	}
}

func TestAssertion_CatalogMembership(t *testing.T) {
	var forms []string
	for _, a := range goexpect.Default().Assertions() {
		forms = append(forms, a.String())
	}
	joined := strings.Join(forms, "\n")
	for _, want := range []string{
		"<unknown> to be a string",
		"<number> to be greater than|to be gt <number>",
		"<unknown> to satisfy <unknown>",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("catalog missing %q:\n%s", want, joined)
		}
	}
}
