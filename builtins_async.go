package goexpect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/goexpect/internal/diag"
)

// The built-in async catalog. Subjects are sequences (channels, slices,
// arrays, Seq iterators) or completables (ctx-taking functions, Waiters,
// error channels); synchronous values auto-adapt so a plain slice works
// wherever a sequence is expected.

func mustAsync(parts []Part, impl any) *Assertion {
	a, err := NewAsyncAssertion(parts, impl)
	if err != nil {
		panic(err)
	}
	return a
}

func builtinAsync() []*Assertion {
	return []*Assertion{
		mustAsync([]Part{"to yield", Unknown()}, func(ctx context.Context, values ...any) (any, error) {
			seq, srcErr, ok := asSequence(ctx, values[0])
			if !ok {
				return invalidType("sequence", values[0]), nil
			}
			want := values[1]
			var seen []any
			found := false
			seq(func(v any) bool {
				seen = append(seen, v)
				if diag.Equal(want, v) {
					found = true
					return false
				}
				return true
			})
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if found {
				return true, nil
			}
			if err := srcErr(); err != nil {
				return &Failure{
					Message:   fmt.Sprintf("sequence failed before yielding %s: %v", diag.Format(want), err),
					Actual:    err,
					HasActual: true,
					NoDiff:    true,
				}, nil
			}
			return &Failure{
				Message:     fmt.Sprintf("sequence never yielded %s", diag.Format(want)),
				Actual:      seen,
				Expected:    want,
				HasActual:   true,
				HasExpected: true,
				NoDiff:      true,
			}, nil
		}),

		mustAsync([]Part{"to yield items", Slice()}, func(ctx context.Context, values ...any) (any, error) {
			seq, srcErr, ok := asSequence(ctx, values[0])
			if !ok {
				return invalidType("sequence", values[0]), nil
			}
			var got []any
			seq(func(v any) bool {
				got = append(got, v)
				return true
			})
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := srcErr(); err != nil {
				return &Failure{
					Message:   fmt.Sprintf("sequence failed after %d items: %v", len(got), err),
					Actual:    err,
					HasActual: true,
					NoDiff:    true,
				}, nil
			}
			want := anySlice(values[1])
			if len(got) == len(want) {
				match := true
				for i := range got {
					if !diag.Equal(want[i], got[i]) {
						match = false
						break
					}
				}
				if match {
					return true, nil
				}
			}
			return FailureOf(got, want), nil
		}),

		mustAsync([]Part{"to complete"}, func(ctx context.Context, values ...any) (any, error) {
			_, cerr, ok := runCompletable(ctx, values[0])
			if !ok {
				return invalidType("completable", values[0]), nil
			}
			if cerr == nil {
				return true, nil
			}
			return &Failure{
				Message:   fmt.Sprintf("expected completion but got error: %v", cerr),
				Actual:    cerr,
				HasActual: true,
				NoDiff:    true,
			}, nil
		}),

		mustAsync([]Part{"to resolve to", Unknown()}, func(ctx context.Context, values ...any) (any, error) {
			out, cerr, ok := runCompletable(ctx, values[0])
			if !ok {
				return invalidType("completable", values[0]), nil
			}
			if cerr != nil {
				return &Failure{
					Message:   fmt.Sprintf("expected a value but got error: %v", cerr),
					Actual:    cerr,
					HasActual: true,
					NoDiff:    true,
				}, nil
			}
			if diag.Equal(values[1], out) {
				return true, nil
			}
			return FailureOf(out, values[1]), nil
		}),

		mustAsync([]Part{PhraseChoice{"to fail with", "to error with"}, Unknown()}, func(ctx context.Context, values ...any) (any, error) {
			_, cerr, ok := runCompletable(ctx, values[0])
			if !ok {
				return invalidType("completable", values[0]), nil
			}
			if cerr == nil {
				return &Failure{
					Message:     "expected a failure but it completed",
					Expected:    values[1],
					HasExpected: true,
					NoDiff:      true,
				}, nil
			}
			if errorMatches(cerr, values[1]) {
				return true, nil
			}
			return &Failure{
				Message:     fmt.Sprintf("failed with the wrong error: %v", cerr),
				Actual:      cerr,
				Expected:    values[1],
				HasActual:   true,
				HasExpected: true,
				NoDiff:      true,
			}, nil
		}),
	}
}

func anySlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	seq, _, ok := asSequence(context.Background(), v)
	if !ok {
		return nil
	}
	var out []any
	seq(func(e any) bool {
		out = append(out, e)
		return true
	})
	return out
}

// errorMatches accepts a substring, a target error (errors.Is), or any value
// deep-equal to the error itself.
func errorMatches(got error, want any) bool {
	switch w := want.(type) {
	case string:
		return strings.Contains(got.Error(), w)
	case error:
		return errors.Is(got, w) || got.Error() == w.Error()
	}
	return diag.Equal(want, got)
}
