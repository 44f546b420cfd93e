package goexpect

import (
	"context"
	"sync"
)

// Expecter binds the dispatch entrypoints to one pair of assertion pools (one
// per family). Expecters are immutable: Use returns a new Expecter over
// extended pools and leaves the receiver untouched, so any other holder of the
// original keeps dispatching against exactly the definitions it had.
type Expecter struct {
	syncPool  *pool
	asyncPool *pool
}

func newExpecter(syncDefs, asyncDefs []*Assertion) *Expecter {
	return &Expecter{
		syncPool:  newPool(syncDefs),
		asyncPool: newPool(asyncDefs),
	}
}

// Expect dispatches a synchronous assertion: find the unique best-matching
// definition for (subject, phrase, params...), run it, and return nil on pass
// or an error from the stable taxonomy.
func (e *Expecter) Expect(subject any, phrase string, params ...any) error {
	return dispatch(context.Background(), e.syncPool, subject, phrase, params)
}

// ExpectAsync dispatches against the async-family pool. Implementations may
// block; ctx bounds them. Plain slices and arrays are accepted wherever a
// sequence subject is expected.
func (e *Expecter) ExpectAsync(ctx context.Context, subject any, phrase string, params ...any) error {
	return dispatch(ctx, e.asyncPool, subject, phrase, params)
}

// Use returns a new Expecter over the union of the current pools and defs,
// split by family. Existing definitions keep their position; extensions are
// appended, and a true duplicate of an existing shape surfaces as an
// ambiguity at dispatch time rather than silently shadowing.
func (e *Expecter) Use(defs ...*Assertion) *Expecter {
	var syncDefs, asyncDefs []*Assertion
	for _, d := range defs {
		if d == nil {
			continue
		}
		if d.IsAsync() {
			asyncDefs = append(asyncDefs, d)
			continue
		}
		syncDefs = append(syncDefs, d)
	}
	return &Expecter{
		syncPool:  e.syncPool.extend(syncDefs),
		asyncPool: e.asyncPool.extend(asyncDefs),
	}
}

// It returns a deferred assertion over (phrase, params...), applied to a
// subject later. The result is usable standalone or as a nested matcher value
// inside "to satisfy" patterns.
func (e *Expecter) It(phrase string, params ...any) func(subject any) error {
	return func(subject any) error {
		return e.Expect(subject, phrase, params...)
	}
}

// Assertions lists the sync-family definitions in pool order; useful for
// membership checks over the registered catalog.
func (e *Expecter) Assertions() []*Assertion {
	out := make([]*Assertion, len(e.syncPool.defs))
	copy(out, e.syncPool.defs)
	return out
}

// AsyncAssertions lists the async-family definitions in pool order.
func (e *Expecter) AsyncAssertions() []*Assertion {
	out := make([]*Assertion, len(e.asyncPool.defs))
	copy(out, e.asyncPool.defs)
	return out
}

var defaultExpecter = sync.OnceValue(func() *Expecter {
	return newExpecter(builtinSync(), builtinAsync())
})

// Default returns the process-wide Expecter over the built-in catalog. It is
// initialized lazily, once, and never mutated; extend it with Use.
func Default() *Expecter { return defaultExpecter() }

// Expect dispatches against the default sync pool.
func Expect(subject any, phrase string, params ...any) error {
	return Default().Expect(subject, phrase, params...)
}

// ExpectAsync dispatches against the default async pool.
func ExpectAsync(ctx context.Context, subject any, phrase string, params ...any) error {
	return Default().ExpectAsync(ctx, subject, phrase, params...)
}

// Use extends the default pools; see Expecter.Use.
func Use(defs ...*Assertion) *Expecter { return Default().Use(defs...) }

// It defers a default-pool assertion; see Expecter.It.
func It(phrase string, params ...any) func(subject any) error {
	return Default().It(phrase, params...)
}
