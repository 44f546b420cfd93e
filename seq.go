package goexpect

import (
	"context"
	"iter"
	"reflect"
)

// Seq is the sequence shape async assertions iterate: a push iterator in the
// iter.Seq style. Plain slices, arrays, channels, and Waiters auto-adapt, so
// a synchronous subject can always stand in for an asynchronous one.
type Seq = func(yield func(any) bool)

// asSequence adapts a subject into a Seq plus an errFn reporting a source
// failure once iteration stops. Channels honor ctx cancellation; slices and
// arrays are walked in order; a Waiter contributes its single awaited value or
// records its error for the caller to surface.
func asSequence(ctx context.Context, v any) (Seq, func() error, bool) {
	noErr := func() error { return nil }
	switch t := v.(type) {
	case Seq:
		return t, noErr, true
	case iter.Seq[any]:
		return Seq(t), noErr, true
	case Waiter:
		var werr error
		s := func(yield func(any) bool) {
			out, err := t.Wait(ctx)
			if err != nil {
				werr = err
				return
			}
			yield(out)
		}
		return s, func() error { return werr }, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return func(yield func(any) bool) {
			for i := 0; i < rv.Len(); i++ {
				if !yield(rv.Index(i).Interface()) {
					return
				}
			}
		}, noErr, true
	case reflect.Chan:
		return func(yield func(any) bool) {
			done := ctx.Done()
			doneVal := reflect.ValueOf(done)
			for {
				chosen, recv, ok := reflect.Select([]reflect.SelectCase{
					{Dir: reflect.SelectRecv, Chan: doneVal},
					{Dir: reflect.SelectRecv, Chan: rv},
				})
				if chosen == 0 || !ok {
					return
				}
				if !yield(recv.Interface()) {
					return
				}
			}
		}, noErr, true
	}
	return nil, nil, false
}

// runCompletable drives a deferred subject to completion: ctx-taking and
// plain functions, Waiters, and error channels all normalize to (value, err).
func runCompletable(ctx context.Context, v any) (any, error, bool) {
	switch t := v.(type) {
	case Waiter:
		out, err := t.Wait(ctx)
		return out, err, true
	case func(ctx context.Context) error:
		return nil, t(ctx), true
	case func() error:
		return nil, t(), true
	case func(ctx context.Context) (any, error):
		out, err := t(ctx)
		return out, err, true
	case func() (any, error):
		out, err := t()
		return out, err, true
	case <-chan error:
		return nil, waitErrChan(ctx, t), true
	case chan error:
		return nil, waitErrChan(ctx, t), true
	}
	return nil, nil, false
}

func waitErrChan(ctx context.Context, ch <-chan error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-ch:
		return err
	}
}
