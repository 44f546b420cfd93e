package goexpect

// Package goexpect provides:
//
// - Natural-language assertion dispatch: Expect(subject, "to be a string")
// - A compiled slot model matching call arguments against registered assertions
// - Negation ("not to be ...") and conjunction ("... and ...") in a single call
// - Runtime extension via Use without mutating the shared default pools
// - A stable error taxonomy (unknown/ambiguous/implementation/failed) with codes
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Value-schema failures travel as goskema.Issues and are translated into
//   AssertionError before leaving the engine.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	err := goexpect.Expect("foo", "to be a string")
//	err := goexpect.Expect(5, "to be greater than", 3)
//	err := goexpect.Expect(42, "to be a", "number", "and", "not to be less than", 10)
//	err := goexpect.ExpectAsync(ctx, ch, "to yield", "done")
//
// Authoring:
//
//	divisible, err := goexpect.NewAssertion(
//		[]goexpect.Part{goexpect.Number(), "to be divisible by", goexpect.Number()},
//		func(values ...any) any {
//			a, b := values[0].(float64), values[1].(float64)
//			return math.Mod(a, b) == 0
//		},
//	)
//	e := goexpect.Use(divisible)
//	err = e.Expect(9, "to be divisible by", 3)
