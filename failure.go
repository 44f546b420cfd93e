package goexpect

// Failure is the structured "this failed, here's why" record a
// function-backed implementation may return instead of false. It is data, not
// an error; the executor translates it into an AssertionError, synthesizing a
// default message from the definition and raw arguments when Message is empty.
type Failure struct {
	Message  string
	Actual   any
	Expected any
	// HasActual/HasExpected distinguish an unset field from a nil value.
	HasActual   bool
	HasExpected bool
	// FormatActual/FormatExpected override the default value rendering.
	FormatActual   func(any) string
	FormatExpected func(any) string
	// NoDiff suppresses the go-cmp diff between Expected and Actual.
	NoDiff bool
}

// FailureOf builds a Failure carrying both sides of a mismatch.
func FailureOf(actual, expected any) *Failure {
	return &Failure{Actual: actual, Expected: expected, HasActual: true, HasExpected: true}
}
