package goexpect

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	goskema "github.com/reoring/goskema"

	"github.com/reoring/goexpect/internal/diag"
)

// The built-in sync catalog. Deliberately modest: enough for the engine's own
// dispatch paths (schema-backed, function-backed, parametric, choice aliases,
// exact-match subjects) to be exercised end to end; richer domain checks
// belong in extension packs registered via Use.

func mustSync(parts []Part, impl any) *Assertion {
	a, err := NewAssertion(parts, impl)
	if err != nil {
		panic(err)
	}
	return a
}

func builtinSync() []*Assertion {
	return []*Assertion{
		mustSync([]Part{"to be a string"}, String()),
		mustSync([]Part{"to be a number"}, Number()),
		mustSync([]Part{"to be a boolean"}, Boolean()),
		mustSync([]Part{"to be nil"}, Nil()),
		mustSync([]Part{PhraseChoice{"to be a slice", "to be an array"}}, Slice()),
		mustSync([]Part{"to be a map"}, Map()),
		mustSync([]Part{"to be a function"}, Func()),

		mustSync([]Part{Boolean(), "to be true"}, func(values ...any) any {
			return values[0] == true
		}),
		mustSync([]Part{Boolean(), "to be false"}, func(values ...any) any {
			return values[0] == false
		}),

		mustSync([]Part{Number(), PhraseChoice{"to be greater than", "to be gt"}, Number()}, compareNumbers(func(a, b float64) bool { return a > b })),
		mustSync([]Part{Number(), PhraseChoice{"to be less than", "to be lt"}, Number()}, compareNumbers(func(a, b float64) bool { return a < b })),
		mustSync([]Part{Number(), PhraseChoice{"to be at least", "to be gte"}, Number()}, compareNumbers(func(a, b float64) bool { return a >= b })),
		mustSync([]Part{Number(), PhraseChoice{"to be at most", "to be lte"}, Number()}, compareNumbers(func(a, b float64) bool { return a <= b })),

		mustSync([]Part{PhraseChoice{"to equal", "to deep equal"}, Unknown()}, func(values ...any) any {
			if diag.Equal(values[1], values[0]) {
				return true
			}
			return FailureOf(values[0], values[1])
		}),

		mustSync([]Part{"to be empty"}, func(values ...any) any {
			n, ok := lengthOf(values[0])
			if !ok {
				return invalidType("string, slice, or map", values[0])
			}
			return n == 0
		}),

		mustSync([]Part{"to have length", Number()}, func(values ...any) any {
			n, ok := lengthOf(values[0])
			if !ok {
				return invalidType("string, slice, or map", values[0])
			}
			want := int(values[1].(float64))
			if n == want {
				return true
			}
			return &Failure{
				Message:     fmt.Sprintf("expected length %d but got %d", want, n),
				Actual:      n,
				Expected:    want,
				HasActual:   true,
				HasExpected: true,
				NoDiff:      true,
			}
		}),

		mustSync([]Part{"to contain", Unknown()}, func(values ...any) any {
			return contains(values[0], values[1])
		}),

		mustSync([]Part{String(), "to match", Pattern()}, func(values ...any) any {
			s := values[0].(string)
			re := values[1].(*regexp.Regexp)
			if re.MatchString(s) {
				return true
			}
			return &Failure{
				Message:     fmt.Sprintf("expected %q to match %s", s, re),
				Actual:      s,
				Expected:    re.String(),
				HasActual:   true,
				HasExpected: true,
				NoDiff:      true,
			}
		}),

		mustSync([]Part{"to be one of", Slice()}, func(values ...any) any {
			rv := reflect.ValueOf(values[1])
			for i := 0; i < rv.Len(); i++ {
				if diag.Equal(rv.Index(i).Interface(), values[0]) {
					return true
				}
			}
			return FailureOf(values[0], values[1])
		}),

		mustSync([]Part{PhraseChoice{"to be a", "to be an"}, String()}, func(values ...any) any {
			want, ok := canonicalTypeName(values[1].(string))
			if !ok {
				return goskema.Issues{{
					Path:    "/",
					Code:    goskema.CodeInvalidEnum,
					Message: fmt.Sprintf("unknown type name %q", values[1]),
				}}
			}
			got := diag.TypeName(values[0])
			if got == want {
				return true
			}
			return &Failure{
				Message:     fmt.Sprintf("expected %s but received %s", want, got),
				Actual:      got,
				Expected:    want,
				HasActual:   true,
				HasExpected: true,
				NoDiff:      true,
			}
		}),

		mustSync([]Part{"to satisfy", Unknown()}, func(values ...any) any {
			if err := satisfyValue(values[0], values[1], ""); err != nil {
				return err
			}
			return true
		}),
	}
}

func compareNumbers(cmp func(a, b float64) bool) SyncImpl {
	return func(values ...any) any {
		return cmp(values[0].(float64), values[1].(float64))
	}
}

func lengthOf(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

func contains(subject, needle any) any {
	if s, ok := subject.(string); ok {
		sub, ok := needle.(string)
		if !ok {
			return invalidType("string", needle)
		}
		if strings.Contains(s, sub) {
			return true
		}
		return &Failure{
			Message:     fmt.Sprintf("expected %q to contain %q", s, sub),
			Actual:      s,
			Expected:    sub,
			HasActual:   true,
			HasExpected: true,
			NoDiff:      true,
		}
	}
	rv := reflect.ValueOf(subject)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if diag.Equal(rv.Index(i).Interface(), needle) {
				return true
			}
		}
		return FailureOf(subject, needle)
	case reflect.Map:
		for _, k := range rv.MapKeys() {
			if diag.Equal(k.Interface(), needle) {
				return true
			}
		}
		return FailureOf(subject, needle)
	}
	return invalidType("string, slice, or map", subject)
}

func canonicalTypeName(name string) (string, bool) {
	switch strings.ToLower(name) {
	case "number", "int", "integer", "float":
		return "number", true
	case "string":
		return "string", true
	case "boolean", "bool":
		return "boolean", true
	case "slice", "array", "list":
		return "slice", true
	case "map", "object":
		return "map", true
	case "function", "func":
		return "function", true
	case "struct":
		return "struct", true
	case "channel", "chan":
		return "channel", true
	case "nil", "null":
		return "nil", true
	}
	return "", false
}

// satisfyValue structurally matches subject against a pattern: deferred
// matchers (func(any) error, as produced by It) apply directly, maps and
// structs match field-wise and recursively, regexps match string subjects,
// anything else requires deep equality.
func satisfyValue(subject, pattern any, path string) error {
	at := func() string {
		if path == "" {
			return ""
		}
		return " at " + path
	}
	switch pat := pattern.(type) {
	case func(subject any) error:
		if err := pat(subject); err != nil {
			if ae, ok := AsAssertionError(err); ok {
				return &AssertionError{
					Message:     fmt.Sprintf("did not satisfy matcher%s: %s", at(), ae.Message),
					Actual:      subject,
					HasActual:   true,
					Expected:    ae.Expected,
					HasExpected: ae.HasExpected,
				}
			}
			return err
		}
		return nil
	case *regexp.Regexp:
		s, ok := subject.(string)
		if !ok || !pat.MatchString(s) {
			return &AssertionError{
				Message:     fmt.Sprintf("expected a string matching %s%s", pat, at()),
				Actual:      subject,
				HasActual:   true,
				Expected:    pat.String(),
				HasExpected: true,
			}
		}
		return nil
	case map[string]any:
		for key, sub := range pat {
			field, ok := fieldOf(subject, key)
			if !ok {
				return &AssertionError{
					Message:   fmt.Sprintf("missing key %q%s", key, at()),
					Actual:    subject,
					HasActual: true,
				}
			}
			childPath := key
			if path != "" {
				childPath = path + "." + key
			}
			if err := satisfyValue(field, sub, childPath); err != nil {
				return err
			}
		}
		return nil
	}
	if diag.Equal(pattern, subject) {
		return nil
	}
	return &AssertionError{
		Message:     fmt.Sprintf("value mismatch%s", at()),
		Actual:      subject,
		Expected:    pattern,
		HasActual:   true,
		HasExpected: true,
		Diff:        diag.Diff(pattern, subject),
	}
}

// fieldOf resolves key against a map or an exported struct field.
func fieldOf(subject any, key string) (any, bool) {
	rv := reflect.ValueOf(subject)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		kv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !kv.IsValid() {
			return nil, false
		}
		return kv.Interface(), true
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, false
		}
		return fieldOf(rv.Elem().Interface(), key)
	case reflect.Struct:
		fv := rv.FieldByName(key)
		if !fv.IsValid() || !fv.CanInterface() {
			return nil, false
		}
		return fv.Interface(), true
	}
	return nil, false
}
