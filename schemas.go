package goexpect

import (
	"context"
	"fmt"
	"reflect"
	"regexp"

	goskema "github.com/reoring/goskema"

	"github.com/reoring/goexpect/internal/diag"
)

// Minimal value schemas over live Go values. These back the built-in catalog
// and are handy when authoring assertions without pulling in goskema's dsl.
// All of them report failures as goskema.Issues with the stable issue codes.

func invalidType(want string, got any) goskema.Issues {
	return goskema.Issues{{
		Path:    "/",
		Code:    goskema.CodeInvalidType,
		Message: fmt.Sprintf("expected %s but received %s", want, diag.TypeName(got)),
		Params:  map[string]any{"expected": want, "got": diag.TypeName(got)},
	}}
}

type kindSchema struct{ want string }

func (s kindSchema) Parse(ctx context.Context, v any) (any, error) {
	if diag.TypeName(v) != s.want {
		return nil, invalidType(s.want, v)
	}
	return v, nil
}

// String accepts string values.
func String() Schema { return kindSchema{want: "string"} }

// Boolean accepts bool values.
func Boolean() Schema { return kindSchema{want: "boolean"} }

// Slice accepts slices and arrays of any element type.
func Slice() Schema { return kindSchema{want: "slice"} }

// Map accepts maps of any key/value type.
func Map() Schema { return kindSchema{want: "map"} }

// Func accepts function values.
func Func() Schema { return kindSchema{want: "function"} }

// Nil accepts only nil (including typed nil pointers).
func Nil() Schema { return kindSchema{want: "nil"} }

type numberSchema struct{}

// Parse accepts any numeric kind and coerces it to float64 so comparison
// implementations need a single case.
func (numberSchema) Parse(ctx context.Context, v any) (any, error) {
	if f, ok := numericValue(v); ok {
		return f, nil
	}
	return nil, invalidType("number", v)
}

// Number accepts any integer or float kind; parsed values surface as float64.
func Number() Schema { return numberSchema{} }

func numericValue(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

type typeOfSchema[T any] struct{}

func (typeOfSchema[T]) Parse(ctx context.Context, v any) (any, error) {
	tv, ok := v.(T)
	if !ok {
		var zero T
		return nil, invalidType(fmt.Sprintf("%T", zero), v)
	}
	return tv, nil
}

// TypeOf accepts values assertable to the concrete type T.
func TypeOf[T any]() Schema { return typeOfSchema[T]{} }

type oneOfSchema struct{ allowed []any }

func (s oneOfSchema) Parse(ctx context.Context, v any) (any, error) {
	for _, a := range s.allowed {
		if diag.Equal(a, v) {
			return v, nil
		}
	}
	return nil, goskema.Issues{{
		Path:    "/",
		Code:    goskema.CodeInvalidEnum,
		Message: fmt.Sprintf("%s is not one of the allowed values", diag.Format(v)),
		Params:  map[string]any{"got": v},
	}}
}

// OneOf accepts any value deep-equal to one of the allowed values.
func OneOf(allowed ...any) Schema { return oneOfSchema{allowed: allowed} }

type patternSchema struct{}

// Parse accepts a *regexp.Regexp, or a string which is compiled; the parsed
// value is always a *regexp.Regexp.
func (patternSchema) Parse(ctx context.Context, v any) (any, error) {
	switch t := v.(type) {
	case *regexp.Regexp:
		return t, nil
	case string:
		re, err := regexp.Compile(t)
		if err != nil {
			return nil, goskema.Issues{{
				Path:    "/",
				Code:    goskema.CodePattern,
				Message: fmt.Sprintf("invalid pattern %q", t),
				Cause:   err,
			}}
		}
		return re, nil
	}
	return nil, invalidType("pattern", v)
}

// Pattern accepts a *regexp.Regexp or a compilable pattern string.
func Pattern() Schema { return patternSchema{} }
