// Package diag renders values, type names, and diffs for assertion
// diagnostics. It never fails: anything that cannot be marshalled falls back
// to fmt verbs so error paths stay total.
package diag

import (
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

const maxRendered = 512

// Format renders a value compactly for failure messages. JSON when possible,
// %#v otherwise, truncated past maxRendered bytes.
func Format(v any) string {
	s := format(v)
	if len(s) > maxRendered {
		return s[:maxRendered] + "..."
	}
	return s
}

func format(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", t)
	case error:
		return fmt.Sprintf("error(%q)", t.Error())
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan:
		return fmt.Sprintf("%s(%p)", rv.Type(), v)
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%#v", v)
}

// TypeName names a value's broad kind the way assertion phrases speak about
// it: every numeric kind is "number", all funcs are "function", and so on.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "slice"
	case reflect.Map:
		return "map"
	case reflect.Struct:
		return "struct"
	case reflect.Ptr:
		rv := reflect.ValueOf(v)
		if rv.IsNil() {
			return "nil"
		}
		return TypeName(rv.Elem().Interface())
	case reflect.Func:
		return "function"
	case reflect.Chan:
		return "channel"
	default:
		return reflect.TypeOf(v).String()
	}
}

// Diff reports a go-cmp diff between expected and actual, or "" when they are
// equal or not diffable (cmp panics on unexported fields; we swallow that and
// let the caller fall back to plain expected/actual rendering).
func Diff(expected, actual any) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()
	return cmp.Diff(expected, actual)
}

// Equal reports deep equality with the same guard as Diff. Numeric values
// compare across kinds (int 2 equals float64 2).
func Equal(a, b any) bool {
	if na, ok := asFloat(a); ok {
		if nb, ok := asFloat(b); ok {
			return na == nb
		}
		return false
	}
	return safeEqual(a, b)
}

func safeEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = reflect.DeepEqual(a, b)
		}
	}()
	return cmp.Equal(a, b)
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}
