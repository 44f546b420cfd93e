package diag

import (
	"strings"
	"testing"
)

func TestTypeName(t *testing.T) {
	cases := []struct {
		v    any
		want string
	}{
		{nil, "nil"},
		{42, "number"},
		{int64(1), "number"},
		{3.14, "number"},
		{uint8(1), "number"},
		{"s", "string"},
		{true, "boolean"},
		{[]int{1}, "slice"},
		{[2]string{}, "slice"},
		{map[string]int{}, "map"},
		{struct{}{}, "struct"},
		{func() {}, "function"},
		{make(chan int), "channel"},
		{(*int)(nil), "nil"},
	}
	for _, tc := range cases {
		if got := TypeName(tc.v); got != tc.want {
			t.Fatalf("TypeName(%#v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format("hi"); got != `"hi"` {
		t.Fatalf("string render = %q", got)
	}
	if got := Format(nil); got != "nil" {
		t.Fatalf("nil render = %q", got)
	}
	if got := Format(map[string]int{"a": 1}); got != `{"a":1}` {
		t.Fatalf("map render = %q", got)
	}
	long := strings.Repeat("x", 2000)
	if got := Format(long); len(got) > maxRendered+8 {
		t.Fatalf("long values must be truncated, got %d bytes", len(got))
	}
}

func TestEqual_NumericKinds(t *testing.T) {
	if !Equal(2, 2.0) {
		t.Fatalf("int 2 must equal float64 2")
	}
	if Equal(2, "2") {
		t.Fatalf("number must not equal string")
	}
	if !Equal([]any{1, "a"}, []any{1, "a"}) {
		t.Fatalf("deep equality over slices")
	}
}

func TestDiff(t *testing.T) {
	if Diff(1, 1) != "" {
		t.Fatalf("equal values produce no diff")
	}
	if Diff(map[string]int{"a": 1}, map[string]int{"a": 2}) == "" {
		t.Fatalf("differing maps produce a diff")
	}
}
