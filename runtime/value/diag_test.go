package value

import (
	"math"
	"testing"
)

func TestStringDiagnosticNotation(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Int(42), "42"},
		{Int(-1), "-1"},
		{Text("hello"), `"hello"`},
		{Blob([]byte{0x01, 0xFF}), "h'01ff'"},
		{Array([]Value{Int(1), Int(2)}), "[1, 2]"},
		{Map([]MapEntry{{Key: Text("a"), Val: Int(1)}}), `{"a": 1}`},
		{Tag(1, Int(0)), "1(0)"},
		{False(), "false"},
		{True(), "true"},
		{Null(), "null"},
		{Undefined(), "undefined"},
		{Float64(math.Float64bits(1.5)), "1.5"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestStringDiagnosticNotationNestedContainers(t *testing.T) {
	v := Array([]Value{
		Map([]MapEntry{{Key: Text("k"), Val: Array([]Value{Int(1), Int(2)})}}),
	})
	want := `[{"k": [1, 2]}]`
	if got := v.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStringDiagnosticNotationSpecialFloats(t *testing.T) {
	if got := Float64(math.Float64bits(math.Inf(1))).String(); got != "Infinity" {
		t.Errorf("+Inf String() = %q, want Infinity", got)
	}
	if got := Float64(math.Float64bits(math.Inf(-1))).String(); got != "-Infinity" {
		t.Errorf("-Inf String() = %q, want -Infinity", got)
	}
	if got := Float64(math.Float64bits(math.NaN())).String(); got != "NaN" {
		t.Errorf("NaN String() = %q, want NaN", got)
	}
}
