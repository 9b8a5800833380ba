package value

import (
	"math"
	"testing"

	"github.com/nats-io/cbor-stream/runtime/stream"
	"github.com/nats-io/cbor-stream/runtime/wire"
)

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	buf := stream.NewMemoryBuffer()
	if err := Encode(wire.NewEncoder(buf), v); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(wire.NewDecoder(buf))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return got
}

func TestCodecRoundTripScalars(t *testing.T) {
	cases := []Value{
		Int(0),
		Int(-1),
		Int(1 << 40),
		Text("hello"),
		Blob([]byte{0x01, 0x02, 0x03}),
		False(),
		True(),
		Null(),
		Undefined(),
	}
	for _, v := range cases {
		got := roundTrip(t, v)
		if !Equal(got, v) {
			t.Errorf("round trip of %s: got %s", v.String(), got.String())
		}
	}
}

func TestCodecRoundTripFloatCanonicalizesWidth(t *testing.T) {
	// A value written through the tree always re-encodes canonically, so a
	// Float64-tagged 1.0 round-trips as Float16, not Float64 - the tree has
	// no memory of the width it was constructed at, only the number itself
	// flows through Encode.
	in := Float64(math.Float64bits(1.0))
	got := roundTrip(t, in)
	if got.Kind() != KindFloat16 {
		t.Fatalf("round trip of canonical 1.0 produced Kind %s, want float16", got.Kind())
	}
	f, _ := got.Float64()
	if f != 1.0 {
		t.Fatalf("round-tripped float = %v, want 1.0", f)
	}
}

func TestCodecRoundTripArrayAndMap(t *testing.T) {
	v := Array([]Value{Int(1), Text("x"), Array([]Value{Int(2)})})
	got := roundTrip(t, v)
	if !Equal(got, v) {
		t.Fatalf("round trip of nested array: got %s, want %s", got.String(), v.String())
	}

	m := Map([]MapEntry{
		{Key: Text("a"), Val: Int(1)},
		{Key: Text("b"), Val: Array([]Value{Int(2), Int(3)})},
	})
	got = roundTrip(t, m)
	if !Equal(got, m) {
		t.Fatalf("round trip of nested map: got %s, want %s", got.String(), m.String())
	}
}

func TestCodecRoundTripTag(t *testing.T) {
	v := Tag(32, Text("http://example.com"))
	got := roundTrip(t, v)
	if !Equal(got, v) {
		t.Fatalf("round trip of tag: got %s, want %s", got.String(), v.String())
	}
}

func TestCodecDecodeIndefiniteContainersMaterializeAsDefinite(t *testing.T) {
	buf := stream.NewMemoryBuffer()
	e := wire.NewEncoder(buf)
	if err := e.ArrayIndefinite(func(e *wire.Encoder) error {
		if err := e.Int(1); err != nil {
			return err
		}
		return e.Int(2)
	}); err != nil {
		t.Fatalf("ArrayIndefinite encode: %v", err)
	}
	got, err := Decode(wire.NewDecoder(buf))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := Array([]Value{Int(1), Int(2)})
	if !Equal(got, want) {
		t.Fatalf("decoded indefinite array = %s, want %s", got.String(), want.String())
	}
}

func TestCodecEncodeInvalidValueIsError(t *testing.T) {
	buf := stream.NewMemoryBuffer()
	err := Encode(wire.NewEncoder(buf), Value{})
	if _, ok := err.(wire.EncodeError); !ok {
		t.Fatalf("Encode(invalid) = %v (%T), want wire.EncodeError", err, err)
	}
}
