// Package value implements a generic CBOR value tree: a Value can hold any
// well-formed CBOR item without a matching Go struct type, the way a JSON
// document is often modeled as map[string]any before (or instead of)
// unmarshaling into a concrete type. Value supports structural equality
// (with bit-ordered float comparison, so NaN equals NaN and +0 is distinct
// from -0), a validity check, and RFC 8949 §8 diagnostic-notation printing.
package value

import (
	"math"
	"strconv"

	"github.com/nats-io/cbor-stream/runtime/float16"
)

// Kind identifies which variant of the CBOR value sum type a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat16
	KindFloat32
	KindFloat64
	KindText
	KindBlob
	KindArray
	KindMap
	KindTag
	KindFalse
	KindTrue
	KindNull
	KindUndefined
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat16:
		return "float16"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindTag:
		return "tag"
	case KindFalse:
		return "false"
	case KindTrue:
		return "true"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	default:
		return "<invalid>"
	}
}

// MapEntry is one key/value pair of a KindMap Value. Entries are kept in
// the order they were built or decoded; Equal treats that order as
// significant.
type MapEntry struct {
	Key Value
	Val Value
}

// Value is an immutable CBOR value tree node. The zero Value is
// KindInvalid, not a usable CBOR value.
type Value struct {
	kind Kind

	i        int64
	floatBits uint64
	s        string
	b        []byte
	arr      []Value
	m        []MapEntry
	tagNum   uint64
	tagVal   *Value
}

// Int returns an integer value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float16 returns a float16-width value holding the binary16 bit pattern bits.
func Float16(bits uint16) Value { return Value{kind: KindFloat16, floatBits: uint64(bits)} }

// Float32 returns a float32-width value holding the binary32 bit pattern bits.
func Float32(bits uint32) Value { return Value{kind: KindFloat32, floatBits: uint64(bits)} }

// Float64 returns a float64-width value holding the binary64 bit pattern bits.
func Float64(bits uint64) Value { return Value{kind: KindFloat64, floatBits: bits} }

// Text returns a text-string value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Blob returns a byte-string value. b is not copied.
func Blob(b []byte) Value { return Value{kind: KindBlob, b: b} }

// Array returns an array value. items is not copied.
func Array(items []Value) Value { return Value{kind: KindArray, arr: items} }

// Map returns a map value. entries is not copied.
func Map(entries []MapEntry) Value { return Value{kind: KindMap, m: entries} }

// Tag returns a semantic-tag value wrapping inner.
func Tag(tagNumber uint64, inner Value) Value {
	v := inner
	return Value{kind: KindTag, tagNum: tagNumber, tagVal: &v}
}

// False, True, Null, and Undefined return the corresponding CBOR simple
// values. These are the only simple values this tree represents.
func False() Value     { return Value{kind: KindFalse} }
func True() Value      { return Value{kind: KindTrue} }
func Null() Value      { return Value{kind: KindNull} }
func Undefined() Value { return Value{kind: KindUndefined} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Int returns v's integer value and true, or 0 and false if v is not KindInt.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// FloatBits returns v's raw float bit pattern (widened to uint64) and true,
// or 0 and false if v does not hold a float.
func (v Value) FloatBits() (uint64, bool) {
	switch v.kind {
	case KindFloat16, KindFloat32, KindFloat64:
		return v.floatBits, true
	default:
		return 0, false
	}
}

// Float64 widens v's float to a Go float64 and returns true, or 0 and false
// if v does not hold a float.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindFloat16:
		return float64(float16.ToFloat32(uint16(v.floatBits))), true
	case KindFloat32:
		return float64(math.Float32frombits(uint32(v.floatBits))), true
	case KindFloat64:
		return math.Float64frombits(v.floatBits), true
	default:
		return 0, false
	}
}

// Text returns v's text value and true, or "" and false if v is not KindText.
func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.s, true
}

// Blob returns v's byte-string value and true, or nil and false if v is not
// KindBlob. The returned slice aliases v's storage.
func (v Value) Blob() ([]byte, bool) {
	if v.kind != KindBlob {
		return nil, false
	}
	return v.b, true
}

// Array returns v's elements and true, or nil and false if v is not
// KindArray. The returned slice aliases v's storage.
func (v Value) Array() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Map returns v's entries and true, or nil and false if v is not KindMap.
// The returned slice aliases v's storage.
func (v Value) Map() ([]MapEntry, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// Tag returns v's tag number and wrapped value, and true, or 0, the zero
// Value, and false if v is not KindTag.
func (v Value) Tag() (uint64, Value, bool) {
	if v.kind != KindTag {
		return 0, Value{}, false
	}
	return v.tagNum, *v.tagVal, true
}

// IsValid reports whether v (and, recursively, everything it contains) is a
// well-formed value this tree can represent: v must not be KindInvalid (the
// zero Value, which this package's constructors never produce), and every
// child of an array, map, or tag must itself be valid.
func (v Value) IsValid() bool {
	switch v.kind {
	case KindInvalid:
		return false
	case KindArray:
		for _, e := range v.arr {
			if !e.IsValid() {
				return false
			}
		}
		return true
	case KindMap:
		for _, e := range v.m {
			if !e.Key.IsValid() || !e.Val.IsValid() {
				return false
			}
		}
		return true
	case KindTag:
		return v.tagVal != nil && v.tagVal.IsValid()
	default:
		return true
	}
}

// Equal reports whether a and b are the same CBOR value. Floats compare by
// exact bit pattern at a matching width (so NaN equals NaN, and +0 and -0 at
// the same width are distinct), matching the bit-ordered equality a CBOR
// value tree needs since it models the wire encoding, not just the number.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindInt:
		return a.i == b.i
	case KindFloat16, KindFloat32, KindFloat64:
		return a.floatBits == b.floatBits
	case KindText:
		return a.s == b.s
	case KindBlob:
		return bytesEqual(a.b, b.b)
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.m) != len(b.m) {
			return false
		}
		for i := range a.m {
			if !Equal(a.m[i].Key, b.m[i].Key) || !Equal(a.m[i].Val, b.m[i].Val) {
				return false
			}
		}
		return true
	case KindTag:
		return a.tagNum == b.tagNum && Equal(*a.tagVal, *b.tagVal)
	default:
		return true
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func quote(s string) string { return strconv.Quote(s) }
