// Package cbor is the high-level convenience layer over runtime/wire and
// runtime/value: one-shot Marshal/Unmarshal of a generic value.Value to and
// from a byte slice, canonical re-encoding, and thin generic helpers for the
// list/map/enum shapes a hand-written or generated struct codec builds on
// top of runtime/wire's Encoder/Decoder.
//
//	b, err := cbor.Marshal(value.Int(42))
//	v, err := cbor.Unmarshal(b)
package cbor

import (
	"github.com/nats-io/cbor-stream/runtime/stream"
	"github.com/nats-io/cbor-stream/runtime/value"
	"github.com/nats-io/cbor-stream/runtime/wire"
)

// Marshal encodes v to a new canonical (shortest-form, definite-length)
// CBOR byte slice.
func Marshal(v value.Value) ([]byte, error) {
	buf := stream.NewMemoryBuffer()
	enc := wire.NewEncoder(buf)
	if err := value.Encode(enc, v); err != nil {
		return nil, err
	}
	return buf.Written(), nil
}

// Unmarshal decodes a single CBOR item from b into a value.Value. Trailing
// bytes after the item are ignored.
func Unmarshal(b []byte) (value.Value, error) {
	buf := stream.NewMemoryBufferFromBytes(b)
	dec := wire.NewDecoder(buf)
	return value.Decode(dec)
}

// Canonicalize decodes a single CBOR item from src and re-encodes it in
// canonical form: shortest-form integers and floats, definite-length
// containers and strings. It is the identity transform for input that was
// already canonical.
func Canonicalize(src []byte) ([]byte, error) {
	v, err := Unmarshal(src)
	if err != nil {
		return nil, err
	}
	return Marshal(v)
}

// ToJSON converts a single CBOR item from src into a JSON document. Blobs
// become base64 strings and tags become {"$tag": N, "$": value} wrapper
// objects; see runtime/value's ToJSON for the full mapping.
func ToJSON(src []byte) ([]byte, error) {
	v, err := Unmarshal(src)
	if err != nil {
		return nil, err
	}
	return value.ToJSON(v)
}

// FromJSON converts a JSON document into canonical CBOR bytes. It reverses
// ToJSON except where ToJSON loses information: a blob's base64 string comes
// back as text, undefined comes back as null, and a non-text map key comes
// back as a text key.
func FromJSON(doc []byte) ([]byte, error) {
	v, err := value.FromJSON(doc)
	if err != nil {
		return nil, err
	}
	return Marshal(v)
}

// MarshalList writes items as a definite-length CBOR array, encoding each
// element with marshalItem.
func MarshalList[T any](e *wire.Encoder, items []T, marshalItem func(e *wire.Encoder, item T) error) error {
	return e.Array(len(items), func(e *wire.Encoder) error {
		for _, item := range items {
			if err := marshalItem(e, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// UnmarshalList reads a CBOR array into a newly allocated []T, decoding each
// element with unmarshalItem.
func UnmarshalList[T any](d *wire.Decoder, unmarshalItem func(d *wire.Decoder) (T, error)) ([]T, error) {
	var out []T
	_, err := d.Array(func(c *wire.ArrayCursor) error {
		for {
			has, err := c.HasNext()
			if err != nil {
				return err
			}
			if !has {
				return nil
			}
			item, err := unmarshalItem(d)
			if err != nil {
				return err
			}
			out = append(out, item)
		}
	})
	return out, err
}

// MarshalMap writes m as a definite-length CBOR map, encoding each key and
// value with marshalKey/marshalVal. Pair order follows Go's map iteration
// order, which is randomized; callers that need byte-for-byte determinism
// should encode a pre-sorted []MapEntry-like structure through Array/Map
// directly instead.
func MarshalMap[K comparable, V any](e *wire.Encoder, m map[K]V, marshalKey func(e *wire.Encoder, k K) error, marshalVal func(e *wire.Encoder, v V) error) error {
	return e.Map(len(m), func(e *wire.Encoder) error {
		for k, v := range m {
			if err := marshalKey(e, k); err != nil {
				return err
			}
			if err := marshalVal(e, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// UnmarshalMap reads a CBOR map into a newly allocated map[K]V, decoding
// each key and value with unmarshalKey/unmarshalVal.
func UnmarshalMap[K comparable, V any](d *wire.Decoder, unmarshalKey func(d *wire.Decoder) (K, error), unmarshalVal func(d *wire.Decoder) (V, error)) (map[K]V, error) {
	out := make(map[K]V)
	_, err := d.Map(func(c *wire.MapCursor) error {
		for {
			has, err := c.HasNext()
			if err != nil {
				return err
			}
			if !has {
				return nil
			}
			k, err := unmarshalKey(d)
			if err != nil {
				return err
			}
			v, err := unmarshalVal(d)
			if err != nil {
				return err
			}
			out[k] = v
		}
	})
	return out, err
}

// EnumLike is the constraint accepted by MarshalEnum/UnmarshalEnum: any
// integer type used as an enum's underlying representation.
type EnumLike interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// MarshalEnum writes v's ordinal as a CBOR integer.
func MarshalEnum[T EnumLike](e *wire.Encoder, v T) error {
	return e.Int(int64(v))
}

// UnmarshalEnum reads a CBOR integer as an enum ordinal of type T. If valid
// is non-nil and returns false for the decoded value, UnmarshalEnum reports
// a DecodeException instead of returning the out-of-range value.
func UnmarshalEnum[T EnumLike](d *wire.Decoder, valid func(T) bool) (T, error) {
	raw, err := d.Int()
	if err != nil {
		return T(0), err
	}
	v := T(raw)
	if valid != nil && !valid(v) {
		return T(0), wire.DecodeException{Msg: "enum value out of range"}
	}
	return v, nil
}
