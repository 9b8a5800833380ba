package value

import (
	"math"

	"github.com/nats-io/cbor-stream/runtime/wire"
)

const decodeRecursionLimit = 10000

// Decode reads exactly one CBOR item from d and builds a Value tree from
// it. Indefinite-length containers and chunked strings decode the same as
// their definite-length equivalents - the tree has no way to distinguish
// them, matching the Non-goal against lossless indefinite round-tripping.
func Decode(d *wire.Decoder) (Value, error) {
	return decodeDepth(d, 0)
}

func decodeDepth(d *wire.Decoder, depth int) (Value, error) {
	if depth > decodeRecursionLimit {
		return Value{}, wire.DecodeException{Msg: "value: recursion limit exceeded"}
	}
	h, err := d.ReadHeader()
	if err != nil {
		return Value{}, err
	}
	switch h.Kind {
	case wire.KindUint:
		if h.Arg > math.MaxInt64 {
			return Value{}, wire.DecodeException{Msg: "value: unsigned integer overflows int64"}
		}
		return Int(int64(h.Arg)), nil
	case wire.KindNegInt:
		if h.Arg > math.MaxInt64 {
			return Value{}, wire.DecodeException{Msg: "value: negative integer overflows int64"}
		}
		return Int(-1 - int64(h.Arg)), nil
	case wire.KindFloat16:
		return Float16(uint16(h.Arg)), nil
	case wire.KindFloat32:
		return Float32(uint32(h.Arg)), nil
	case wire.KindFloat64:
		return Float64(h.Arg), nil
	case wire.KindFalse:
		return False(), nil
	case wire.KindTrue:
		return True(), nil
	case wire.KindNull:
		return Null(), nil
	case wire.KindUndefined:
		return Undefined(), nil
	case wire.KindText, wire.KindTextIndefinite:
		s, err := d.ContinueText(h)
		if err != nil {
			return Value{}, err
		}
		return Text(s), nil
	case wire.KindBlob, wire.KindBlobIndefinite:
		b, err := d.ContinueBlob(h)
		if err != nil {
			return Value{}, err
		}
		return Blob(b), nil
	case wire.KindArray, wire.KindArrayIndefinite:
		cur, err := d.ContinueArray(h)
		if err != nil {
			return Value{}, err
		}
		var items []Value
		for {
			has, err := cur.HasNext()
			if err != nil {
				return Value{}, err
			}
			if !has {
				break
			}
			item, err := decodeDepth(d, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Array(items), nil
	case wire.KindMap, wire.KindMapIndefinite:
		cur, err := d.ContinueMap(h)
		if err != nil {
			return Value{}, err
		}
		var entries []MapEntry
		for {
			has, err := cur.HasNext()
			if err != nil {
				return Value{}, err
			}
			if !has {
				break
			}
			key, err := decodeDepth(d, depth+1)
			if err != nil {
				return Value{}, err
			}
			val, err := decodeDepth(d, depth+1)
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, MapEntry{Key: key, Val: val})
		}
		return Map(entries), nil
	case wire.KindTag:
		inner, err := decodeDepth(d, depth+1)
		if err != nil {
			return Value{}, err
		}
		return Tag(h.Arg, inner), nil
	default:
		return Value{}, wire.DecodeException{Msg: "value: unexpected kind " + h.Kind.String()}
	}
}

// Encode writes v to e as a single CBOR item, always in definite-length
// form (the tree carries no memory of whether a decoded container was
// originally indefinite).
func Encode(e *wire.Encoder, v Value) error {
	switch v.kind {
	case KindInt:
		return e.Int(v.i)
	case KindFloat16, KindFloat32, KindFloat64:
		f, _ := v.Float64()
		return e.Float(f)
	case KindText:
		return e.String(v.s)
	case KindBlob:
		return e.BlobBytes(v.b)
	case KindArray:
		items := v.arr
		return e.Array(len(items), func(e *wire.Encoder) error {
			for _, item := range items {
				if err := Encode(e, item); err != nil {
					return err
				}
			}
			return nil
		})
	case KindMap:
		entries := v.m
		return e.Map(len(entries), func(e *wire.Encoder) error {
			for _, entry := range entries {
				if err := Encode(e, entry.Key); err != nil {
					return err
				}
				if err := Encode(e, entry.Val); err != nil {
					return err
				}
			}
			return nil
		})
	case KindTag:
		return e.Tag(v.tagNum, func(e *wire.Encoder) error {
			return Encode(e, *v.tagVal)
		})
	case KindFalse:
		return e.Bool(false)
	case KindTrue:
		return e.Bool(true)
	case KindNull:
		return e.Null()
	case KindUndefined:
		return e.Undefined()
	default:
		return wire.EncodeError{Msg: "value: cannot encode invalid value"}
	}
}
