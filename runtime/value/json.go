package value

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToJSON renders v as a JSON document: ints/floats/text/bool/null map
// naturally, blobs become base64 strings, and a tag wraps its content as
// {"$tag": N, "$": value} since JSON has no native notion of a CBOR tag.
// Map keys that aren't text use the key's diagnostic notation as the JSON
// key, the same fallback the teacher's byte-oriented converter used.
func ToJSON(v Value) ([]byte, error) {
	var sb strings.Builder
	if err := writeJSON(&sb, v); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func writeJSON(sb *strings.Builder, v Value) error {
	switch v.kind {
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat16, KindFloat32, KindFloat64:
		f, _ := v.Float64()
		js, err := json.Marshal(f)
		if err != nil {
			return err
		}
		sb.Write(js)
	case KindText:
		js, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		sb.Write(js)
	case KindBlob:
		sb.WriteString(`"`)
		sb.WriteString(base64.StdEncoding.EncodeToString(v.b))
		sb.WriteString(`"`)
	case KindArray:
		sb.WriteString("[")
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteString(",")
			}
			if err := writeJSON(sb, e); err != nil {
				return err
			}
		}
		sb.WriteString("]")
	case KindMap:
		sb.WriteString("{")
		for i, ent := range v.m {
			if i > 0 {
				sb.WriteString(",")
			}
			key := ent.Key.String()
			if ent.Key.kind == KindText {
				key = ent.Key.s
			}
			kj, err := json.Marshal(key)
			if err != nil {
				return err
			}
			sb.Write(kj)
			sb.WriteString(":")
			if err := writeJSON(sb, ent.Val); err != nil {
				return err
			}
		}
		sb.WriteString("}")
	case KindTag:
		sb.WriteString(`{"$tag":`)
		sb.WriteString(strconv.FormatUint(v.tagNum, 10))
		sb.WriteString(`,"$":`)
		if err := writeJSON(sb, *v.tagVal); err != nil {
			return err
		}
		sb.WriteString("}")
	case KindFalse:
		sb.WriteString("false")
	case KindTrue:
		sb.WriteString("true")
	case KindNull, KindUndefined:
		sb.WriteString("null")
	default:
		return fmt.Errorf("value: cannot render kind %s as JSON", v.Kind())
	}
	return nil
}

// FromJSON parses a JSON document into a Value tree: null/bool/number/
// string/array/object map to their natural CBOR counterparts, numbers
// without a fractional part or exponent become Int, others Float64. The
// wrapper object {"$tag": N, "$": value} round-trips a tag written by
// ToJSON; any other object becomes a text-keyed CBOR map.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Value{}, err
	}
	return anyToValue(v)
}

func anyToValue(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		if x {
			return True(), nil
		}
		return False(), nil
	case json.Number:
		if strings.ContainsAny(string(x), ".eE") {
			f, err := x.Float64()
			if err != nil {
				return Value{}, err
			}
			return Float64(math.Float64bits(f)), nil
		}
		i, err := x.Int64()
		if err != nil {
			f, ferr := x.Float64()
			if ferr != nil {
				return Value{}, err
			}
			return Float64(math.Float64bits(f)), nil
		}
		return Int(i), nil
	case string:
		return Text(x), nil
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			ev, err := anyToValue(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = ev
		}
		return Array(elems), nil
	case map[string]any:
		if tagv, ok := x["$tag"]; ok {
			inner, ok2 := x["$"]
			if !ok2 {
				return Value{}, fmt.Errorf("value: $tag wrapper missing $ field")
			}
			num, ok3 := tagv.(json.Number)
			if !ok3 {
				return Value{}, fmt.Errorf("value: $tag must be a number")
			}
			n, err := num.Int64()
			if err != nil || n < 0 {
				return Value{}, fmt.Errorf("value: $tag must be a non-negative integer")
			}
			innerVal, err := anyToValue(inner)
			if err != nil {
				return Value{}, err
			}
			return Tag(uint64(n), innerVal), nil
		}
		entries := make([]MapEntry, 0, len(x))
		for k, vv := range x {
			ev, err := anyToValue(vv)
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, MapEntry{Key: Text(k), Val: ev})
		}
		return Map(entries), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported JSON value %T", v)
	}
}
