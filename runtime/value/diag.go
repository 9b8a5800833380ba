package value

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"

	"github.com/nats-io/cbor-stream/runtime/float16"
)

// String renders v in RFC 8949 §8 diagnostic notation, built directly from
// the value tree. The tree does not record indefinite-length encodings, so
// an array, map or string decoded from one prints in definite form.
func (v Value) String() string {
	var sb strings.Builder
	v.writeDiag(&sb)
	return sb.String()
}

func (v Value) writeDiag(sb *strings.Builder) {
	switch v.kind {
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat16:
		sb.WriteString(formatFloat32Diag(float16.ToFloat32(uint16(v.floatBits))))
	case KindFloat32:
		sb.WriteString(formatFloat32Diag(math.Float32frombits(uint32(v.floatBits))))
	case KindFloat64:
		sb.WriteString(formatFloat64Diag(math.Float64frombits(v.floatBits)))
	case KindText:
		sb.WriteString(quote(v.s))
	case KindBlob:
		sb.WriteString("h'")
		sb.WriteString(hex.EncodeToString(v.b))
		sb.WriteString("'")
	case KindArray:
		sb.WriteString("[")
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.writeDiag(sb)
		}
		sb.WriteString("]")
	case KindMap:
		sb.WriteString("{")
		for i, e := range v.m {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.Key.writeDiag(sb)
			sb.WriteString(": ")
			e.Val.writeDiag(sb)
		}
		sb.WriteString("}")
	case KindTag:
		sb.WriteString(strconv.FormatUint(v.tagNum, 10))
		sb.WriteString("(")
		v.tagVal.writeDiag(sb)
		sb.WriteString(")")
	case KindFalse:
		sb.WriteString("false")
	case KindTrue:
		sb.WriteString("true")
	case KindNull:
		sb.WriteString("null")
	case KindUndefined:
		sb.WriteString("undefined")
	default:
		sb.WriteString("<invalid>")
	}
}

// formatFloat64Diag and formatFloat32Diag render a float64 or float32 in
// diagnostic notation.
func formatFloat64Diag(f float64) string {
	if math.IsInf(f, +1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	af := math.Abs(f)
	if af == 0 || af < 1e15 {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		return trimTrailingZerosDot(s)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatFloat32Diag(f float32) string {
	if math.IsInf(float64(f), +1) {
		return "Infinity"
	}
	if math.IsInf(float64(f), -1) {
		return "-Infinity"
	}
	if math.IsNaN(float64(f)) {
		return "NaN"
	}
	af := math.Abs(float64(f))
	if af == 0 || af < 1e15 {
		s := strconv.FormatFloat(float64(f), 'f', -1, 32)
		return trimTrailingZerosDot(s)
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func trimTrailingZerosDot(s string) string {
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	if i > 0 && s[i-1] == '.' {
		i--
	}
	return s[:i]
}
