// Package wire implements the streaming CBOR (RFC 8949) encoder and decoder:
// a header-at-a-time state machine over a runtime/stream.ByteReader or
// ByteWriter, with reentrant scope tracking for nested containers, chunked
// indefinite-length strings, semantic tags, and the Protobuf-style
// object/field-id probing API used by generated struct codecs.
//
// wire is built for data that cannot be materialized as a single slice:
// network streams, large documents, and the generic runtime/value tree all
// decode through it one header at a time.
package wire

const (
	majorUint   = 0
	majorNegInt = 1
	majorBytes  = 2
	majorText   = 3
	majorArray  = 4
	majorMap    = 5
	majorTag    = 6
	majorSimple = 7
)

const (
	addInfoUint8      = 24
	addInfoUint16     = 25
	addInfoUint32     = 26
	addInfoUint64     = 27
	addInfoIndefinite = 31
)

const (
	simpleFalse     = 20
	simpleTrue      = 21
	simpleNull      = 22
	simpleUndefined = 23
	simpleFloat16   = 25
	simpleFloat32   = 26
	simpleFloat64   = 27
	simpleBreak     = 31
)

const breakByte = byte(majorSimple<<5 | simpleBreak)

// Kind identifies what a parsed Header describes. It tracks exactly what the
// decoder state machine needs to dispatch on: whether a container is
// definite or indefinite, and the break marker itself.
type Kind int

const (
	KindEnd Kind = iota
	KindBreak
	KindUint
	KindNegInt
	KindBlob
	KindBlobIndefinite
	KindText
	KindTextIndefinite
	KindArray
	KindArrayIndefinite
	KindMap
	KindMapIndefinite
	KindTag
	KindFalse
	KindTrue
	KindNull
	KindUndefined
	KindFloat16
	KindFloat32
	KindFloat64
)

func (k Kind) String() string {
	switch k {
	case KindEnd:
		return "end"
	case KindBreak:
		return "break"
	case KindUint:
		return "uint"
	case KindNegInt:
		return "negint"
	case KindBlob:
		return "blob"
	case KindBlobIndefinite:
		return "blob*"
	case KindText:
		return "text"
	case KindTextIndefinite:
		return "text*"
	case KindArray:
		return "array"
	case KindArrayIndefinite:
		return "array*"
	case KindMap:
		return "map"
	case KindMapIndefinite:
		return "map*"
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
	case KindFloat16:
		return "float16"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	default:
		return "<invalid>"
	}
}

// Header is a single parsed CBOR item prefix: its Kind plus the decoded
// argument (count/length for containers and blobs, magnitude for integers,
// tag number for tags, raw bits for floats).
type Header struct {
	Kind Kind
	Arg  uint64
}

// IsContainer reports whether Kind opens array/map/tagged content that a
// typed reader must recurse into rather than treat as a leaf value.
func (k Kind) IsContainer() bool {
	switch k {
	case KindArray, KindArrayIndefinite, KindMap, KindMapIndefinite, KindTag:
		return true
	default:
		return false
	}
}
