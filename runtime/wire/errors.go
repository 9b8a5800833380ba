package wire

import "strconv"

// Error is the interface satisfied by every error this package returns: a
// human message plus a Resumable flag telling the caller whether the byte
// stream itself is still trustworthy.
type Error interface {
	error
	Resumable() bool
}

// DecodeException reports malformed or unsupported input encountered while
// parsing a header or argument: truncated data, a reserved additional-info
// value, an indefinite-length marker on a major type that forbids it, an
// illegal simple value, or a header whose type doesn't match what a typed
// read requested. The underlying stream position is not recoverable -
// decoding cannot continue past the failure.
type DecodeException struct {
	Msg string
}

func (e DecodeException) Error() string   { return "cbor: decode exception: " + e.Msg }
func (e DecodeException) Resumable() bool { return false }

func newDecodeException(msg string) error { return DecodeException{Msg: msg} }

// DecodeError reports a caller misuse of the Decoder: probing a field id out
// of order, asking Skip to skip a header kind it cannot, or resuming a
// Decoder that already failed. These indicate a bug in the calling code
// rather than malformed input.
type DecodeError struct {
	Msg string
}

func (e DecodeError) Error() string   { return "cbor: decode error: " + e.Msg }
func (e DecodeError) Resumable() bool { return false }

func newDecodeError(msg string) error { return DecodeError{Msg: msg} }

// EncodeError reports a caller misuse of the Encoder: a sized scope callback
// that wrote more or fewer values than it declared, an obj field id written
// out of order or above the int32 range, or writing after a prior write
// failed.
type EncodeError struct {
	Msg string
}

func (e EncodeError) Error() string   { return "cbor: encode error: " + e.Msg }
func (e EncodeError) Resumable() bool { return false }

func newEncodeError(msg string) error { return EncodeError{Msg: msg} }

func wantGot(what string, want, got any) string {
	return what + ": want " + toStr(want) + ", got " + toStr(got)
}

func toStr(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case Kind:
		return t.String()
	default:
		return "?"
	}
}
