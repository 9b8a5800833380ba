package wire

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/nats-io/cbor-stream/runtime/float16"
	"github.com/nats-io/cbor-stream/runtime/stream"
)

// skipRecursionLimit bounds Skip's recursion over nested containers, the
// same defense the teacher runtime applies to its own Skip via
// recursionLimit.
const skipRecursionLimit = 100000

// ValidateUTF8OnDecode controls whether String validates that decoded text
// is well-formed UTF-8, as RFC 8949 §3.1 requires of major type 3. Tests
// that need to observe raw, possibly-malformed bytes can disable it.
var ValidateUTF8OnDecode = true

// maxFieldID bounds the field ids ObjCursor.Field will probe for. A field id
// beyond it cannot have been written by Encoder.Obj's ObjEncodeCursor, whose
// ids are int32 (see runtime/wire's Obj field-id convention); encountering
// one means the remaining keys, if any, can't match anything the caller
// will ask for, so Field drains the object and reports absent rather than
// walking arbitrarily large ids one at a time.
const maxFieldID = math.MaxInt32

// Decoder reads a single CBOR item sequence from a stream.ByteReader one
// header at a time. Every typed read (Int, Blob, Array, Obj, ...) snapshots
// whatever enclosing scope it is called from implicitly, by virtue of Go's
// call stack: a nested container's cursor holds only its own remaining
// count, and returning from the callback that reads it naturally restores
// the caller's.
//
// Once any read fails, the Decoder is done: every further call returns
// DecodeError until a fresh Decoder is created.
type Decoder struct {
	r      stream.ByteReader
	failed bool
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r stream.ByteReader) *Decoder {
	return &Decoder{r: r}
}

func (d *Decoder) fail(err error) error {
	d.failed = true
	return err
}

// readHeaderChecked is ReadHeader's internal entry point: it refuses to read
// once the decoder has already failed.
func (d *Decoder) readHeaderChecked() (Header, error) {
	if d.failed {
		return Header{}, newDecodeError("read attempted on a decoder that already failed")
	}
	return d.ReadHeader()
}

// ReadHeader parses the next CBOR item's prefix: major type, additional
// info, and any extension-byte argument. It does not consume the item's
// payload (container contents, blob/text bytes) - callers dispatch on
// Header.Kind and continue reading accordingly.
func (d *Decoder) ReadHeader() (Header, error) {
	lead, err := d.r.ReadRawBE(1)
	if err != nil {
		return Header{}, d.fail(newDecodeException("unexpected end of input reading header"))
	}
	b := byte(lead)
	major := b >> 5
	minor := b & 0x1f

	if major == majorSimple && minor == simpleBreak {
		return Header{Kind: KindBreak}, nil
	}

	var arg uint64
	indefinite := false
	switch {
	case minor < 24:
		arg = uint64(minor)
	case minor == addInfoUint8, minor == addInfoUint16, minor == addInfoUint32, minor == addInfoUint64:
		width := extensionWidth(minor)
		v, err := d.r.ReadRawBE(width)
		if err != nil {
			return Header{}, d.fail(newDecodeException("unexpected end of input reading argument"))
		}
		arg = v
	case minor == addInfoIndefinite:
		indefinite = true
	default:
		return Header{}, d.fail(newDecodeException("reserved additional information value"))
	}

	switch major {
	case majorUint:
		if indefinite {
			return Header{}, d.fail(newDecodeException("indefinite length not allowed on unsigned integer"))
		}
		return Header{Kind: KindUint, Arg: arg}, nil
	case majorNegInt:
		if indefinite {
			return Header{}, d.fail(newDecodeException("indefinite length not allowed on negative integer"))
		}
		return Header{Kind: KindNegInt, Arg: arg}, nil
	case majorBytes:
		if indefinite {
			return Header{Kind: KindBlobIndefinite}, nil
		}
		return Header{Kind: KindBlob, Arg: arg}, nil
	case majorText:
		if indefinite {
			return Header{Kind: KindTextIndefinite}, nil
		}
		return Header{Kind: KindText, Arg: arg}, nil
	case majorArray:
		if indefinite {
			return Header{Kind: KindArrayIndefinite}, nil
		}
		return Header{Kind: KindArray, Arg: arg}, nil
	case majorMap:
		if indefinite {
			return Header{Kind: KindMapIndefinite}, nil
		}
		return Header{Kind: KindMap, Arg: arg}, nil
	case majorTag:
		if indefinite {
			return Header{}, d.fail(newDecodeException("indefinite length not allowed on tag"))
		}
		return Header{Kind: KindTag, Arg: arg}, nil
	case majorSimple:
		switch minor {
		case simpleFalse:
			return Header{Kind: KindFalse}, nil
		case simpleTrue:
			return Header{Kind: KindTrue}, nil
		case simpleNull:
			return Header{Kind: KindNull}, nil
		case simpleUndefined:
			return Header{Kind: KindUndefined}, nil
		case simpleFloat16:
			return Header{Kind: KindFloat16, Arg: arg}, nil
		case simpleFloat32:
			return Header{Kind: KindFloat32, Arg: arg}, nil
		case simpleFloat64:
			return Header{Kind: KindFloat64, Arg: arg}, nil
		default:
			return Header{}, d.fail(newDecodeException("unsupported simple value"))
		}
	default:
		return Header{}, d.fail(newDecodeException("unreachable major type"))
	}
}

func extensionWidth(minor byte) int {
	switch minor {
	case addInfoUint8:
		return 1
	case addInfoUint16:
		return 2
	case addInfoUint32:
		return 4
	default:
		return 8
	}
}

func (d *Decoder) expectKind(h Header, want Kind) error {
	if h.Kind != want {
		return d.fail(newDecodeException(wantGot("unexpected type", want, h.Kind)))
	}
	return nil
}

// Int reads a CBOR integer (major type 0 or 1) and returns it widened to
// int64. A magnitude too large to represent in int64 is a DecodeException.
func (d *Decoder) Int() (int64, error) {
	h, err := d.readHeaderChecked()
	if err != nil {
		return 0, err
	}
	switch h.Kind {
	case KindUint:
		if h.Arg > math.MaxInt64 {
			return 0, d.fail(newDecodeException("unsigned integer overflows int64"))
		}
		return int64(h.Arg), nil
	case KindNegInt:
		if h.Arg > math.MaxInt64 {
			return 0, d.fail(newDecodeException("negative integer overflows int64"))
		}
		return -1 - int64(h.Arg), nil
	default:
		return 0, d.fail(newDecodeException(wantGot("unexpected type", "integer", h.Kind)))
	}
}

// Int32 reads a CBOR integer and saturates it to the int32 range rather than
// failing on overflow.
func (d *Decoder) Int32() (int32, error) {
	v, err := d.Int()
	if err != nil {
		return 0, err
	}
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32, nil
	case v < math.MinInt32:
		return math.MinInt32, nil
	default:
		return int32(v), nil
	}
}

// Bool reads a CBOR false/true simple value.
func (d *Decoder) Bool() (bool, error) {
	h, err := d.readHeaderChecked()
	if err != nil {
		return false, err
	}
	switch h.Kind {
	case KindFalse:
		return false, nil
	case KindTrue:
		return true, nil
	default:
		return false, d.fail(newDecodeException(wantGot("unexpected type", "bool", h.Kind)))
	}
}

// Null reads a CBOR null simple value.
func (d *Decoder) Null() error {
	h, err := d.readHeaderChecked()
	if err != nil {
		return err
	}
	return d.expectKind(h, KindNull)
}

// Undefined reads a CBOR undefined simple value.
func (d *Decoder) Undefined() error {
	h, err := d.readHeaderChecked()
	if err != nil {
		return err
	}
	return d.expectKind(h, KindUndefined)
}

// Float reads a CBOR float16/float32/float64 and widens it to float64.
func (d *Decoder) Float() (float64, error) {
	h, err := d.readHeaderChecked()
	if err != nil {
		return 0, err
	}
	v, err := floatFromHeader(h)
	if err != nil {
		return 0, d.fail(err)
	}
	return v, nil
}

func floatFromHeader(h Header) (float64, error) {
	switch h.Kind {
	case KindFloat16:
		return float64(float16.ToFloat32(uint16(h.Arg))), nil
	case KindFloat32:
		return float64(math.Float32frombits(uint32(h.Arg))), nil
	case KindFloat64:
		return math.Float64frombits(h.Arg), nil
	default:
		return 0, DecodeException{Msg: wantGot("unexpected type", "float", h.Kind)}
	}
}

// Tag reads a semantic tag (major type 6) and invokes fn exactly once to
// read the single nested value it wraps.
func (d *Decoder) Tag(fn func(d *Decoder, tagNumber uint64) error) error {
	h, err := d.readHeaderChecked()
	if err != nil {
		return err
	}
	if h.Kind != KindTag {
		return d.fail(newDecodeException(wantGot("unexpected type", "tag", h.Kind)))
	}
	if err := fn(d, h.Arg); err != nil {
		return d.fail(err)
	}
	return nil
}

// Blob reads a byte string (major type 2), definite or chunked indefinite,
// and hands fn a ByteReader over its payload. Bytes fn does not consume are
// skipped once fn returns. It returns the blob's total length.
func (d *Decoder) Blob(fn func(r stream.ByteReader) error) (int64, error) {
	h, err := d.readHeaderChecked()
	if err != nil {
		return 0, err
	}
	switch h.Kind {
	case KindBlob:
		sub := &boundedReader{parent: d.r, remaining: int64(h.Arg)}
		cbErr := fn(sub)
		if err := sub.drain(); err != nil {
			return 0, d.fail(newDecodeException("unexpected end of input draining blob"))
		}
		if cbErr != nil {
			return 0, d.fail(cbErr)
		}
		return int64(h.Arg), nil
	case KindBlobIndefinite:
		sub := &chunkBlobReader{d: d}
		cbErr := fn(sub)
		if err := sub.drainRemaining(); err != nil {
			return 0, err
		}
		if cbErr != nil {
			return 0, d.fail(cbErr)
		}
		return sub.total, nil
	default:
		return 0, d.fail(newDecodeException(wantGot("unexpected type", "blob", h.Kind)))
	}
}

// String reads a text string (major type 3), definite or chunked
// indefinite, concatenating chunks into a single Go string.
func (d *Decoder) String() (string, error) {
	h, err := d.readHeaderChecked()
	if err != nil {
		return "", err
	}
	return d.ContinueText(h)
}

// ContinueText reads a text string's payload given its already-parsed
// Header, for callers (such as runtime/value) that read the header
// themselves to dispatch on Kind first.
func (d *Decoder) ContinueText(h Header) (string, error) {
	switch h.Kind {
	case KindText:
		s, ok := d.r.ReadUTF8(int(h.Arg))
		if !ok {
			return "", d.fail(newDecodeException("unexpected end of input reading text"))
		}
		if err := d.validateUTF8(s); err != nil {
			return "", err
		}
		return s, nil
	case KindTextIndefinite:
		var sb strings.Builder
		for {
			ih, err := d.readHeaderChecked()
			if err != nil {
				return "", err
			}
			if ih.Kind == KindBreak {
				break
			}
			if ih.Kind != KindText {
				return "", d.fail(newDecodeException(wantGot("unexpected chunk type in indefinite text", "text", ih.Kind)))
			}
			s, ok := d.r.ReadUTF8(int(ih.Arg))
			if !ok {
				return "", d.fail(newDecodeException("unexpected end of input reading text chunk"))
			}
			sb.WriteString(s)
		}
		out := sb.String()
		if err := d.validateUTF8(out); err != nil {
			return "", err
		}
		return out, nil
	default:
		return "", d.fail(newDecodeException(wantGot("unexpected type", "text", h.Kind)))
	}
}

func (d *Decoder) validateUTF8(s string) error {
	if ValidateUTF8OnDecode && !utf8.ValidString(s) {
		return d.fail(newDecodeException("invalid UTF-8 in text string"))
	}
	return nil
}

// ContinueBlob materializes a blob's payload given its already-parsed
// Header, concatenating indefinite chunks. Used by runtime/value, whose
// tree has no distinction between definite and indefinite encodings.
func (d *Decoder) ContinueBlob(h Header) ([]byte, error) {
	switch h.Kind {
	case KindBlob:
		buf := make([]byte, h.Arg)
		n, err := d.r.ReadRaw(buf, 0, len(buf))
		if err != nil || n != len(buf) {
			return nil, d.fail(newDecodeException("unexpected end of input reading blob"))
		}
		return buf, nil
	case KindBlobIndefinite:
		sub := &chunkBlobReader{d: d}
		out, err := sub.ReadAllAvailable()
		if err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, d.fail(newDecodeException(wantGot("unexpected type", "blob", h.Kind)))
	}
}

// ArrayCursor iterates a CBOR array's elements, definite or indefinite,
// without exposing the distinction to its caller beyond HasNext's contract.
type ArrayCursor struct {
	d          *Decoder
	remaining  int64
	indefinite bool
	done       bool
	count      int64
}

// HasNext reports whether another element follows. The caller must read
// exactly one value from the cursor's Decoder immediately after a true
// result, before calling HasNext again.
func (c *ArrayCursor) HasNext() (bool, error) {
	if c.done {
		return false, nil
	}
	if !c.indefinite {
		if c.remaining == 0 {
			c.done = true
			return false, nil
		}
		c.remaining--
		c.count++
		return true, nil
	}
	b, ok := c.d.r.PeekByte()
	if !ok {
		return false, c.d.fail(newDecodeException("unexpected end of input in indefinite array"))
	}
	if b == breakByte {
		_, _ = c.d.r.ReadRawBE(1)
		c.done = true
		return false, nil
	}
	c.count++
	return true, nil
}

func (c *ArrayCursor) drain() error {
	for {
		has, err := c.HasNext()
		if err != nil {
			return err
		}
		if !has {
			return nil
		}
		if err := c.d.Skip(); err != nil {
			return err
		}
	}
}

// Array reads a CBOR array (major type 4), invoking fn with a cursor over
// its elements. Elements fn does not consume are skipped once fn returns.
// It returns the number of elements actually iterated.
func (d *Decoder) Array(fn func(c *ArrayCursor) error) (int64, error) {
	h, err := d.readHeaderChecked()
	if err != nil {
		return 0, err
	}
	cur, err := d.ContinueArray(h)
	if err != nil {
		return 0, err
	}
	if err := fn(cur); err != nil {
		return 0, d.fail(err)
	}
	if err := cur.drain(); err != nil {
		return 0, err
	}
	return cur.count, nil
}

// ContinueArray builds an ArrayCursor given an already-parsed Header.
func (d *Decoder) ContinueArray(h Header) (*ArrayCursor, error) {
	switch h.Kind {
	case KindArray:
		return &ArrayCursor{d: d, remaining: int64(h.Arg)}, nil
	case KindArrayIndefinite:
		return &ArrayCursor{d: d, indefinite: true}, nil
	default:
		return nil, d.fail(newDecodeException(wantGot("unexpected type", "array", h.Kind)))
	}
}

// MapCursor iterates a CBOR map's key/value pairs, definite or indefinite.
type MapCursor struct {
	d          *Decoder
	remaining  int64
	indefinite bool
	done       bool
	count      int64
}

// HasNext reports whether another pair follows. The caller must read
// exactly one key then one value from the cursor's Decoder immediately
// after a true result.
func (c *MapCursor) HasNext() (bool, error) {
	if c.done {
		return false, nil
	}
	if !c.indefinite {
		if c.remaining == 0 {
			c.done = true
			return false, nil
		}
		c.remaining--
		c.count++
		return true, nil
	}
	b, ok := c.d.r.PeekByte()
	if !ok {
		return false, c.d.fail(newDecodeException("unexpected end of input in indefinite map"))
	}
	if b == breakByte {
		_, _ = c.d.r.ReadRawBE(1)
		c.done = true
		return false, nil
	}
	c.count++
	return true, nil
}

func (c *MapCursor) drain() error {
	for {
		has, err := c.HasNext()
		if err != nil {
			return err
		}
		if !has {
			return nil
		}
		if err := c.d.Skip(); err != nil {
			return err
		}
		if err := c.d.Skip(); err != nil {
			return err
		}
	}
}

// Map reads a CBOR map (major type 5), invoking fn with a cursor over its
// pairs. Pairs fn does not consume are skipped once fn returns. It returns
// the number of pairs actually iterated.
func (d *Decoder) Map(fn func(c *MapCursor) error) (int64, error) {
	h, err := d.readHeaderChecked()
	if err != nil {
		return 0, err
	}
	cur, err := d.ContinueMap(h)
	if err != nil {
		return 0, err
	}
	if err := fn(cur); err != nil {
		return 0, d.fail(err)
	}
	if err := cur.drain(); err != nil {
		return 0, err
	}
	return cur.count, nil
}

// ContinueMap builds a MapCursor given an already-parsed Header.
func (d *Decoder) ContinueMap(h Header) (*MapCursor, error) {
	switch h.Kind {
	case KindMap:
		return &MapCursor{d: d, remaining: int64(h.Arg)}, nil
	case KindMapIndefinite:
		return &MapCursor{d: d, indefinite: true}, nil
	default:
		return nil, d.fail(newDecodeException(wantGot("unexpected type", "map", h.Kind)))
	}
}

// ObjCursor probes a CBOR map keyed by small non-negative integer field ids
// - the encoding generated struct codecs use for required/optional fields -
// in strictly ascending id order, per field, without having to decode fields
// the caller does not want.
type ObjCursor struct {
	d            *Decoder
	remaining    int64
	indefinite   bool
	done         bool
	peekedID     int64
	hasPeeked    bool
	lastConsumed int64
}

// Obj reads a CBOR map as a field-id-keyed object, invoking fn with a cursor
// over its fields. Any fields fn does not request are skipped once fn
// returns.
func (d *Decoder) Obj(fn func(c *ObjCursor) error) error {
	h, err := d.readHeaderChecked()
	if err != nil {
		return err
	}
	cur := &ObjCursor{d: d, lastConsumed: -1}
	switch h.Kind {
	case KindMap:
		cur.remaining = int64(h.Arg)
	case KindMapIndefinite:
		cur.indefinite = true
	default:
		return d.fail(newDecodeException(wantGot("unexpected type", "obj", h.Kind)))
	}
	if err := fn(cur); err != nil {
		return d.fail(err)
	}
	return cur.drainRest()
}

func (c *ObjCursor) peekNextKey() (id int64, more bool, err error) {
	if c.hasPeeked {
		return c.peekedID, true, nil
	}
	if c.done {
		return 0, false, nil
	}
	if !c.indefinite {
		if c.remaining == 0 {
			c.done = true
			return 0, false, nil
		}
	} else {
		b, ok := c.d.r.PeekByte()
		if !ok {
			return 0, false, c.d.fail(newDecodeException("unexpected end of input in obj"))
		}
		if b == breakByte {
			_, _ = c.d.r.ReadRawBE(1)
			c.done = true
			return 0, false, nil
		}
	}
	idVal, err := c.d.Int()
	if err != nil {
		return 0, false, err
	}
	if idVal > maxFieldID {
		// A field id beyond int32 range can't have been written by
		// ObjEncodeCursor.Field, so nothing from here on can match a
		// requested id either. Drain the rest of the object (including the
		// value paired with this oversized key) and report End, rather than
		// surfacing an id the caller's Field loop could never usefully
		// compare against.
		if err := c.d.Skip(); err != nil { // this key's value
			return 0, false, err
		}
		if !c.indefinite {
			c.remaining--
		}
		c.done = true
		for {
			more, err := c.hasMoreRaw()
			if err != nil {
				return 0, false, err
			}
			if !more {
				break
			}
			if _, err := c.d.Int(); err != nil { // next key
				return 0, false, err
			}
			if err := c.d.Skip(); err != nil { // next value
				return 0, false, err
			}
			if !c.indefinite {
				c.remaining--
			}
		}
		return 0, false, nil
	}
	c.peekedID = idVal
	c.hasPeeked = true
	return idVal, true, nil
}

// hasMoreRaw reports whether the object scope has another key/value pair,
// without decoding the key - used only while draining past an oversized
// field id, where the key itself is no longer meaningful to peek.
func (c *ObjCursor) hasMoreRaw() (bool, error) {
	if !c.indefinite {
		return c.remaining > 0, nil
	}
	b, ok := c.d.r.PeekByte()
	if !ok {
		return false, c.d.fail(newDecodeException("unexpected end of input in obj"))
	}
	if b == breakByte {
		_, _ = c.d.r.ReadRawBE(1)
		return false, nil
	}
	return true, nil
}

// Field requests the field with the given id, in strictly ascending order:
// requesting an id not greater than the last id actually consumed is a
// DecodeError (caller misuse), matching §4.5's ordering invariant. present
// is false when the object has no field with this id (it was omitted by the
// writer, or the object is exhausted); fn is not called in that case.
func (c *ObjCursor) Field(id int64, fn func(d *Decoder) error) (present bool, err error) {
	if id <= c.lastConsumed {
		return false, c.d.fail(newDecodeError("obj: requested field id " + toStr(id) + " is not greater than last consumed id " + toStr(c.lastConsumed)))
	}
	nextID, more, err := c.peekNextKey()
	if err != nil {
		return false, err
	}
	for more && nextID < id {
		if !c.indefinite {
			c.remaining--
		}
		c.hasPeeked = false
		c.lastConsumed = nextID
		if err := c.d.Skip(); err != nil {
			return false, err
		}
		nextID, more, err = c.peekNextKey()
		if err != nil {
			return false, err
		}
	}
	if !more || nextID != id {
		return false, nil
	}
	if !c.indefinite {
		c.remaining--
	}
	c.hasPeeked = false
	c.lastConsumed = id
	if err := fn(c.d); err != nil {
		return false, err
	}
	return true, nil
}

func (c *ObjCursor) drainRest() error {
	for {
		id, more, err := c.peekNextKey()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if !c.indefinite {
			c.remaining--
		}
		c.hasPeeked = false
		c.lastConsumed = id
		if err := c.d.Skip(); err != nil {
			return err
		}
	}
}

// Skip discards exactly one CBOR item, recursing into containers.
func (d *Decoder) Skip() error {
	return d.skipDepth(0)
}

func (d *Decoder) skipDepth(depth int) error {
	if depth > skipRecursionLimit {
		return d.fail(newDecodeException("skip recursion limit exceeded"))
	}
	h, err := d.readHeaderChecked()
	if err != nil {
		return err
	}
	return d.skipBody(h, depth)
}

func (d *Decoder) skipBody(h Header, depth int) error {
	switch h.Kind {
	case KindUint, KindNegInt, KindFalse, KindTrue, KindNull, KindUndefined,
		KindFloat16, KindFloat32, KindFloat64:
		return nil
	case KindBlob:
		if _, err := d.r.ReadSkip(int(h.Arg)); err != nil {
			return d.fail(newDecodeException("unexpected end of input skipping blob"))
		}
		return nil
	case KindText:
		if _, err := d.r.ReadSkip(int(h.Arg)); err != nil {
			return d.fail(newDecodeException("unexpected end of input skipping text"))
		}
		return nil
	case KindBlobIndefinite, KindTextIndefinite:
		want := KindBlob
		if h.Kind == KindTextIndefinite {
			want = KindText
		}
		for {
			ih, err := d.readHeaderChecked()
			if err != nil {
				return err
			}
			if ih.Kind == KindBreak {
				return nil
			}
			if ih.Kind != want {
				return d.fail(newDecodeException(wantGot("unexpected chunk type", want, ih.Kind)))
			}
			if _, err := d.r.ReadSkip(int(ih.Arg)); err != nil {
				return d.fail(newDecodeException("unexpected end of input skipping chunk"))
			}
		}
	case KindArray:
		for i := uint64(0); i < h.Arg; i++ {
			if err := d.skipDepth(depth + 1); err != nil {
				return err
			}
		}
		return nil
	case KindArrayIndefinite:
		for {
			ih, err := d.readHeaderChecked()
			if err != nil {
				return err
			}
			if ih.Kind == KindBreak {
				return nil
			}
			if err := d.skipBody(ih, depth+1); err != nil {
				return err
			}
		}
	case KindMap:
		for i := uint64(0); i < h.Arg; i++ {
			if err := d.skipDepth(depth + 1); err != nil {
				return err
			}
			if err := d.skipDepth(depth + 1); err != nil {
				return err
			}
		}
		return nil
	case KindMapIndefinite:
		for {
			ih, err := d.readHeaderChecked()
			if err != nil {
				return err
			}
			if ih.Kind == KindBreak {
				return nil
			}
			if err := d.skipBody(ih, depth+1); err != nil {
				return err
			}
			if err := d.skipDepth(depth + 1); err != nil {
				return err
			}
		}
	case KindTag:
		return d.skipDepth(depth + 1)
	default:
		return d.fail(newDecodeError("skip: unexpected kind " + h.Kind.String()))
	}
}
