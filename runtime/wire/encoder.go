package wire

import (
	"math"

	"github.com/nats-io/cbor-stream/runtime/float16"
	"github.com/nats-io/cbor-stream/runtime/stream"
)

// Encoder writes a CBOR item sequence to a stream.ByteWriter one header at a
// time, always in shortest form. Every sized scope (Tag, Array, Map, Obj,
// Blob) declares its size up front and asserts, on exit, that its callback
// wrote exactly that many values - the encoder's value-count discipline
// that keeps a definite-length header honest without buffering the whole
// container first.
//
// Once any write fails, the Encoder is done: every further call returns
// EncodeError until a fresh Encoder is created.
type Encoder struct {
	w             stream.ByteWriter
	valuesWritten int64
	failed        bool
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w stream.ByteWriter) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) fail(err error) error {
	e.failed = true
	return err
}

func (e *Encoder) checkOK() error {
	if e.failed {
		return newEncodeError("write attempted on an encoder that already failed")
	}
	return nil
}

func (e *Encoder) noteValue() { e.valuesWritten++ }

func (e *Encoder) writeHead(major byte, arg uint64) error {
	switch {
	case arg < 24:
		return e.w.WriteRawBE(uint64(major)<<5|arg, 1)
	case arg <= math.MaxUint8:
		if err := e.w.WriteRawBE(uint64(major)<<5|addInfoUint8, 1); err != nil {
			return err
		}
		return e.w.WriteRawBE(arg, 1)
	case arg <= math.MaxUint16:
		if err := e.w.WriteRawBE(uint64(major)<<5|addInfoUint16, 1); err != nil {
			return err
		}
		return e.w.WriteRawBE(arg, 2)
	case arg <= math.MaxUint32:
		if err := e.w.WriteRawBE(uint64(major)<<5|addInfoUint32, 1); err != nil {
			return err
		}
		return e.w.WriteRawBE(arg, 4)
	default:
		if err := e.w.WriteRawBE(uint64(major)<<5|addInfoUint64, 1); err != nil {
			return err
		}
		return e.w.WriteRawBE(arg, 8)
	}
}

func (e *Encoder) writeIndefiniteHead(major byte) error {
	return e.w.WriteRawBE(uint64(major)<<5|addInfoIndefinite, 1)
}

func (e *Encoder) writeBreak() error {
	return e.w.WriteRawBE(uint64(breakByte), 1)
}

// Int writes a CBOR integer (major type 0 for non-negative, 1 for negative)
// in shortest form.
func (e *Encoder) Int(v int64) error {
	if err := e.checkOK(); err != nil {
		return err
	}
	var err error
	if v >= 0 {
		err = e.writeHead(majorUint, uint64(v))
	} else {
		err = e.writeHead(majorNegInt, uint64(-(v+1)))
	}
	if err != nil {
		return e.fail(err)
	}
	e.noteValue()
	return nil
}

// Bool writes a CBOR false/true simple value.
func (e *Encoder) Bool(b bool) error {
	if err := e.checkOK(); err != nil {
		return err
	}
	arg := uint64(simpleFalse)
	if b {
		arg = simpleTrue
	}
	if err := e.writeHead(majorSimple, arg); err != nil {
		return e.fail(err)
	}
	e.noteValue()
	return nil
}

// Null writes a CBOR null simple value.
func (e *Encoder) Null() error {
	if err := e.checkOK(); err != nil {
		return err
	}
	if err := e.writeHead(majorSimple, simpleNull); err != nil {
		return e.fail(err)
	}
	e.noteValue()
	return nil
}

// Undefined writes a CBOR undefined simple value.
func (e *Encoder) Undefined() error {
	if err := e.checkOK(); err != nil {
		return err
	}
	if err := e.writeHead(majorSimple, simpleUndefined); err != nil {
		return e.fail(err)
	}
	e.noteValue()
	return nil
}

func canFloat16(v float64) bool {
	bits := float16.FromFloat32(float32(v))
	return float64(float16.ToFloat32(bits)) == v
}

func canFloat32(v float64) bool {
	return float64(float32(v)) == v
}

// Float writes v in the shortest CBOR float width (16, 32, or 64 bits) that
// round-trips it exactly. NaN is always canonicalized to float16.
func (e *Encoder) Float(v float64) error {
	if err := e.checkOK(); err != nil {
		return err
	}
	var err error
	switch {
	case math.IsNaN(v), canFloat16(v):
		err = e.writeFloatBits(simpleFloat16, 2, uint64(float16.FromFloat32(float32(v))))
	case canFloat32(v):
		err = e.writeFloatBits(simpleFloat32, 4, uint64(math.Float32bits(float32(v))))
	default:
		err = e.writeFloatBits(simpleFloat64, 8, math.Float64bits(v))
	}
	if err != nil {
		return e.fail(err)
	}
	e.noteValue()
	return nil
}

func (e *Encoder) writeFloatBits(simple byte, width int, bits uint64) error {
	if err := e.w.WriteRawBE(uint64(majorSimple)<<5|uint64(simple), 1); err != nil {
		return err
	}
	return e.w.WriteRawBE(bits, width)
}

// BlobBytes writes a definite-length byte string from an in-memory slice.
func (e *Encoder) BlobBytes(b []byte) error {
	if err := e.checkOK(); err != nil {
		return err
	}
	if err := e.writeHead(majorBytes, uint64(len(b))); err != nil {
		return e.fail(err)
	}
	if err := e.w.WriteRaw(b, 0, len(b)); err != nil {
		return e.fail(err)
	}
	e.noteValue()
	return nil
}

// String writes a definite-length UTF-8 text string.
func (e *Encoder) String(s string) error {
	if err := e.checkOK(); err != nil {
		return err
	}
	b := []byte(s)
	if err := e.writeHead(majorText, uint64(len(b))); err != nil {
		return e.fail(err)
	}
	if err := e.w.WriteRaw(b, 0, len(b)); err != nil {
		return e.fail(err)
	}
	e.noteValue()
	return nil
}

// boundedWriter bounds a Blob callback to exactly the declared size,
// failing any attempt to write past it.
type boundedWriter struct {
	parent  stream.ByteWriter
	want    int64
	written int64
}

func (b *boundedWriter) WriteRawBE(v uint64, width int) error {
	if b.written+int64(width) > b.want {
		return newEncodeError("blob callback wrote more bytes than declared")
	}
	if err := b.parent.WriteRawBE(v, width); err != nil {
		return err
	}
	b.written += int64(width)
	return nil
}

func (b *boundedWriter) WriteRawLE(v uint64, width int) error {
	if b.written+int64(width) > b.want {
		return newEncodeError("blob callback wrote more bytes than declared")
	}
	if err := b.parent.WriteRawLE(v, width); err != nil {
		return err
	}
	b.written += int64(width)
	return nil
}

func (b *boundedWriter) WriteRaw(buf []byte, start, end int) error {
	n := end - start
	if b.written+int64(n) > b.want {
		return newEncodeError("blob callback wrote more bytes than declared")
	}
	if err := b.parent.WriteRaw(buf, start, end); err != nil {
		return err
	}
	b.written += int64(n)
	return nil
}

func (b *boundedWriter) TotalWritten() int64 { return b.written }

// Blob writes a definite-length byte string of exactly size bytes, produced
// by fn writing to the supplied ByteWriter. fn writing more or fewer bytes
// than size is an EncodeError.
func (e *Encoder) Blob(size int, fn func(w stream.ByteWriter) error) error {
	if err := e.checkOK(); err != nil {
		return err
	}
	if err := e.writeHead(majorBytes, uint64(size)); err != nil {
		return e.fail(err)
	}
	bw := &boundedWriter{parent: e.w, want: int64(size)}
	if err := fn(bw); err != nil {
		return e.fail(err)
	}
	if bw.written != bw.want {
		return e.fail(newEncodeError("blob callback wrote " + toStr(bw.written) + " bytes, declared " + toStr(size)))
	}
	e.noteValue()
	return nil
}

// Array writes a definite-length array of exactly n elements, written by fn
// calling back into e. fn writing a different number of values is an
// EncodeError.
func (e *Encoder) Array(n int, fn func(e *Encoder) error) error {
	if err := e.checkOK(); err != nil {
		return err
	}
	if err := e.writeHead(majorArray, uint64(n)); err != nil {
		return e.fail(err)
	}
	before := e.valuesWritten
	if err := fn(e); err != nil {
		return e.fail(err)
	}
	if e.valuesWritten-before != int64(n) {
		return e.fail(newEncodeError("array declared " + toStr(n) + " values, callback wrote " + toStr(e.valuesWritten-before)))
	}
	e.valuesWritten = before
	e.noteValue()
	return nil
}

// ArrayIndefinite writes an indefinite-length array, terminated by a break
// once fn returns. Any number of elements is accepted.
func (e *Encoder) ArrayIndefinite(fn func(e *Encoder) error) error {
	if err := e.checkOK(); err != nil {
		return err
	}
	if err := e.writeIndefiniteHead(majorArray); err != nil {
		return e.fail(err)
	}
	before := e.valuesWritten
	if err := fn(e); err != nil {
		return e.fail(err)
	}
	if err := e.writeBreak(); err != nil {
		return e.fail(err)
	}
	e.valuesWritten = before
	e.noteValue()
	return nil
}

// Map writes a definite-length map of exactly n key/value pairs (2n values),
// written by fn calling back into e. fn writing a different number of
// key/value values is an EncodeError.
func (e *Encoder) Map(n int, fn func(e *Encoder) error) error {
	if err := e.checkOK(); err != nil {
		return err
	}
	if err := e.writeHead(majorMap, uint64(n)); err != nil {
		return e.fail(err)
	}
	before := e.valuesWritten
	if err := fn(e); err != nil {
		return e.fail(err)
	}
	if e.valuesWritten-before != int64(n)*2 {
		return e.fail(newEncodeError("map declared " + toStr(n) + " pairs, callback wrote " + toStr((e.valuesWritten-before)/2)))
	}
	e.valuesWritten = before
	e.noteValue()
	return nil
}

// MapIndefinite writes an indefinite-length map, terminated by a break once
// fn returns. fn writing an odd number of values (a dangling key with no
// value) is an EncodeError.
func (e *Encoder) MapIndefinite(fn func(e *Encoder) error) error {
	if err := e.checkOK(); err != nil {
		return err
	}
	if err := e.writeIndefiniteHead(majorMap); err != nil {
		return e.fail(err)
	}
	before := e.valuesWritten
	if err := fn(e); err != nil {
		return e.fail(err)
	}
	if (e.valuesWritten-before)%2 != 0 {
		return e.fail(newEncodeError("indefinite map callback wrote an odd number of values (dangling key)"))
	}
	if err := e.writeBreak(); err != nil {
		return e.fail(err)
	}
	e.valuesWritten = before
	e.noteValue()
	return nil
}

// Tag writes a semantic tag wrapping exactly one nested value, written by
// fn. fn writing zero or more than one value is an EncodeError.
func (e *Encoder) Tag(tagNumber uint64, fn func(e *Encoder) error) error {
	if err := e.checkOK(); err != nil {
		return err
	}
	if err := e.writeHead(majorTag, tagNumber); err != nil {
		return e.fail(err)
	}
	before := e.valuesWritten
	if err := fn(e); err != nil {
		return e.fail(err)
	}
	if e.valuesWritten-before != 1 {
		return e.fail(newEncodeError("tag callback must write exactly one value"))
	}
	e.valuesWritten = before
	e.noteValue()
	return nil
}

// ObjEncodeCursor writes a CBOR map keyed by small non-negative integer
// field ids, the encoding generated struct codecs use. Field ids written
// through a single cursor must be strictly increasing.
type ObjEncodeCursor struct {
	e                *Encoder
	nextFieldAtLeast int64
}

// Field writes one field: its integer id, then the single value fn writes.
// id must be strictly greater than every id previously written through this
// cursor and at most math.MaxInt32, and fn must write exactly one value; any
// violation is an EncodeError.
func (c *ObjEncodeCursor) Field(id int64, fn func(e *Encoder) error) error {
	if id < c.nextFieldAtLeast {
		return c.e.fail(newEncodeError("obj: field id " + toStr(id) + " is not >= required next id " + toStr(c.nextFieldAtLeast)))
	}
	if id > maxFieldID {
		return c.e.fail(newEncodeError("obj: field id " + toStr(id) + " exceeds the int32 field-id range"))
	}
	c.nextFieldAtLeast = id + 1
	if err := c.e.Int(id); err != nil {
		return err
	}
	before := c.e.valuesWritten
	if err := fn(c.e); err != nil {
		return c.e.fail(err)
	}
	if c.e.valuesWritten-before != 1 {
		return c.e.fail(newEncodeError("obj: field value callback must write exactly one value"))
	}
	return nil
}

// Obj writes a definite-length map of exactly n fields, written by fn
// through an ObjEncodeCursor in strictly ascending field-id order.
func (e *Encoder) Obj(n int, fn func(c *ObjEncodeCursor) error) error {
	if err := e.checkOK(); err != nil {
		return err
	}
	if err := e.writeHead(majorMap, uint64(n)); err != nil {
		return e.fail(err)
	}
	before := e.valuesWritten
	cur := &ObjEncodeCursor{e: e}
	if err := fn(cur); err != nil {
		return e.fail(err)
	}
	if e.valuesWritten-before != int64(n)*2 {
		return e.fail(newEncodeError("obj declared " + toStr(n) + " fields, callback wrote " + toStr((e.valuesWritten-before)/2) + " fields"))
	}
	e.valuesWritten = before
	e.noteValue()
	return nil
}
