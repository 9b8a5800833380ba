package wire

import (
	"encoding/hex"
	"testing"

	"github.com/nats-io/cbor-stream/runtime/stream"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func newDecoder(t *testing.T, hexStr string) *Decoder {
	t.Helper()
	return NewDecoder(stream.NewMemoryBufferFromBytes(mustHex(t, hexStr)))
}

func TestDecoderIntRoundTrip(t *testing.T) {
	cases := []struct {
		hexStr string
		want   int64
	}{
		{"00", 0},
		{"17", 23},
		{"1818", 24},
		{"18ff", 255},
		{"190100", 256},
		{"20", -1},
		{"37", -24},
		{"3818", -25},
	}
	for _, c := range cases {
		d := newDecoder(t, c.hexStr)
		got, err := d.Int()
		if err != nil {
			t.Errorf("Int(%s): %v", c.hexStr, err)
			continue
		}
		if got != c.want {
			t.Errorf("Int(%s) = %d, want %d", c.hexStr, got, c.want)
		}
	}
}

func TestDecoderInt32Saturates(t *testing.T) {
	// 1<<40, far outside int32 range.
	d := newDecoder(t, "1b0000010000000000")
	got, err := d.Int32()
	if err != nil {
		t.Fatalf("Int32: %v", err)
	}
	if got != 1<<31-1 {
		t.Fatalf("Int32 overflow = %d, want math.MaxInt32", got)
	}
}

func TestDecoderBoolNullUndefined(t *testing.T) {
	if b, err := newDecoder(t, "f4").Bool(); err != nil || b != false {
		t.Fatalf("Bool(f4) = %v, %v; want false, nil", b, err)
	}
	if b, err := newDecoder(t, "f5").Bool(); err != nil || b != true {
		t.Fatalf("Bool(f5) = %v, %v; want true, nil", b, err)
	}
	if err := newDecoder(t, "f6").Null(); err != nil {
		t.Fatalf("Null(f6): %v", err)
	}
	if err := newDecoder(t, "f7").Undefined(); err != nil {
		t.Fatalf("Undefined(f7): %v", err)
	}
}

func TestDecoderFloatWidths(t *testing.T) {
	if v, err := newDecoder(t, "f93c00").Float(); err != nil || v != 1.0 {
		t.Fatalf("Float(f93c00) = %v, %v; want 1.0, nil", v, err)
	}
	if v, err := newDecoder(t, "fa47c35000").Float(); err != nil || v != 100000.0 {
		t.Fatalf("Float(fa47c35000) = %v, %v; want 100000.0, nil", v, err)
	}
}

func TestDecoderStringDefiniteAndIndefinite(t *testing.T) {
	if s, err := newDecoder(t, "6449455446").String(); err != nil || s != "IETF" {
		t.Fatalf("String(definite) = %q, %v; want IETF, nil", s, err)
	}
	// (_ "strea", "ming")
	if s, err := newDecoder(t, "7f657374726561646d696e67ff").String(); err != nil || s != "streaming" {
		t.Fatalf("String(indefinite) = %q, %v; want streaming, nil", s, err)
	}
}

func TestDecoderBlobDefiniteAndIndefinite(t *testing.T) {
	d := newDecoder(t, "420102")
	var got []byte
	n, err := d.Blob(func(r stream.ByteReader) error {
		b, err := r.ReadAllAvailable()
		got = b
		return err
	})
	if err != nil || n != 2 || string(got) != "\x01\x02" {
		t.Fatalf("Blob(definite) = %v, %d, %v", got, n, err)
	}

	// (_ h'0102', h'030a')
	d = newDecoder(t, "5f42010242030aff")
	got = nil
	n, err = d.Blob(func(r stream.ByteReader) error {
		b, err := r.ReadAllAvailable()
		got = b
		return err
	})
	if err != nil || n != 4 {
		t.Fatalf("Blob(indefinite) n=%d err=%v, want 4, nil", n, err)
	}
	if string(got) != "\x01\x02\x03\x0a" {
		t.Fatalf("Blob(indefinite) got %x, want 0102030a", got)
	}
}

func TestDecoderArrayHasNextDefinite(t *testing.T) {
	// [1, 2, 3]
	d := newDecoder(t, "83010203")
	var vals []int64
	n, err := d.Array(func(c *ArrayCursor) error {
		for {
			has, err := c.HasNext()
			if err != nil {
				return err
			}
			if !has {
				return nil
			}
			v, err := d.Int()
			if err != nil {
				return err
			}
			vals = append(vals, v)
		}
	})
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	if n != 3 || len(vals) != 3 || vals[0] != 1 || vals[2] != 3 {
		t.Fatalf("Array iterated %v (n=%d), want [1 2 3] (n=3)", vals, n)
	}
}

func TestDecoderArrayIndefinite(t *testing.T) {
	// (_ 1, 2)
	d := newDecoder(t, "9f0102ff")
	var vals []int64
	_, err := d.Array(func(c *ArrayCursor) error {
		for {
			has, err := c.HasNext()
			if err != nil {
				return err
			}
			if !has {
				return nil
			}
			v, err := d.Int()
			if err != nil {
				return err
			}
			vals = append(vals, v)
		}
	})
	if err != nil || len(vals) != 2 || vals[0] != 1 || vals[1] != 2 {
		t.Fatalf("Array(indefinite) = %v, %v; want [1 2], nil", vals, err)
	}
}

func TestDecoderArraySkipsUnreadElements(t *testing.T) {
	// [1, 2, 3] but the callback only reads the first element.
	d := newDecoder(t, "83010203")
	n, err := d.Array(func(c *ArrayCursor) error {
		has, err := c.HasNext()
		if err != nil || !has {
			return err
		}
		_, err = d.Int()
		return err
	})
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	if n != 3 {
		t.Fatalf("Array returned n=%d, want 3 (remaining elements must be skipped)", n)
	}
}

func TestDecoderMapHasNext(t *testing.T) {
	// {"a": 1, "b": 2}
	d := newDecoder(t, "a2616101616202")
	keys := map[string]int64{}
	_, err := d.Map(func(c *MapCursor) error {
		for {
			has, err := c.HasNext()
			if err != nil {
				return err
			}
			if !has {
				return nil
			}
			k, err := d.String()
			if err != nil {
				return err
			}
			v, err := d.Int()
			if err != nil {
				return err
			}
			keys[k] = v
		}
	})
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if keys["a"] != 1 || keys["b"] != 2 {
		t.Fatalf("Map decoded %v, want a:1 b:2", keys)
	}
}

func TestDecoderTag(t *testing.T) {
	// tag 1 wrapping integer 1363896240 (epoch timestamp example from RFC 8949 Appendix A)
	d := newDecoder(t, "c11a514b67b0")
	var gotTag uint64
	var gotVal int64
	err := d.Tag(func(d *Decoder, tagNumber uint64) error {
		gotTag = tagNumber
		v, err := d.Int()
		gotVal = v
		return err
	})
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if gotTag != 1 || gotVal != 1363896240 {
		t.Fatalf("Tag = %d(%d), want 1(1363896240)", gotTag, gotVal)
	}
}

func TestDecoderObjFieldProbingOrder(t *testing.T) {
	// Obj{0: 10, 2: 30, 5: 50} as a map: {0:10, 2:30, 5:50}
	buf := stream.NewMemoryBuffer()
	e := NewEncoder(buf)
	if err := e.Obj(3, func(c *ObjEncodeCursor) error {
		if err := c.Field(0, func(e *Encoder) error { return e.Int(10) }); err != nil {
			return err
		}
		if err := c.Field(2, func(e *Encoder) error { return e.Int(30) }); err != nil {
			return err
		}
		return c.Field(5, func(e *Encoder) error { return e.Int(50) })
	}); err != nil {
		t.Fatalf("Obj encode: %v", err)
	}

	dec := NewDecoder(stream.NewMemoryBufferFromBytes(buf.Written()))
	var f0, f2, f5 int64
	var gotPresent [3]bool
	err := dec.Obj(func(c *ObjCursor) error {
		present, err := c.Field(0, func(d *Decoder) error {
			v, err := d.Int()
			f0 = v
			return err
		})
		if err != nil {
			return err
		}
		gotPresent[0] = present

		present, err = c.Field(2, func(d *Decoder) error {
			v, err := d.Int()
			f2 = v
			return err
		})
		if err != nil {
			return err
		}
		gotPresent[1] = present

		present, err = c.Field(5, func(d *Decoder) error {
			v, err := d.Int()
			f5 = v
			return err
		})
		if err != nil {
			return err
		}
		gotPresent[2] = present
		return nil
	})
	if err != nil {
		t.Fatalf("Obj decode: %v", err)
	}
	if !gotPresent[0] || !gotPresent[1] || !gotPresent[2] {
		t.Fatalf("field presence = %v, want all true", gotPresent)
	}
	if f0 != 10 || f2 != 30 || f5 != 50 {
		t.Fatalf("fields = %d,%d,%d want 10,30,50", f0, f2, f5)
	}
}

func TestDecoderObjFieldSkipsGaps(t *testing.T) {
	// Obj{0: 10, 2: 30, 5: 50}, but the reader only asks for field 5 - fields
	// 0 and 2 must be skipped, not returned, and not break the probe for 5.
	buf := stream.NewMemoryBuffer()
	e := NewEncoder(buf)
	if err := e.Obj(3, func(c *ObjEncodeCursor) error {
		if err := c.Field(0, func(e *Encoder) error { return e.Int(10) }); err != nil {
			return err
		}
		if err := c.Field(2, func(e *Encoder) error { return e.Int(30) }); err != nil {
			return err
		}
		return c.Field(5, func(e *Encoder) error { return e.Int(50) })
	}); err != nil {
		t.Fatalf("Obj encode: %v", err)
	}

	dec := NewDecoder(stream.NewMemoryBufferFromBytes(buf.Written()))
	var f5 int64
	err := dec.Obj(func(c *ObjCursor) error {
		present, err := c.Field(5, func(d *Decoder) error {
			v, err := d.Int()
			f5 = v
			return err
		})
		if err != nil {
			return err
		}
		if !present {
			t.Fatalf("field 5 reported absent")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Obj decode: %v", err)
	}
	if f5 != 50 {
		t.Fatalf("field 5 = %d, want 50", f5)
	}
}

func TestDecoderObjFieldAbsent(t *testing.T) {
	buf := stream.NewMemoryBuffer()
	e := NewEncoder(buf)
	if err := e.Obj(1, func(c *ObjEncodeCursor) error {
		return c.Field(0, func(e *Encoder) error { return e.Int(1) })
	}); err != nil {
		t.Fatalf("Obj encode: %v", err)
	}

	dec := NewDecoder(stream.NewMemoryBufferFromBytes(buf.Written()))
	err := dec.Obj(func(c *ObjCursor) error {
		present, err := c.Field(9, func(d *Decoder) error { return nil })
		if err != nil {
			return err
		}
		if present {
			t.Fatalf("field 9 reported present in an object that never wrote it")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Obj decode: %v", err)
	}
}

func TestDecoderObjFieldOutOfOrderIsError(t *testing.T) {
	buf := stream.NewMemoryBuffer()
	e := NewEncoder(buf)
	if err := e.Obj(2, func(c *ObjEncodeCursor) error {
		if err := c.Field(0, func(e *Encoder) error { return e.Int(1) }); err != nil {
			return err
		}
		return c.Field(1, func(e *Encoder) error { return e.Int(2) })
	}); err != nil {
		t.Fatalf("Obj encode: %v", err)
	}

	dec := NewDecoder(stream.NewMemoryBufferFromBytes(buf.Written()))
	err := dec.Obj(func(c *ObjCursor) error {
		if _, err := c.Field(1, func(d *Decoder) error { return d.Skip() }); err != nil {
			return err
		}
		// Requesting field 0 after already having consumed through field 1
		// is caller misuse.
		_, err := c.Field(0, func(d *Decoder) error { return d.Skip() })
		return err
	})
	if _, ok := err.(DecodeError); !ok {
		t.Fatalf("out-of-order Field request error = %v (%T), want DecodeError", err, err)
	}
}

func TestDecoderSkipCoversAllShapes(t *testing.T) {
	cases := []string{
		"00",                          // uint
		"20",                          // negint
		"420102",                      // definite blob
		"5f42010242030aff",            // indefinite blob
		"6449455446",                  // definite text
		"7f657374726561646d696e67ff",  // indefinite text
		"83010203",                    // definite array
		"9f0102ff",                    // indefinite array
		"a2616101616202",              // definite map
		"c11a514b67b0",                // tag
		"f6",                          // null
		"f93c00",                      // float16
	}
	for _, hexStr := range cases {
		d := newDecoder(t, hexStr)
		if err := d.Skip(); err != nil {
			t.Errorf("Skip(%s): %v", hexStr, err)
		}
	}
}

func TestDecoderFailedDecoderRejectsFurtherReads(t *testing.T) {
	d := NewDecoder(stream.NewMemoryBufferFromBytes(nil))
	if _, err := d.Int(); err == nil {
		t.Fatalf("expected Int on empty stream to error")
	}
	if _, err := d.Int(); err == nil {
		t.Fatalf("expected read on already-failed decoder to error")
	}
}
