package structs

import (
	"time"

	"github.com/nats-io/cbor-stream/runtime/wire"
)

// Scalars exercises a wide range of primitive field types, plus nested
// arrays, a map, a timestamp, and a duration, to validate hand-written
// struct codecs built on runtime/wire across every scalar Kind the wire
// format distinguishes.
type Scalars struct {
	S      string         `cbor:"s"`  // field 0
	B      bool           `cbor:"b"`  // field 1
	I      int            `cbor:"i"`  // field 2
	I8     int8           `cbor:"i8"` // field 3
	I16    int16          `cbor:"i16"`
	I32    int32          `cbor:"i32"`
	I64    int64          `cbor:"i64"`
	U      uint           `cbor:"u"`
	U8     uint8          `cbor:"u8"`
	U16    uint16         `cbor:"u16"`
	U32    uint32         `cbor:"u32"`
	U64    uint64         `cbor:"u64"`
	F32    float32        `cbor:"f32"`
	F64    float64        `cbor:"f64"`
	Data   []byte         `cbor:"data"`
	Ints   []int          `cbor:"ints"`
	Names  []string       `cbor:"names"`
	Scores map[string]int `cbor:"scores"`
	T      time.Time      `cbor:"t"`
	D      time.Duration  `cbor:"d"`
}

// Nested exercises nested struct and pointer fields.
type Nested struct {
	ID   string   `cbor:"id"`
	Base Scalars  `cbor:"base"`
	Ptr  *Scalars `cbor:"ptr,omitempty"` // field 2
}

const timeLayout = time.RFC3339Nano

// MarshalCBOR writes s as a CBOR object keyed by field id, in ascending
// order, one Field call per struct field.
func (s *Scalars) MarshalCBOR(e *wire.Encoder) error {
	return e.Obj(20, func(c *wire.ObjEncodeCursor) error {
		fields := []struct {
			id int64
			fn func(e *wire.Encoder) error
		}{
			{0, func(e *wire.Encoder) error { return e.String(s.S) }},
			{1, func(e *wire.Encoder) error { return e.Bool(s.B) }},
			{2, func(e *wire.Encoder) error { return e.Int(int64(s.I)) }},
			{3, func(e *wire.Encoder) error { return e.Int(int64(s.I8)) }},
			{4, func(e *wire.Encoder) error { return e.Int(int64(s.I16)) }},
			{5, func(e *wire.Encoder) error { return e.Int(int64(s.I32)) }},
			{6, func(e *wire.Encoder) error { return e.Int(s.I64) }},
			{7, func(e *wire.Encoder) error { return e.Int(int64(s.U)) }},
			{8, func(e *wire.Encoder) error { return e.Int(int64(s.U8)) }},
			{9, func(e *wire.Encoder) error { return e.Int(int64(s.U16)) }},
			{10, func(e *wire.Encoder) error { return e.Int(int64(s.U32)) }},
			{11, func(e *wire.Encoder) error { return e.Int(int64(s.U64)) }},
			{12, func(e *wire.Encoder) error { return e.Float(float64(s.F32)) }},
			{13, func(e *wire.Encoder) error { return e.Float(s.F64) }},
			{14, func(e *wire.Encoder) error { return e.BlobBytes(s.Data) }},
			{15, func(e *wire.Encoder) error {
				return e.Array(len(s.Ints), func(e *wire.Encoder) error {
					for _, v := range s.Ints {
						if err := e.Int(int64(v)); err != nil {
							return err
						}
					}
					return nil
				})
			}},
			{16, func(e *wire.Encoder) error {
				return e.Array(len(s.Names), func(e *wire.Encoder) error {
					for _, v := range s.Names {
						if err := e.String(v); err != nil {
							return err
						}
					}
					return nil
				})
			}},
			{17, func(e *wire.Encoder) error {
				return e.Map(len(s.Scores), func(e *wire.Encoder) error {
					for k, v := range s.Scores {
						if err := e.String(k); err != nil {
							return err
						}
						if err := e.Int(int64(v)); err != nil {
							return err
						}
					}
					return nil
				})
			}},
			{18, func(e *wire.Encoder) error {
				return e.Tag(0, func(e *wire.Encoder) error { return e.String(s.T.UTC().Format(timeLayout)) })
			}},
			{19, func(e *wire.Encoder) error { return e.Int(int64(s.D)) }},
		}
		for _, f := range fields {
			if err := c.Field(f.id, f.fn); err != nil {
				return err
			}
		}
		return nil
	})
}

// UnmarshalCBOR reads s's fields by id.
func (s *Scalars) UnmarshalCBOR(d *wire.Decoder) error {
	return d.Obj(func(c *wire.ObjCursor) error {
		if _, err := c.Field(0, func(d *wire.Decoder) error {
			v, err := d.String()
			s.S = v
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(1, func(d *wire.Decoder) error {
			v, err := d.Bool()
			s.B = v
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(2, func(d *wire.Decoder) error {
			v, err := d.Int()
			s.I = int(v)
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(3, func(d *wire.Decoder) error {
			v, err := d.Int()
			s.I8 = int8(v)
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(4, func(d *wire.Decoder) error {
			v, err := d.Int()
			s.I16 = int16(v)
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(5, func(d *wire.Decoder) error {
			v, err := d.Int()
			s.I32 = int32(v)
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(6, func(d *wire.Decoder) error {
			v, err := d.Int()
			s.I64 = v
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(7, func(d *wire.Decoder) error {
			v, err := d.Int()
			s.U = uint(v)
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(8, func(d *wire.Decoder) error {
			v, err := d.Int()
			s.U8 = uint8(v)
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(9, func(d *wire.Decoder) error {
			v, err := d.Int()
			s.U16 = uint16(v)
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(10, func(d *wire.Decoder) error {
			v, err := d.Int()
			s.U32 = uint32(v)
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(11, func(d *wire.Decoder) error {
			v, err := d.Int()
			s.U64 = uint64(v)
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(12, func(d *wire.Decoder) error {
			v, err := d.Float()
			s.F32 = float32(v)
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(13, func(d *wire.Decoder) error {
			v, err := d.Float()
			s.F64 = v
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(14, func(d *wire.Decoder) error {
			h, err := d.ReadHeader()
			if err != nil {
				return err
			}
			b, err := d.ContinueBlob(h)
			s.Data = b
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(15, func(d *wire.Decoder) error {
			s.Ints = nil
			_, err := d.Array(func(ac *wire.ArrayCursor) error {
				for {
					has, err := ac.HasNext()
					if err != nil || !has {
						return err
					}
					v, err := d.Int()
					if err != nil {
						return err
					}
					s.Ints = append(s.Ints, int(v))
				}
			})
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(16, func(d *wire.Decoder) error {
			s.Names = nil
			_, err := d.Array(func(ac *wire.ArrayCursor) error {
				for {
					has, err := ac.HasNext()
					if err != nil || !has {
						return err
					}
					v, err := d.String()
					if err != nil {
						return err
					}
					s.Names = append(s.Names, v)
				}
			})
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(17, func(d *wire.Decoder) error {
			s.Scores = make(map[string]int)
			_, err := d.Map(func(mc *wire.MapCursor) error {
				for {
					has, err := mc.HasNext()
					if err != nil || !has {
						return err
					}
					k, err := d.String()
					if err != nil {
						return err
					}
					v, err := d.Int()
					if err != nil {
						return err
					}
					s.Scores[k] = int(v)
				}
			})
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(18, func(d *wire.Decoder) error {
			return d.Tag(func(d *wire.Decoder, tagNumber uint64) error {
				str, err := d.String()
				if err != nil {
					return err
				}
				t, err := time.Parse(timeLayout, str)
				if err != nil {
					return err
				}
				s.T = t
				return nil
			})
		}); err != nil {
			return err
		}
		_, err := c.Field(19, func(d *wire.Decoder) error {
			v, err := d.Int()
			s.D = time.Duration(v)
			return err
		})
		return err
	})
}

// MarshalCBOR writes n as a CBOR object, omitting Ptr when nil.
func (n *Nested) MarshalCBOR(e *wire.Encoder) error {
	fieldCount := 2
	if n.Ptr != nil {
		fieldCount++
	}
	return e.Obj(fieldCount, func(c *wire.ObjEncodeCursor) error {
		if err := c.Field(0, func(e *wire.Encoder) error { return e.String(n.ID) }); err != nil {
			return err
		}
		if err := c.Field(1, n.Base.MarshalCBOR); err != nil {
			return err
		}
		if n.Ptr != nil {
			return c.Field(2, n.Ptr.MarshalCBOR)
		}
		return nil
	})
}

// UnmarshalCBOR reads n's fields by id.
func (n *Nested) UnmarshalCBOR(d *wire.Decoder) error {
	return d.Obj(func(c *wire.ObjCursor) error {
		if _, err := c.Field(0, func(d *wire.Decoder) error {
			v, err := d.String()
			n.ID = v
			return err
		}); err != nil {
			return err
		}
		if _, err := c.Field(1, n.Base.UnmarshalCBOR); err != nil {
			return err
		}
		present, err := c.Field(2, func(d *wire.Decoder) error {
			n.Ptr = &Scalars{}
			return n.Ptr.UnmarshalCBOR(d)
		})
		if err != nil {
			return err
		}
		if !present {
			n.Ptr = nil
		}
		return nil
	})
}
