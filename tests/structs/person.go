package structs

import "github.com/nats-io/cbor-stream/runtime/wire"

// Person is a simple example type used to exercise hand-written struct
// codecs built directly on runtime/wire's Obj/Field cursors: field-id
// ordering, omitempty, and round-tripping through Encoder/Decoder.
type Person struct {
	Name string `cbor:"name"`          // field 0
	Age  int    `cbor:"age,omitempty"` // field 1
	Data []byte `cbor:"data"`          // field 2
}

// MarshalCBOR writes p as a CBOR object keyed by field id, omitting Age
// when it is zero.
func (p *Person) MarshalCBOR(e *wire.Encoder) error {
	n := 2
	if p.Age != 0 {
		n++
	}
	return e.Obj(n, func(c *wire.ObjEncodeCursor) error {
		if err := c.Field(0, func(e *wire.Encoder) error { return e.String(p.Name) }); err != nil {
			return err
		}
		if p.Age != 0 {
			if err := c.Field(1, func(e *wire.Encoder) error { return e.Int(int64(p.Age)) }); err != nil {
				return err
			}
		}
		return c.Field(2, func(e *wire.Encoder) error { return e.BlobBytes(p.Data) })
	})
}

// UnmarshalCBOR reads p's fields by id. Age is left at its zero value when
// the encoding omitted it.
func (p *Person) UnmarshalCBOR(d *wire.Decoder) error {
	return d.Obj(func(c *wire.ObjCursor) error {
		if _, err := c.Field(0, func(d *wire.Decoder) error {
			s, err := d.String()
			if err != nil {
				return err
			}
			p.Name = s
			return nil
		}); err != nil {
			return err
		}
		if _, err := c.Field(1, func(d *wire.Decoder) error {
			v, err := d.Int()
			if err != nil {
				return err
			}
			p.Age = int(v)
			return nil
		}); err != nil {
			return err
		}
		_, err := c.Field(2, func(d *wire.Decoder) error {
			h, err := d.ReadHeader()
			if err != nil {
				return err
			}
			b, err := d.ContinueBlob(h)
			if err != nil {
				return err
			}
			p.Data = b
			return nil
		})
		return err
	})
}
