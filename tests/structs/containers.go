package structs

import "github.com/nats-io/cbor-stream/runtime/wire"

// Containers exercises slices and maps of struct and pointer-to-struct
// fields, to validate hand-written struct codecs for container element
// types built on top of a field's own MarshalCBOR/UnmarshalCBOR.
type Containers struct {
	Items  []Scalars           `cbor:"items"`
	Ptrs   []*Scalars          `cbor:"ptrs"`
	Map    map[string]Scalars  `cbor:"map"`
	PtrMap map[string]*Scalars `cbor:"ptr_map"`
}

// MarshalCBOR writes c as a 4-field CBOR object.
func (c *Containers) MarshalCBOR(e *wire.Encoder) error {
	return e.Obj(4, func(oc *wire.ObjEncodeCursor) error {
		if err := oc.Field(0, func(e *wire.Encoder) error {
			return e.Array(len(c.Items), func(e *wire.Encoder) error {
				for i := range c.Items {
					if err := c.Items[i].MarshalCBOR(e); err != nil {
						return err
					}
				}
				return nil
			})
		}); err != nil {
			return err
		}
		if err := oc.Field(1, func(e *wire.Encoder) error {
			return e.Array(len(c.Ptrs), func(e *wire.Encoder) error {
				for _, p := range c.Ptrs {
					if err := p.MarshalCBOR(e); err != nil {
						return err
					}
				}
				return nil
			})
		}); err != nil {
			return err
		}
		if err := oc.Field(2, func(e *wire.Encoder) error {
			return e.Map(len(c.Map), func(e *wire.Encoder) error {
				for k, v := range c.Map {
					if err := e.String(k); err != nil {
						return err
					}
					v := v
					if err := v.MarshalCBOR(e); err != nil {
						return err
					}
				}
				return nil
			})
		}); err != nil {
			return err
		}
		return oc.Field(3, func(e *wire.Encoder) error {
			return e.Map(len(c.PtrMap), func(e *wire.Encoder) error {
				for k, p := range c.PtrMap {
					if err := e.String(k); err != nil {
						return err
					}
					if err := p.MarshalCBOR(e); err != nil {
						return err
					}
				}
				return nil
			})
		})
	})
}

// UnmarshalCBOR reads c's fields by id.
func (c *Containers) UnmarshalCBOR(d *wire.Decoder) error {
	return d.Obj(func(oc *wire.ObjCursor) error {
		if _, err := oc.Field(0, func(d *wire.Decoder) error {
			c.Items = nil
			_, err := d.Array(func(ac *wire.ArrayCursor) error {
				for {
					has, err := ac.HasNext()
					if err != nil || !has {
						return err
					}
					var s Scalars
					if err := s.UnmarshalCBOR(d); err != nil {
						return err
					}
					c.Items = append(c.Items, s)
				}
			})
			return err
		}); err != nil {
			return err
		}
		if _, err := oc.Field(1, func(d *wire.Decoder) error {
			c.Ptrs = nil
			_, err := d.Array(func(ac *wire.ArrayCursor) error {
				for {
					has, err := ac.HasNext()
					if err != nil || !has {
						return err
					}
					s := &Scalars{}
					if err := s.UnmarshalCBOR(d); err != nil {
						return err
					}
					c.Ptrs = append(c.Ptrs, s)
				}
			})
			return err
		}); err != nil {
			return err
		}
		if _, err := oc.Field(2, func(d *wire.Decoder) error {
			c.Map = make(map[string]Scalars)
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
					var s Scalars
					if err := s.UnmarshalCBOR(d); err != nil {
						return err
					}
					c.Map[k] = s
				}
			})
			return err
		}); err != nil {
			return err
		}
		_, err := oc.Field(3, func(d *wire.Decoder) error {
			c.PtrMap = make(map[string]*Scalars)
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
					s := &Scalars{}
					if err := s.UnmarshalCBOR(d); err != nil {
						return err
					}
					c.PtrMap[k] = s
				}
			})
			return err
		})
		return err
	})
}
