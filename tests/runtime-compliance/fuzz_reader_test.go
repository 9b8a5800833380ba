package tests

import (
	"testing"

	"github.com/nats-io/cbor-stream/runtime/stream"
	"github.com/nats-io/cbor-stream/runtime/value"
	"github.com/nats-io/cbor-stream/runtime/wire"
)

// FuzzDecoderBasic fuzzes wire.Decoder and value.Decode to ensure they do
// not panic on arbitrary inputs, regardless of the well-formedness of data.
func FuzzDecoderBasic(f *testing.F) {
	f.Add([]byte{0xa1, 0x61, 0x61, 0x01})       // map {"a":1}
	f.Add([]byte{0x83, 0x01, 0x02, 0x03})       // array [1,2,3]
	f.Add([]byte{0x9f, 0x01, 0x02, 0xff})       // indef array [1,2]
	f.Add([]byte{0xff, 0x00, 0x01, 0x02, 0x03}) // invalid start

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("panic in Decoder fuzz: %v", r)
			}
		}()

		d := wire.NewDecoder(stream.NewMemoryBufferFromBytes(data))
		_ = d.Skip()

		d2 := wire.NewDecoder(stream.NewMemoryBufferFromBytes(data))
		_, _ = d2.Array(func(c *wire.ArrayCursor) error {
			for {
				has, err := c.HasNext()
				if err != nil || !has {
					return err
				}
				if err := d2.Skip(); err != nil {
					return err
				}
			}
		})

		d3 := wire.NewDecoder(stream.NewMemoryBufferFromBytes(data))
		_, _ = value.Decode(d3)
	})
}
