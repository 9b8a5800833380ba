package tests

import (
	"testing"

	"github.com/nats-io/cbor-stream/runtime/stream"
	"github.com/nats-io/cbor-stream/runtime/wire"
)

// FuzzCBORSequences fuzzes sequence walking to ensure repeatedly skipping
// top-level items off an arbitrary byte stream never panics, even when the
// stream is not a well-formed sequence.
func FuzzCBORSequences(f *testing.F) {
	buf := stream.NewMemoryBuffer()
	e := wire.NewEncoder(buf)
	_ = e.String("hi")
	_ = e.Int(42)
	f.Add(buf.Written())

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("panic in sequence fuzz: %v", r)
			}
		}()

		buf := stream.NewMemoryBufferFromBytes(data)
		d := wire.NewDecoder(buf)
		for len(buf.Bytes()) > 0 {
			if err := d.Skip(); err != nil {
				return
			}
		}
	})
}
