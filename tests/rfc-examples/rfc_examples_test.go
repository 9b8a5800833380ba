package tests

import (
	"encoding/hex"
	"testing"

	"github.com/nats-io/cbor-stream/runtime/stream"
	"github.com/nats-io/cbor-stream/runtime/value"
	"github.com/nats-io/cbor-stream/runtime/wire"
)

type rfcExample struct {
	name string
	diag string
	hex  string
}

var rfcExamples = []rfcExample{
	{
		name: "text-a",
		diag: "\"a\"",
		hex:  "6161",
	},
	{
		name: "zero",
		diag: "0",
		hex:  "00",
	},
	{
		name: "minus-one",
		diag: "-1",
		hex:  "20",
	},
	{
		name: "bytes-010203",
		diag: "h'010203'",
		hex:  "43010203",
	},
	{
		name: "array-1-2-3",
		diag: "[1, 2, 3]",
		hex:  "83010203",
	},
	{
		name: "map-a1-b2",
		diag: "{\"a\": 1, \"b\": 2}",
		hex:  "a2616101616202",
	},
	{
		name: "indef-array-1-2",
		diag: "[1, 2]",
		hex:  "9f0102ff",
	},
	{
		name: "tag-epoch-datetime",
		diag: "1(1363896240)",
		hex:  "c11a514b67b0",
	},
}

func TestRFCExamplesDiagAndWellFormed(t *testing.T) {
	for _, ex := range rfcExamples {
		ex := ex
		t.Run(ex.name, func(t *testing.T) {
			msg, err := hex.DecodeString(ex.hex)
			if err != nil {
				t.Fatalf("bad hex %q: %v", ex.hex, err)
			}

			buf := stream.NewMemoryBufferFromBytes(msg)
			v, err := value.Decode(wire.NewDecoder(buf))
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if len(buf.Bytes()) != 0 {
				t.Fatalf("decode leftover: %d", len(buf.Bytes()))
			}
			if got := v.String(); got != ex.diag {
				t.Fatalf("diag mismatch: got %q want %q (hex %s)", got, ex.diag, ex.hex)
			}

			buf2 := stream.NewMemoryBufferFromBytes(msg)
			if err := wire.NewDecoder(buf2).Skip(); err != nil {
				t.Fatalf("well-formed check error: %v", err)
			}
			if len(buf2.Bytes()) != 0 {
				t.Fatalf("well-formed check leftover: %d", len(buf2.Bytes()))
			}
		})
	}
}
