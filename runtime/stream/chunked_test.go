package stream

import (
	"bytes"
	"testing"
)

func TestChunkedReaderReadsAcrossRefills(t *testing.T) {
	data := bytes.Repeat([]byte{0xAA}, minChunkBuf+10)
	data[minChunkBuf+5] = 0xBB
	r := NewChunkedReader(bytes.NewReader(data))

	out, err := r.ReadAllAvailable()
	if err != nil {
		t.Fatalf("ReadAllAvailable: %v", err)
	}
	if len(out) != len(data) {
		t.Fatalf("read %d bytes, want %d", len(out), len(data))
	}
	if out[minChunkBuf+5] != 0xBB {
		t.Fatalf("byte at boundary+5 = %x, want 0xBB", out[minChunkBuf+5])
	}
}

func TestChunkedReaderPeekDoesNotConsume(t *testing.T) {
	r := NewChunkedReader(bytes.NewReader([]byte{0x01, 0x02, 0x03}))
	b, ok := r.PeekByte()
	if !ok || b != 0x01 {
		t.Fatalf("PeekByte = %x, %v; want 0x01, true", b, ok)
	}
	v, err := r.ReadRawBE(1)
	if err != nil || v != 0x01 {
		t.Fatalf("ReadRawBE after peek = %d, %v; want 1, nil", v, err)
	}
}

func TestChunkedReaderShortReadAtEOF(t *testing.T) {
	r := NewChunkedReader(bytes.NewReader([]byte{0x01}))
	if _, err := r.ReadRawBE(4); err != ErrShortRead {
		t.Fatalf("ReadRawBE past EOF = %v, want ErrShortRead", err)
	}
}

func TestIOWriterSinkForwardsAndTracksTotal(t *testing.T) {
	var buf bytes.Buffer
	w := NewIOWriterSink(&buf)
	if err := w.WriteRawBE(0x0102, 2); err != nil {
		t.Fatalf("WriteRawBE: %v", err)
	}
	if err := w.WriteRaw([]byte("ab"), 0, 2); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}
	if w.TotalWritten() != 4 {
		t.Fatalf("TotalWritten = %d, want 4", w.TotalWritten())
	}
	if got := buf.Bytes(); !bytes.Equal(got, []byte{0x01, 0x02, 'a', 'b'}) {
		t.Fatalf("written bytes = %x, want 0102 6162", got)
	}
}
