package stream

import "testing"

func TestMemoryBufferWriteRead(t *testing.T) {
	b := NewMemoryBuffer()
	if err := b.WriteRawBE(0x0102, 2); err != nil {
		t.Fatalf("WriteRawBE: %v", err)
	}
	if err := b.WriteRaw([]byte("hi"), 0, 2); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}
	if got := b.Written(); len(got) != 4 {
		t.Fatalf("Written() length = %d, want 4", len(got))
	}

	v, err := b.ReadRawBE(2)
	if err != nil || v != 0x0102 {
		t.Fatalf("ReadRawBE = %d, %v; want 0x0102, nil", v, err)
	}
	s, ok := b.ReadUTF8(2)
	if !ok || s != "hi" {
		t.Fatalf("ReadUTF8 = %q, %v; want hi, true", s, ok)
	}
}

func TestMemoryBufferPeekByte(t *testing.T) {
	b := NewMemoryBufferFromBytes([]byte{0xAB, 0xCD})
	got, ok := b.PeekByte()
	if !ok || got != 0xAB {
		t.Fatalf("PeekByte = %x, %v; want 0xAB, true", got, ok)
	}
	// Peeking must not consume.
	got2, ok2 := b.PeekByte()
	if !ok2 || got2 != 0xAB {
		t.Fatalf("second PeekByte = %x, %v; want 0xAB, true (peek must not consume)", got2, ok2)
	}
	if _, err := b.ReadRawBE(1); err != nil {
		t.Fatalf("ReadRawBE: %v", err)
	}
	got3, ok3 := b.PeekByte()
	if !ok3 || got3 != 0xCD {
		t.Fatalf("PeekByte after consume = %x, %v; want 0xCD, true", got3, ok3)
	}
}

func TestMemoryBufferPeekByteAtEOF(t *testing.T) {
	b := NewMemoryBufferFromBytes(nil)
	if _, ok := b.PeekByte(); ok {
		t.Fatalf("PeekByte on empty buffer reported ok")
	}
}

func TestMemoryBufferShortRead(t *testing.T) {
	b := NewMemoryBufferFromBytes([]byte{0x01})
	if _, err := b.ReadRawBE(4); err != ErrShortRead {
		t.Fatalf("ReadRawBE past end = %v, want ErrShortRead", err)
	}
}

func TestMemoryBufferReadAllAvailable(t *testing.T) {
	b := NewMemoryBufferFromBytes([]byte("payload"))
	out, err := b.ReadAllAvailable()
	if err != nil {
		t.Fatalf("ReadAllAvailable: %v", err)
	}
	if string(out) != "payload" {
		t.Fatalf("ReadAllAvailable = %q, want payload", out)
	}
	if b.CanRead(1) {
		t.Fatalf("buffer reports bytes available after ReadAllAvailable")
	}
}

func TestMemoryBufferGrowth(t *testing.T) {
	b := NewMemoryBuffer()
	for i := 0; i < 100; i++ {
		if err := b.WriteRaw([]byte{byte(i)}, 0, 1); err != nil {
			t.Fatalf("WriteRaw at i=%d: %v", i, err)
		}
	}
	if got := len(b.Written()); got != 100 {
		t.Fatalf("Written() length = %d, want 100", got)
	}
	for i := 0; i < 100; i++ {
		v, err := b.ReadRawBE(1)
		if err != nil || v != uint64(byte(i)) {
			t.Fatalf("byte %d = %d, %v; want %d, nil", i, v, err, byte(i))
		}
	}
}
