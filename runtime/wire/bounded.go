package wire

import "github.com/nats-io/cbor-stream/runtime/stream"

// boundedReader presents a fixed-length window of a parent ByteReader as its
// own ByteReader, so a definite-length blob's payload can be handed to a
// callback without that callback being able to read past the blob's bounds.
type boundedReader struct {
	parent    stream.ByteReader
	remaining int64
}

func (b *boundedReader) CanRead(n int) bool {
	return int64(n) <= b.remaining && b.parent.CanRead(n)
}

func (b *boundedReader) PeekByte() (byte, bool) {
	if b.remaining == 0 {
		return 0, false
	}
	return b.parent.PeekByte()
}

func (b *boundedReader) SuggestAvailable() int {
	n := b.parent.SuggestAvailable()
	if int64(n) > b.remaining {
		return int(b.remaining)
	}
	return n
}

func (b *boundedReader) ReadRawBE(width int) (uint64, error) {
	if int64(width) > b.remaining {
		return 0, stream.ErrShortRead
	}
	v, err := b.parent.ReadRawBE(width)
	if err == nil {
		b.remaining -= int64(width)
	}
	return v, err
}

func (b *boundedReader) ReadRawLE(width int) (uint64, error) {
	if int64(width) > b.remaining {
		return 0, stream.ErrShortRead
	}
	v, err := b.parent.ReadRawLE(width)
	if err == nil {
		b.remaining -= int64(width)
	}
	return v, err
}

func (b *boundedReader) ReadRaw(buf []byte, start, end int) (int, error) {
	want := end - start
	if int64(want) > b.remaining {
		want = int(b.remaining)
	}
	n, err := b.parent.ReadRaw(buf, start, start+want)
	b.remaining -= int64(n)
	return n, err
}

func (b *boundedReader) ReadSkip(n int) (int, error) {
	if int64(n) > b.remaining {
		n = int(b.remaining)
	}
	got, err := b.parent.ReadSkip(n)
	b.remaining -= int64(got)
	return got, err
}

func (b *boundedReader) ReadUTF8(n int) (string, bool) {
	if int64(n) > b.remaining {
		return "", false
	}
	s, ok := b.parent.ReadUTF8(n)
	if ok {
		b.remaining -= int64(n)
	}
	return s, ok
}

func (b *boundedReader) ReadAllAvailable() ([]byte, error) {
	buf := make([]byte, b.remaining)
	n, err := b.parent.ReadRaw(buf, 0, len(buf))
	b.remaining -= int64(n)
	return buf[:n], err
}

// drain discards whatever is left unread in the bounded window.
func (b *boundedReader) drain() error {
	if b.remaining <= 0 {
		return nil
	}
	_, err := b.parent.ReadSkip(int(b.remaining))
	b.remaining = 0
	return err
}

// chunkBlobReader presents a sequence of definite blob chunks, read lazily
// from the owning Decoder and terminated by a break byte, as a single
// seamless ByteReader. It is the indefinite-length counterpart of
// boundedReader.
type chunkBlobReader struct {
	d     *Decoder
	cur   *boundedReader
	done  bool
	total int64
}

// advance ensures cur refers to a chunk with unread bytes, or sets done when
// the terminating break has been consumed.
func (c *chunkBlobReader) advance() error {
	for !c.done && (c.cur == nil || c.cur.remaining == 0) {
		c.cur = nil
		h, err := c.d.readHeaderChecked()
		if err != nil {
			return err
		}
		if h.Kind == KindBreak {
			c.done = true
			return nil
		}
		if h.Kind != KindBlob {
			return c.d.fail(newDecodeException("expected definite blob chunk inside indefinite blob, got " + h.Kind.String()))
		}
		c.cur = &boundedReader{parent: c.d.r, remaining: int64(h.Arg)}
		c.total += int64(h.Arg)
	}
	return nil
}

func (c *chunkBlobReader) CanRead(n int) bool {
	if err := c.advance(); err != nil || c.done {
		return false
	}
	return c.cur.CanRead(n)
}

func (c *chunkBlobReader) PeekByte() (byte, bool) {
	if err := c.advance(); err != nil || c.done {
		return 0, false
	}
	return c.cur.PeekByte()
}

func (c *chunkBlobReader) SuggestAvailable() int {
	if err := c.advance(); err != nil || c.done {
		return 0
	}
	return c.cur.SuggestAvailable()
}

func (c *chunkBlobReader) ReadRawBE(width int) (uint64, error) {
	if err := c.advance(); err != nil {
		return 0, err
	}
	if c.done {
		return 0, stream.ErrShortRead
	}
	return c.cur.ReadRawBE(width)
}

func (c *chunkBlobReader) ReadRawLE(width int) (uint64, error) {
	if err := c.advance(); err != nil {
		return 0, err
	}
	if c.done {
		return 0, stream.ErrShortRead
	}
	return c.cur.ReadRawLE(width)
}

func (c *chunkBlobReader) ReadRaw(buf []byte, start, end int) (int, error) {
	total := 0
	for start < end {
		if err := c.advance(); err != nil {
			return total, err
		}
		if c.done {
			return total, nil
		}
		n, err := c.cur.ReadRaw(buf, start, end)
		total += n
		start += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

func (c *chunkBlobReader) ReadSkip(n int) (int, error) {
	skipped := 0
	for skipped < n {
		if err := c.advance(); err != nil {
			return skipped, err
		}
		if c.done {
			return skipped, nil
		}
		got, err := c.cur.ReadSkip(n - skipped)
		skipped += got
		if err != nil {
			return skipped, err
		}
		if got == 0 {
			break
		}
	}
	return skipped, nil
}

func (c *chunkBlobReader) ReadUTF8(n int) (string, bool) {
	buf := make([]byte, n)
	got, err := c.ReadRaw(buf, 0, n)
	if err != nil || got != n {
		return "", false
	}
	return string(buf), true
}

func (c *chunkBlobReader) ReadAllAvailable() ([]byte, error) {
	var out []byte
	for {
		if err := c.advance(); err != nil {
			return out, err
		}
		if c.done {
			return out, nil
		}
		chunk, err := c.cur.ReadAllAvailable()
		out = append(out, chunk...)
		if err != nil {
			return out, err
		}
	}
}

// drainRemaining discards any chunks the callback did not consume, through
// the terminating break.
func (c *chunkBlobReader) drainRemaining() error {
	for !c.done {
		if err := c.advance(); err != nil {
			return err
		}
		if c.done {
			return nil
		}
		if err := c.cur.drain(); err != nil {
			return err
		}
	}
	return nil
}
