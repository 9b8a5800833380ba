package stream

import "errors"

// ErrShortRead is returned by the strict (non-"-or-default") read helpers
// when fewer bytes remain than requested.
var ErrShortRead = errors.New("stream: short read")

const minGrow = 16

// MemoryBuffer is a growable in-memory byte buffer with independent read
// and write cursors. It implements both ByteReader and ByteWriter, so a
// single MemoryBuffer can back an encoder and then be handed, unmodified,
// to a decoder. Growth doubles from a floor of 16 bytes, mirroring the
// teacher runtime's ByteBuffer.Ensure.
type MemoryBuffer struct {
	buf  []byte
	rpos int
}

// NewMemoryBuffer returns an empty buffer.
func NewMemoryBuffer() *MemoryBuffer { return &MemoryBuffer{} }

// NewMemoryBufferFromBytes returns a buffer that views b without copying.
// The read cursor starts at 0; the write cursor (len) starts at len(b), so
// writes append after the supplied contents.
func NewMemoryBufferFromBytes(b []byte) *MemoryBuffer { return &MemoryBuffer{buf: b} }

// Bytes returns the unread portion of the buffer (from the read cursor to
// the write cursor). The returned slice aliases the buffer's storage.
func (m *MemoryBuffer) Bytes() []byte { return m.buf[m.rpos:] }

// Written returns everything ever written, including bytes already read.
func (m *MemoryBuffer) Written() []byte { return m.buf }

// Reset clears both cursors and truncates length to zero; capacity is kept.
func (m *MemoryBuffer) Reset() {
	m.buf = m.buf[:0]
	m.rpos = 0
}

func (m *MemoryBuffer) ensure(n int) {
	need := len(m.buf) + n
	if cap(m.buf) >= need {
		return
	}
	c := cap(m.buf)
	if c == 0 {
		c = minGrow
	}
	for c < need {
		c <<= 1
	}
	nb := make([]byte, len(m.buf), c)
	copy(nb, m.buf)
	m.buf = nb
}

// --- ByteWriter ---

func (m *MemoryBuffer) WriteRawBE(value uint64, width int) error {
	m.ensure(width)
	old := len(m.buf)
	m.buf = m.buf[:old+width]
	putBE(m.buf[old:], value, width)
	return nil
}

func (m *MemoryBuffer) WriteRawLE(value uint64, width int) error {
	m.ensure(width)
	old := len(m.buf)
	m.buf = m.buf[:old+width]
	putLE(m.buf[old:], value, width)
	return nil
}

func (m *MemoryBuffer) WriteRaw(b []byte, start, end int) error {
	n := end - start
	m.ensure(n)
	m.buf = append(m.buf, b[start:end]...)
	return nil
}

func (m *MemoryBuffer) TotalWritten() int64 { return int64(len(m.buf)) }

// --- ByteReader ---

func (m *MemoryBuffer) CanRead(n int) bool { return len(m.buf)-m.rpos >= n }

func (m *MemoryBuffer) PeekByte() (byte, bool) {
	if m.rpos >= len(m.buf) {
		return 0, false
	}
	return m.buf[m.rpos], true
}

func (m *MemoryBuffer) SuggestAvailable() int { return len(m.buf) - m.rpos }

func (m *MemoryBuffer) ReadRawBE(width int) (uint64, error) {
	if !m.CanRead(width) {
		return 0, ErrShortRead
	}
	v := getBE(m.buf[m.rpos:], width)
	m.rpos += width
	return v, nil
}

func (m *MemoryBuffer) ReadRawLE(width int) (uint64, error) {
	if !m.CanRead(width) {
		return 0, ErrShortRead
	}
	v := getLE(m.buf[m.rpos:], width)
	m.rpos += width
	return v, nil
}

func (m *MemoryBuffer) ReadRaw(buf []byte, start, end int) (int, error) {
	n := end - start
	avail := len(m.buf) - m.rpos
	if avail < n {
		n = avail
	}
	if n < 0 {
		n = 0
	}
	copy(buf[start:start+n], m.buf[m.rpos:m.rpos+n])
	m.rpos += n
	return n, nil
}

func (m *MemoryBuffer) ReadSkip(n int) (int, error) {
	avail := len(m.buf) - m.rpos
	if avail < n {
		n = avail
	}
	m.rpos += n
	return n, nil
}

func (m *MemoryBuffer) ReadUTF8(n int) (string, bool) {
	if !m.CanRead(n) {
		return "", false
	}
	s := string(m.buf[m.rpos : m.rpos+n])
	m.rpos += n
	return s, true
}

func (m *MemoryBuffer) ReadAllAvailable() ([]byte, error) {
	out := make([]byte, len(m.buf)-m.rpos)
	copy(out, m.buf[m.rpos:])
	m.rpos = len(m.buf)
	return out, nil
}

// --- read-or-default helpers, never erroring ---

// ReadRawBEOrDefault reads a big-endian integer, returning def on short read.
func (m *MemoryBuffer) ReadRawBEOrDefault(width int, def uint64) uint64 {
	v, err := m.ReadRawBE(width)
	if err != nil {
		return def
	}
	return v
}

// ReadUTF8OrDefault reads n bytes as a string, returning def on short read.
func (m *MemoryBuffer) ReadUTF8OrDefault(n int, def string) string {
	s, ok := m.ReadUTF8(n)
	if !ok {
		return def
	}
	return s
}
