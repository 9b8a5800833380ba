// Package stream provides the byte-stream capability abstraction that the
// CBOR state machines in runtime/wire are built on: polymorphic
// little-/big-endian integer reads and writes, raw byte transfer, and a
// UTF-8 slice helper, independent of whatever concrete source or sink
// (memory, file, socket) backs the stream.
//
// ByteReader and ByteWriter are the two capabilities. ByteReader
// implementations never panic on short input; every read either succeeds,
// reports a short read, or (for the "read-or-default" family) returns a
// caller-supplied default.
package stream

import "encoding/binary"

// ByteWriter is the write-side byte-stream capability. All operations are
// infallible given sufficient sink capacity; MemoryBuffer always has
// sufficient capacity (it grows), so its methods never fail.
type ByteWriter interface {
	// WriteRawBE writes the low width bytes of value in big-endian order.
	// width must be in 1..8.
	WriteRawBE(value uint64, width int) error
	// WriteRawLE writes the low width bytes of value in little-endian order.
	WriteRawLE(value uint64, width int) error
	// WriteRaw writes b[start:end] verbatim.
	WriteRaw(b []byte, start, end int) error
	// TotalWritten returns the monotonically increasing count of bytes
	// written so far through this writer. Callers (the encoder) use this
	// to validate that a sized callback wrote exactly what it declared.
	TotalWritten() int64
}

// ByteReader is the read-side byte-stream capability.
type ByteReader interface {
	// CanRead reports whether at least n more bytes are available. A reader
	// backed by an I/O source may read from it to answer.
	CanRead(n int) bool
	// PeekByte returns the next byte without consuming it. ok is false
	// when no more bytes are available (EOF or short read).
	PeekByte() (b byte, ok bool)
	// SuggestAvailable hints at how many bytes can be read in one bulk
	// operation without a refill. It may under-report (even return 0)
	// when more data is reachable via I/O; it never over-reports.
	SuggestAvailable() int
	// ReadRawBE reads width bytes (1..8) and interprets them big-endian.
	ReadRawBE(width int) (uint64, error)
	// ReadRawLE reads width bytes (1..8) and interprets them little-endian.
	ReadRawLE(width int) (uint64, error)
	// ReadRaw reads into buf[start:end] and returns the number of bytes
	// actually read. A short read (less than end-start) signals EOF; it is
	// not itself an error.
	ReadRaw(buf []byte, start, end int) (int, error)
	// ReadSkip discards up to n bytes and returns how many were skipped.
	ReadSkip(n int) (int, error)
	// ReadUTF8 reads exactly n bytes and returns them as a string. It
	// returns ok=false (not an error) on a short read.
	ReadUTF8(n int) (s string, ok bool)
	// ReadAllAvailable drains the reader to EOF and returns everything
	// read, concatenated. It is used by diagnostics and tests, not by the
	// hot decode path.
	ReadAllAvailable() ([]byte, error)
}

// putBE writes width low bytes of v into b[:width] big-endian.
func putBE(b []byte, v uint64, width int) {
	switch width {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.BigEndian.PutUint16(b, uint16(v))
	case 4:
		binary.BigEndian.PutUint32(b, uint32(v))
	case 8:
		binary.BigEndian.PutUint64(b, v)
	default:
		for i := 0; i < width; i++ {
			shift := uint(8 * (width - 1 - i))
			b[i] = byte(v >> shift)
		}
	}
}

// putLE writes width low bytes of v into b[:width] little-endian.
func putLE(b []byte, v uint64, width int) {
	switch width {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(b, v)
	default:
		for i := 0; i < width; i++ {
			b[i] = byte(v >> uint(8*i))
		}
	}
}

func getBE(b []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.BigEndian.Uint16(b))
	case 4:
		return uint64(binary.BigEndian.Uint32(b))
	case 8:
		return binary.BigEndian.Uint64(b)
	default:
		var v uint64
		for i := 0; i < width; i++ {
			v = (v << 8) | uint64(b[i])
		}
		return v
	}
}

func getLE(b []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		return binary.LittleEndian.Uint64(b)
	default:
		var v uint64
		for i := width - 1; i >= 0; i-- {
			v = (v << 8) | uint64(b[i])
		}
		return v
	}
}
