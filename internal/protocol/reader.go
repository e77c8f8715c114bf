package protocol

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Reader decodes little-endian fields from a payload. The first failure is
// sticky: every later read returns a zero value and Err reports the failure.
type Reader struct {
	data   []byte
	off    int
	err    error
	errOff int
}

// NewReader creates a Reader over payload.
func NewReader(payload []byte) *Reader {
	return &Reader{data: payload}
}

// Err returns ErrTruncated or ErrInvalidEncoding after a failed read.
func (r *Reader) Err() error {
	return r.err
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Offset returns the current read position, or the failing position after an error.
func (r *Reader) Offset() int {
	if r.err != nil {
		return r.errOff
	}
	return r.off
}

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
		r.errOff = r.off
	}
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.Remaining() < n {
		r.fail(ErrTruncated)
		return nil
	}
	p := r.data[r.off : r.off+n]
	r.off += n
	return p
}

func (r *Reader) Uint8() uint8 {
	p := r.take(1)
	if p == nil {
		return 0
	}
	return p[0]
}

// Bool reads one byte; any non-zero value is true.
func (r *Reader) Bool() bool {
	return r.Uint8() != 0
}

func (r *Reader) Uint16() uint16 {
	p := r.take(2)
	if p == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(p)
}

func (r *Reader) Uint32() uint32 {
	p := r.take(4)
	if p == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(p)
}

func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

func (r *Reader) Uint64() uint64 {
	p := r.take(8)
	if p == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(p)
}

func (r *Reader) Int64() int64 {
	return int64(r.Uint64())
}

func (r *Reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

func (r *Reader) Vec3() Vec3 {
	return Vec3{X: r.Float32(), Y: r.Float32(), Z: r.Float32()}
}

// String reads a 1-byte length followed by that many UTF-8 bytes.
func (r *Reader) String() string {
	n := int(r.Uint8())
	start := r.off
	p := r.take(n)
	if p == nil {
		return ""
	}
	if !utf8.Valid(p) {
		r.off = start
		r.fail(ErrInvalidEncoding)
		return ""
	}
	return string(p)
}

// FixedString reads a NUL-padded window of size bytes. Only the bytes
// before the first NUL are decoded; anything after the terminator is ignored.
func (r *Reader) FixedString(size int) string {
	start := r.off
	p := r.take(size)
	if p == nil {
		return ""
	}
	if i := bytes.IndexByte(p, 0); i >= 0 {
		p = p[:i]
	}
	if !utf8.Valid(p) {
		r.off = start
		r.fail(ErrInvalidEncoding)
		return ""
	}
	return string(p)
}

// Count reads a 1-byte list count.
func (r *Reader) Count() int {
	return int(r.Uint8())
}
