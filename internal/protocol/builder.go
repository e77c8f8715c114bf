package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// PacketBuilder constructs message payloads for sending to the gate and field servers.
type PacketBuilder struct {
	buf bytes.Buffer
}

// NewPacketBuilder creates a new PacketBuilder.
func NewPacketBuilder() *PacketBuilder {
	return &PacketBuilder{}
}

// Reset clears the builder for reuse.
func (b *PacketBuilder) Reset() {
	b.buf.Reset()
}

func (b *PacketBuilder) WriteUint8(v uint8) *PacketBuilder {
	b.buf.WriteByte(v)
	return b
}

// WriteBool writes 1 for true, 0 for false.
func (b *PacketBuilder) WriteBool(v bool) *PacketBuilder {
	if v {
		return b.WriteUint8(1)
	}
	return b.WriteUint8(0)
}

func (b *PacketBuilder) WriteUint16(v uint16) *PacketBuilder {
	binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *PacketBuilder) WriteUint32(v uint32) *PacketBuilder {
	binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *PacketBuilder) WriteInt32(v int32) *PacketBuilder {
	binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *PacketBuilder) WriteUint64(v uint64) *PacketBuilder {
	binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *PacketBuilder) WriteInt64(v int64) *PacketBuilder {
	binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *PacketBuilder) WriteFloat32(v float32) *PacketBuilder {
	binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

// WriteVec3 writes x, y, z as three float32 values.
func (b *PacketBuilder) WriteVec3(v Vec3) *PacketBuilder {
	return b.WriteFloat32(v.X).WriteFloat32(v.Y).WriteFloat32(v.Z)
}

// WriteString writes a length-prefixed UTF-8 string.
// Format: [length:1][string bytes...]
// Strings longer than 255 bytes are cut at the last rune boundary that fits.
func (b *PacketBuilder) WriteString(s string) *PacketBuilder {
	s = truncateUTF8(s, 255)
	b.buf.WriteByte(byte(len(s)))
	b.buf.WriteString(s)
	return b
}

// WriteFixedString writes s into a NUL-padded window of exactly size bytes.
func (b *PacketBuilder) WriteFixedString(s string, size int) *PacketBuilder {
	s = truncateUTF8(s, size)
	b.buf.WriteString(s)
	for i := len(s); i < size; i++ {
		b.buf.WriteByte(0)
	}
	return b
}

// WriteCount writes a 1-byte list count and returns how many entries the
// caller must write after it (at most 255).
func (b *PacketBuilder) WriteCount(n int) int {
	if n > 255 {
		n = 255
	}
	b.buf.WriteByte(byte(n))
	return n
}

// WriteBytes writes raw bytes.
func (b *PacketBuilder) WriteBytes(data []byte) *PacketBuilder {
	b.buf.Write(data)
	return b
}

// Bytes returns the payload built so far.
func (b *PacketBuilder) Bytes() []byte {
	return b.buf.Bytes()
}

// Frame returns the payload wrapped in a frame header for kind.
func (b *PacketBuilder) Frame(kind Kind) []byte {
	return Build(kind, b.buf.Bytes())
}

// Len returns the current size of the payload being built.
func (b *PacketBuilder) Len() int {
	return b.buf.Len()
}

// String returns a hex dump of the current payload for debugging.
func (b *PacketBuilder) String() string {
	data := b.buf.Bytes()
	return fmt.Sprintf("PacketBuilder[%d bytes]: %x", len(data), data)
}

func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
