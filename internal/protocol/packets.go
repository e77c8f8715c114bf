// Package protocol implements the binary wire format shared with the gate
// and field servers: frame building and reading, the message kind catalog,
// and one typed record per message kind. All multi-byte values are
// little-endian.
package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderSize is the size of the frame header: total length (4) + kind (2).
const HeaderSize = 6

// MaxFrameSize is the default upper bound of a frame, header included.
const MaxFrameSize = 8192

// NameSize is the width of NUL-padded character name fields.
const NameSize = 32

// Frame is one complete header + payload unit.
type Frame struct {
	Kind    Kind
	Payload []byte
}

// Build creates a frame for kind with the payload copied verbatim.
// Format: [total_len:4][kind:2][payload...]
func Build(kind Kind, payload []byte) []byte {
	frame := make([]byte, HeaderSize+len(payload))
	binary.LittleEndian.PutUint32(frame[0:4], uint32(len(frame)))
	binary.LittleEndian.PutUint16(frame[4:6], uint16(kind))
	copy(frame[HeaderSize:], payload)
	return frame
}

// ReadFrame reads a single frame from r. Frames whose declared length is
// below HeaderSize or above maxSize are rejected; the stream cannot be
// resynchronised after that and the caller should drop the connection.
func ReadFrame(r io.Reader, maxSize int) (Frame, error) {
	if maxSize <= 0 {
		maxSize = MaxFrameSize
	}

	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Frame{}, fmt.Errorf("failed to read frame header: %w", err)
	}

	length := binary.LittleEndian.Uint32(header[0:4])
	kind := Kind(binary.LittleEndian.Uint16(header[4:6]))

	if length < HeaderSize {
		return Frame{}, fmt.Errorf("%w: declared length %d", ErrInvalidFrame, length)
	}
	if length > uint32(maxSize) {
		return Frame{}, fmt.Errorf("%w: %d bytes (max %d)", ErrFrameTooLarge, length, maxSize)
	}

	payload := make([]byte, length-HeaderSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Frame{}, fmt.Errorf("failed to read %s payload (%d bytes): %w", kind, len(payload), err)
	}

	return Frame{Kind: kind, Payload: payload}, nil
}

// WriteFrame writes a single frame to w.
func WriteFrame(w io.Writer, kind Kind, payload []byte) error {
	if _, err := w.Write(Build(kind, payload)); err != nil {
		return fmt.Errorf("failed to write %s frame: %w", kind, err)
	}
	return nil
}

// DecodeFrame splits an in-memory frame into kind and payload.
func DecodeFrame(data []byte) (Frame, error) {
	if len(data) < HeaderSize {
		return Frame{}, fmt.Errorf("%w: %d bytes", ErrInvalidFrame, len(data))
	}
	length := binary.LittleEndian.Uint32(data[0:4])
	if length < HeaderSize || int(length) != len(data) {
		return Frame{}, fmt.Errorf("%w: declared length %d, have %d", ErrInvalidFrame, length, len(data))
	}
	return Frame{
		Kind:    Kind(binary.LittleEndian.Uint16(data[4:6])),
		Payload: data[HeaderSize:],
	}, nil
}
