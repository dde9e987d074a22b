package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// HeaderSize is the length of the big-endian payload length prefix.
	HeaderSize = 4

	// MaxFrameSize bounds a single payload. A full 20x20 snapshot with a
	// handful of players is a few kilobytes.
	MaxFrameSize = 1 << 20
)

// WriteFrame writes payload to w prefixed by its length.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("payload of %d bytes exceeds max frame size %d", len(payload), MaxFrameSize)
	}

	buf := make([]byte, HeaderSize+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[HeaderSize:], payload)

	_, err := w.Write(buf)
	return err
}

// ReadFrame blocks until one whole frame has been read from r and returns its
// payload. Short reads are retried until the frame is complete.
//
// io.EOF is returned unwrapped when r ends cleanly between frames. A stream that
// ends inside a frame yields a *FramingError. Any other read error is returned
// as is.
func ReadFrame(r io.Reader) ([]byte, error) {
	var hdr [HeaderSize]byte
	_, err := io.ReadFull(r, hdr[:])
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &FramingError{Err: fmt.Errorf("reading length prefix: %w", err)}
		}
		return nil, err
	}

	n := binary.BigEndian.Uint32(hdr[:])
	if n > MaxFrameSize {
		return nil, &FramingError{Err: fmt.Errorf("frame length %d exceeds max %d", n, MaxFrameSize)}
	}

	payload := make([]byte, n)
	_, err = io.ReadFull(r, payload)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &FramingError{Err: fmt.Errorf("reading %d byte payload: %w", n, io.ErrUnexpectedEOF)}
		}
		return nil, err
	}

	return payload, nil
}
