package wire

import "fmt"

// FramingError reports a stream that ended or was malformed part way through a
// frame. The connection it came from cannot be resynchronised.
type FramingError struct {
	Err error
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("framing: %s", e.Err)
}

func (e *FramingError) Unwrap() error {
	return e.Err
}

// DecodeError reports a complete frame whose payload could not be turned into
// a Message. The stream itself is still aligned on a frame boundary.
type DecodeError struct {
	Type Type
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("decoding message: %s", e.Err)
	}
	return fmt.Sprintf("decoding %s message: %s", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
