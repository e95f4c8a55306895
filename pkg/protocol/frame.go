package protocol

import (
	stderrors "errors"
	"fmt"

	"github.com/vango-dev/reconcile/internal/errors"
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FramePatch FrameType = 0x02 // Server to client journal
	FrameError FrameType = 0x05 // Error message
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FramePatch:
		return "Patch"
	case FrameError:
		return "Error"
	default:
		return fmt.Sprintf("FrameType(0x%02x)", uint8(ft))
	}
}

// ErrInvalidFrameType is returned for an unknown frame type byte.
var ErrInvalidFrameType = stderrors.New("protocol: invalid frame type")

// Frame is a typed payload.
type Frame struct {
	Type    FrameType
	Payload []byte
}

// Encode returns the wire form of f.
func (f *Frame) Encode() []byte {
	e := &Encoder{buf: make([]byte, 0, len(f.Payload)+6)}
	e.WriteByte(byte(f.Type))
	e.WriteLenBytes(f.Payload)
	return e.Bytes()
}

// DecodeFrame parses a frame. The payload aliases data.
func DecodeFrame(data []byte) (*Frame, error) {
	d := NewDecoder(data)
	t, err := d.ReadByte()
	if err != nil {
		return nil, malformed(err)
	}
	switch FrameType(t) {
	case FramePatch, FrameError:
	default:
		return nil, malformed(fmt.Errorf("%w: 0x%02x", ErrInvalidFrameType, t))
	}
	payload, err := d.ReadLenBytes()
	if err != nil {
		return nil, malformed(err)
	}
	if !d.EOF() {
		return nil, malformed(fmt.Errorf("%d trailing bytes", d.Remaining()))
	}
	return &Frame{Type: FrameType(t), Payload: payload}, nil
}

// EncodeError returns an error frame carrying code and message.
func EncodeError(code, message string) []byte {
	e := NewEncoder()
	e.WriteString(code)
	e.WriteString(message)
	f := Frame{Type: FrameError, Payload: e.Bytes()}
	return f.Encode()
}

// DecodeError reads the payload of an error frame.
func DecodeError(payload []byte) (code, message string, err error) {
	d := NewDecoder(payload)
	if code, err = d.ReadString(); err != nil {
		return "", "", malformed(err)
	}
	if message, err = d.ReadString(); err != nil {
		return "", "", malformed(err)
	}
	return code, message, nil
}

func malformed(err error) error {
	return errors.New("E303").Wrap(err)
}
