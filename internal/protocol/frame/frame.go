package frame

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// Wire format:
//   [OpCode:4B little-endian][PayloadLen:4B little-endian][PayloadLen bytes of payload]
//
// The payload is opaque bytes at this layer; in practice it carries UTF-8
// JSON text.

// OpCode tags the purpose of one frame.
type OpCode uint32

const (
	OpHandshake OpCode = 0
	OpMessage   OpCode = 1
	OpClose     OpCode = 2
)

// HeaderLen is the number of bytes before the payload.
const HeaderLen = 8

var (
	ErrPayloadTooLarge = errors.New("frame: payload exceeds u32 length field")
	ErrShortHeader     = errors.New("frame: short header")
	ErrShortPayload    = errors.New("frame: short payload")
)

// Frame is one complete wire message.
type Frame struct {
	Op      OpCode
	Payload []byte
}

// Encode renders f as header plus payload bytes.
func Encode(f Frame) ([]byte, error) {
	if uint64(len(f.Payload)) > math.MaxUint32 {
		return nil, ErrPayloadTooLarge
	}
	buf := make([]byte, HeaderLen+len(f.Payload))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(f.Op))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(f.Payload)))
	copy(buf[HeaderLen:], f.Payload)
	return buf, nil
}

// Write encodes f and writes it to w in one call.
func Write(w io.Writer, f Frame) error {
	buf, err := Encode(f)
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return err
	}
	return nil
}

// Read consumes exactly one frame from r: 8 header bytes, then exactly the
// declared payload length. Bytes past the frame boundary are left unread.
func Read(r io.Reader) (Frame, error) {
	var header [HeaderLen]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, ErrShortHeader
		}
		return Frame{}, err
	}

	op := OpCode(binary.LittleEndian.Uint32(header[0:4]))
	payloadLen := binary.LittleEndian.Uint32(header[4:8])

	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return Frame{}, ErrShortPayload
			}
			return Frame{}, err
		}
	}

	return Frame{Op: op, Payload: payload}, nil
}
