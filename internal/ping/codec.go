package ping

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
)

var (
	errVarIntTooBig        = errors.New("varint is too big")
	errInvalidPacketLength = errors.New("invalid packet length")
)

// maxStatusLength caps the status JSON a server may send us.
const maxStatusLength = 1 << 21

func appendVarInt(buf []byte, v int32) []byte {
	u := uint32(v)
	for {
		if u&^0x7F == 0 {
			return append(buf, byte(u))
		}
		buf = append(buf, byte(u&0x7F|0x80))
		u >>= 7
	}
}

func readVarInt(r io.ByteReader) (int32, error) {
	var result uint32
	for i := 0; i < 5; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		// The fifth byte only has room for the top four bits of an int32.
		if i == 4 && b&0x70 != 0 {
			return 0, errVarIntTooBig
		}
		result |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return int32(result), nil
		}
	}
	return 0, errVarIntTooBig
}

func appendString(buf []byte, s string) []byte {
	buf = appendVarInt(buf, int32(len(s)))
	return append(buf, s...)
}

// framePacket prefixes a packet id and body with its VarInt length.
func framePacket(id int32, body []byte) []byte {
	payload := appendVarInt(nil, id)
	payload = append(payload, body...)
	out := appendVarInt(nil, int32(len(payload)))
	return append(out, payload...)
}

// readPacket reads one length-prefixed packet and returns its id and body.
func readPacket(r *bufio.Reader) (int32, []byte, error) {
	length, err := readVarInt(r)
	if err != nil {
		return 0, nil, err
	}
	if length <= 0 || length > maxStatusLength {
		return 0, nil, errInvalidPacketLength
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, nil, err
	}
	br := &sliceReader{b: body}
	id, err := readVarInt(br)
	if err != nil {
		return 0, nil, err
	}
	return id, body[br.off:], nil
}

type sliceReader struct {
	b   []byte
	off int
}

func (s *sliceReader) ReadByte() (byte, error) {
	if s.off >= len(s.b) {
		return 0, io.ErrUnexpectedEOF
	}
	b := s.b[s.off]
	s.off++
	return b, nil
}

func appendUint16(buf []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(buf, v)
}

func appendInt64(buf []byte, v int64) []byte {
	return binary.BigEndian.AppendUint64(buf, uint64(v))
}
