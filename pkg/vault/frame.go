package vault

import (
	"encoding/binary"
	"fmt"

	"github.com/pwkeep/pwkeep/pkg/crypto"
)

// frameHeaderSize is the fixed prefix of every frame:
// salt(22) || nonce(12) || ciphertext length(4, big-endian).
const frameHeaderSize = crypto.SaltLength + crypto.NonceLength + 4

// Frame is the persisted unit of the record log. A backing file is a bare
// concatenation of frames with no outer header, version tag, or checksum;
// the embedded length field is what makes sequential parsing possible.
type Frame struct {
	Salt       []byte // 22-byte KDF salt
	Nonce      []byte // 12-byte GCM-SIV nonce
	Ciphertext []byte // sealed payload including the authentication tag
}

// encodedLen returns the serialized size of the frame in bytes.
func (f Frame) encodedLen() int {
	return frameHeaderSize + len(f.Ciphertext)
}

// Encode serializes the frame as salt || nonce || be_u32(len) || ciphertext.
func (f Frame) Encode() []byte {
	buf := make([]byte, 0, f.encodedLen())
	buf = append(buf, f.Salt...)
	buf = append(buf, f.Nonce...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(f.Ciphertext)))
	buf = append(buf, f.Ciphertext...)
	return buf
}

// decodeFrame parses one frame from the front of buf and returns the
// unconsumed remainder for continued sequential parsing. A buffer shorter
// than the fixed header, or a length field claiming more bytes than
// remain, fails with ErrFrameCorrupt rather than reading out of bounds.
func decodeFrame(buf []byte) (Frame, []byte, error) {
	if len(buf) < frameHeaderSize {
		return Frame{}, nil, fmt.Errorf("%w: truncated frame header", ErrFrameCorrupt)
	}

	salt := buf[:crypto.SaltLength]
	nonce := buf[crypto.SaltLength : crypto.SaltLength+crypto.NonceLength]
	ctLen := binary.BigEndian.Uint32(buf[crypto.SaltLength+crypto.NonceLength : frameHeaderSize])

	rest := buf[frameHeaderSize:]
	if uint64(ctLen) > uint64(len(rest)) {
		return Frame{}, nil, fmt.Errorf("%w: frame length exceeds remaining bytes", ErrFrameCorrupt)
	}

	f := Frame{
		Salt:       append([]byte(nil), salt...),
		Nonce:      append([]byte(nil), nonce...),
		Ciphertext: append([]byte(nil), rest[:ctLen]...),
	}
	return f, rest[ctLen:], nil
}
