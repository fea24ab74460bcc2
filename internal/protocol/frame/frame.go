package frame

import (
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/wirebuf/internal/protocol/bytebuf"
	"github.com/danmuck/wirebuf/internal/protocol/packet"
)

// HeaderLen is the size of the capture header: opcode then body size, both
// little-endian uint32.
const HeaderLen = 8

var (
	ErrShortHeader  = errors.New("frame: short header")
	ErrShortBody    = errors.New("frame: body shorter than header size")
	ErrBodyTooLarge = errors.New("frame: body too large")
)

// Header precedes every packet body in a capture stream.
type Header struct {
	Opcode uint32
	Size   uint32
}

// Limits constrains frame decode/encode memory use.
type Limits struct {
	MaxBodyBytes uint32
}

func DefaultLimits() Limits {
	return Limits{MaxBodyBytes: bytebuf.MaxSize - 1}
}

// ReadPacket reads one framed packet. A stream that ends cleanly on a frame
// boundary returns io.EOF.
func ReadPacket(r io.Reader, limits Limits) (*packet.Packet, error) {
	var fixed [HeaderLen]byte
	n, err := io.ReadFull(r, fixed[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortHeader
		}
		return nil, err
	}

	h, err := DecodeHeader(fixed[:])
	if err != nil {
		return nil, err
	}
	if h.Size > limits.MaxBodyBytes {
		return nil, fmt.Errorf("%w: %d > %d", ErrBodyTooLarge, h.Size, limits.MaxBodyBytes)
	}

	// The body grows as bytes arrive; a lying header cannot reserve its
	// claimed size up front.
	p := packet.New(h.Opcode)
	if h.Size > 0 {
		if _, err := io.CopyN(p, r, int64(h.Size)); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, ErrShortBody
			}
			return nil, err
		}
	}
	return p, nil
}

// WritePacket frames p's content. Pending bits are not part of the body.
func WritePacket(w io.Writer, p *packet.Packet, limits Limits) error {
	if uint64(p.Size()) > uint64(limits.MaxBodyBytes) {
		return fmt.Errorf("%w: %d > %d", ErrBodyTooLarge, p.Size(), limits.MaxBodyBytes)
	}
	hb := EncodeHeader(Header{Opcode: p.Opcode, Size: uint32(p.Size())})
	if _, err := w.Write(hb); err != nil {
		return err
	}
	if p.Size() > 0 {
		if _, err := w.Write(p.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func EncodeHeader(h Header) []byte {
	b := bytebuf.NewWithCapacity(HeaderLen)
	b.WriteUint32(h.Opcode)
	b.WriteUint32(h.Size)
	return b.Bytes()
}

func DecodeHeader(raw []byte) (Header, error) {
	if len(raw) != HeaderLen {
		return Header{}, fmt.Errorf("frame: invalid header length: %d", len(raw))
	}
	b := bytebuf.FromBytes(raw)
	opcode, err := b.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	size, err := b.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	return Header{Opcode: opcode, Size: size}, nil
}
