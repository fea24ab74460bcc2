package packet

import "github.com/danmuck/wirebuf/internal/protocol/bytebuf"

// Packet is one wire message: an opcode and its body buffer.
type Packet struct {
	Opcode uint32
	*bytebuf.Buffer
}

func New(opcode uint32) *Packet {
	return &Packet{Opcode: opcode, Buffer: bytebuf.New()}
}

func NewWithCapacity(opcode uint32, n int) *Packet {
	return &Packet{Opcode: opcode, Buffer: bytebuf.NewWithCapacity(n)}
}

// FromBytes wraps a copy of raw, positioned for reading.
func FromBytes(opcode uint32, raw []byte) *Packet {
	return &Packet{Opcode: opcode, Buffer: bytebuf.FromBytes(raw)}
}

// Clone returns an independent copy safe to mutate or hand to another goroutine.
func (p *Packet) Clone() *Packet {
	return &Packet{Opcode: p.Opcode, Buffer: p.Buffer.Clone()}
}
