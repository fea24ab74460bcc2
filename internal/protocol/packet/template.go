package packet

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/danmuck/wirebuf/internal/protocol/bytebuf"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownSlot   = errors.New("packet: unknown slot")
	ErrDuplicateSlot = errors.New("packet: duplicate slot")
	ErrSlotWidth     = errors.New("packet: unsupported slot width")
	ErrSlotOverflow  = errors.New("packet: value does not fit slot")
	ErrBuilt         = errors.New("packet: template already built")
)

// Slot is a placeholder written while building a template, patched per copy.
type Slot struct {
	Name   string
	Offset int
	Width  int
}

// Builder assembles a template. Writes go to Packet(); MarkSlot reserves a
// patchable placeholder at the current write cursor.
type Builder struct {
	pkt   *Packet
	slots map[string]Slot
	built bool
}

func NewBuilder(opcode uint32) *Builder {
	return &Builder{pkt: New(opcode), slots: make(map[string]Slot)}
}

// Packet exposes the packet under construction.
func (b *Builder) Packet() *Packet {
	return b.pkt
}

// MarkSlot flushes pending bits and writes width zero bytes to be patched
// later. width must be 1, 2, 4 or 8.
func (b *Builder) MarkSlot(name string, width int) (Slot, error) {
	if b.built {
		return Slot{}, ErrBuilt
	}
	key := strings.TrimSpace(name)
	if key == "" {
		return Slot{}, fmt.Errorf("%w: empty name", ErrUnknownSlot)
	}
	if _, exists := b.slots[key]; exists {
		return Slot{}, fmt.Errorf("%w: %s", ErrDuplicateSlot, key)
	}
	switch width {
	case 1, 2, 4, 8:
	default:
		return Slot{}, fmt.Errorf("%w: %d", ErrSlotWidth, width)
	}
	b.pkt.FlushBits()
	slot := Slot{Name: key, Offset: b.pkt.WritePos(), Width: width}
	if err := b.pkt.Append(make([]byte, width)); err != nil {
		return Slot{}, err
	}
	b.slots[key] = slot
	return slot, nil
}

// Build flushes pending bits and freezes the template. The template owns a
// copy of the packet, so later writes through Packet() do not reach it.
func (b *Builder) Build() (*Template, error) {
	if b.built {
		return nil, ErrBuilt
	}
	b.built = true
	b.pkt.FlushBits()
	log.Debug().Msgf("packet.Build opcode=%d size=%d slots=%d", b.pkt.Opcode, b.pkt.Size(), len(b.slots))
	return &Template{base: b.pkt.Clone(), slots: b.slots}, nil
}

// Template is a frozen packet plus its patch slots. It is read-only once
// built, so Instantiate may run from several goroutines at once.
type Template struct {
	base  *Packet
	slots map[string]Slot
}

func (t *Template) Opcode() uint32 {
	return t.base.Opcode
}

func (t *Template) Size() int {
	return t.base.Size()
}

// Slots lists the slots ordered by offset.
func (t *Template) Slots() []Slot {
	out := make([]Slot, 0, len(t.slots))
	for _, s := range t.slots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Offset < out[j].Offset
	})
	return out
}

// Instantiate clones the template and writes each patch into its slot,
// little-endian. Slots without a patch keep their zero placeholder.
func (t *Template) Instantiate(patches map[string]uint64) (*Packet, error) {
	p := t.base.Clone()
	for name, v := range patches {
		slot, ok := t.slots[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, name)
		}
		if err := patchSlot(p.Buffer, slot, v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func patchSlot(buf *bytebuf.Buffer, slot Slot, v uint64) error {
	if slot.Width < 8 && v>>(8*uint(slot.Width)) != 0 {
		return fmt.Errorf("%w: slot=%s width=%d value=%d", ErrSlotOverflow, slot.Name, slot.Width, v)
	}
	switch slot.Width {
	case 1:
		return buf.PutUint8(slot.Offset, uint8(v))
	case 2:
		return buf.PutUint16(slot.Offset, uint16(v))
	case 4:
		return buf.PutUint32(slot.Offset, uint32(v))
	default:
		return buf.PutUint64(slot.Offset, v)
	}
}
