package bytebuf

import "fmt"

// GUID is an opaque 64-bit object identifier addressed byte by byte, byte 0
// being the least significant.
type GUID uint64

// Byte returns byte i of g.
func (g GUID) Byte(i int) uint8 {
	return uint8(g >> (8 * uint(i)))
}

// WithByte returns g with byte i replaced by v.
func (g GUID) WithByte(i int, v uint8) GUID {
	shift := 8 * uint(i)
	return g&^(GUID(0xFF)<<shift) | GUID(v)<<shift
}

// Mask returns the presence mask of g: bit i set when byte i is non-zero.
func (g GUID) Mask() GUIDMask {
	var m GUIDMask
	for i := 0; i < 8; i++ {
		if g.Byte(i) != 0 {
			m |= 1 << uint(i)
		}
	}
	return m
}

// GUIDMask records which bytes of a GUID travel on the wire.
type GUIDMask uint8

func (m GUIDMask) Has(i int) bool {
	return m&(1<<uint(i)) != 0
}

// ByteOrder is a permutation of GUID byte indexes used by a message field.
type ByteOrder [8]uint8

func (o ByteOrder) validate() error {
	for _, idx := range o {
		if idx > 7 {
			return &InvalidValueError{Kind: "guid order", Value: fmt.Sprint([8]uint8(o))}
		}
	}
	return nil
}

// WriteBitsInOrder writes one bit per order entry telling whether that byte
// of g is non-zero.
func (b *Buffer) WriteBitsInOrder(g GUID, order ByteOrder) error {
	if err := order.validate(); err != nil {
		return err
	}
	for _, idx := range order {
		b.WriteBit(g.Byte(int(idx)) != 0)
	}
	return nil
}

// ReadBitsInOrder reads the presence bits written by WriteBitsInOrder.
func (b *Buffer) ReadBitsInOrder(order ByteOrder) (GUIDMask, error) {
	if err := order.validate(); err != nil {
		return 0, err
	}
	var m GUIDMask
	for _, idx := range order {
		bit, err := b.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit {
			m |= 1 << idx
		}
	}
	return m, nil
}

// WriteBytesInOrder writes the non-zero bytes of g in order, each XOR 1.
// Zero bytes are left out; the reader learns of them from the mask bits.
func (b *Buffer) WriteBytesInOrder(g GUID, order ByteOrder) error {
	if err := order.validate(); err != nil {
		return err
	}
	b.FlushBits()
	for _, idx := range order {
		if v := g.Byte(int(idx)); v != 0 {
			b.append([]byte{v ^ 1})
		}
	}
	return nil
}

// ReadBytesInOrder reads the bytes announced by mask in order.
func (b *Buffer) ReadBytesInOrder(mask GUIDMask, order ByteOrder) (GUID, error) {
	if err := order.validate(); err != nil {
		return 0, err
	}
	b.ResetBitReader()
	var g GUID
	for _, idx := range order {
		if !mask.Has(int(idx)) {
			continue
		}
		v, err := ReadAt[uint8](b, b.rpos)
		if err != nil {
			return 0, err
		}
		b.rpos++
		g = g.WithByte(int(idx), v^1)
	}
	return g, nil
}
