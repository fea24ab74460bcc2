package bytebuf

import (
	"encoding/binary"
	"math"
)

// Scalar lists the fixed-width values carried little-endian on the wire.
type Scalar interface {
	uint8 | uint16 | uint32 | uint64 |
		int8 | int16 | int32 | int64 |
		float32 | float64 | bool
}

// SizeOf returns the wire width of T in bytes.
func SizeOf[T Scalar]() int {
	var zero T
	switch any(zero).(type) {
	case uint8, int8, bool:
		return 1
	case uint16, int16:
		return 2
	case uint32, int32, float32:
		return 4
	default:
		return 8
	}
}

func encodeScalar[T Scalar](dst []byte, v T) []byte {
	le := binary.LittleEndian
	switch x := any(v).(type) {
	case uint8:
		return append(dst, x)
	case int8:
		return append(dst, uint8(x))
	case bool:
		if x {
			return append(dst, 1)
		}
		return append(dst, 0)
	case uint16:
		return le.AppendUint16(dst, x)
	case int16:
		return le.AppendUint16(dst, uint16(x))
	case uint32:
		return le.AppendUint32(dst, x)
	case int32:
		return le.AppendUint32(dst, uint32(x))
	case float32:
		return le.AppendUint32(dst, math.Float32bits(x))
	case uint64:
		return le.AppendUint64(dst, x)
	case int64:
		return le.AppendUint64(dst, uint64(x))
	case float64:
		return le.AppendUint64(dst, math.Float64bits(x))
	}
	return dst
}

func decodeScalar[T Scalar](p []byte) T {
	le := binary.LittleEndian
	var out any
	var zero T
	switch any(zero).(type) {
	case uint8:
		out = p[0]
	case int8:
		out = int8(p[0])
	case bool:
		out = p[0] != 0
	case uint16:
		out = le.Uint16(p)
	case int16:
		out = int16(le.Uint16(p))
	case uint32:
		out = le.Uint32(p)
	case int32:
		out = int32(le.Uint32(p))
	case float32:
		out = math.Float32frombits(le.Uint32(p))
	case uint64:
		out = le.Uint64(p)
	case int64:
		out = int64(le.Uint64(p))
	case float64:
		out = math.Float64frombits(le.Uint64(p))
	}
	return out.(T)
}

// Write flushes pending bits and appends v little-endian.
func Write[T Scalar](b *Buffer, v T) {
	b.FlushBits()
	var tmp [8]byte
	b.append(encodeScalar(tmp[:0], v))
}

// Read consumes a T at the read cursor.
func Read[T Scalar](b *Buffer) (T, error) {
	b.ResetBitReader()
	v, err := ReadAt[T](b, b.rpos)
	if err != nil {
		return v, err
	}
	b.rpos += SizeOf[T]()
	return v, nil
}

// ReadAt peeks a T at pos without moving the read cursor.
func ReadAt[T Scalar](b *Buffer, pos int) (T, error) {
	n := SizeOf[T]()
	if err := b.check(OpGet, pos, n); err != nil {
		var zero T
		return zero, err
	}
	return decodeScalar[T](b.storage[pos : pos+n]), nil
}

// Put overwrites the T stored at pos.
func Put[T Scalar](b *Buffer, pos int, v T) error {
	var tmp [8]byte
	return b.Put(pos, encodeScalar(tmp[:0], v))
}

func (b *Buffer) WriteUint8(v uint8)     { Write(b, v) }
func (b *Buffer) WriteUint16(v uint16)   { Write(b, v) }
func (b *Buffer) WriteUint32(v uint32)   { Write(b, v) }
func (b *Buffer) WriteUint64(v uint64)   { Write(b, v) }
func (b *Buffer) WriteInt8(v int8)       { Write(b, v) }
func (b *Buffer) WriteInt16(v int16)     { Write(b, v) }
func (b *Buffer) WriteInt32(v int32)     { Write(b, v) }
func (b *Buffer) WriteInt64(v int64)     { Write(b, v) }
func (b *Buffer) WriteFloat32(v float32) { Write(b, v) }
func (b *Buffer) WriteFloat64(v float64) { Write(b, v) }
func (b *Buffer) WriteBool(v bool)       { Write(b, v) }

func (b *Buffer) ReadUint8() (uint8, error)     { return Read[uint8](b) }
func (b *Buffer) ReadUint16() (uint16, error)   { return Read[uint16](b) }
func (b *Buffer) ReadUint32() (uint32, error)   { return Read[uint32](b) }
func (b *Buffer) ReadUint64() (uint64, error)   { return Read[uint64](b) }
func (b *Buffer) ReadInt8() (int8, error)       { return Read[int8](b) }
func (b *Buffer) ReadInt16() (int16, error)     { return Read[int16](b) }
func (b *Buffer) ReadInt32() (int32, error)     { return Read[int32](b) }
func (b *Buffer) ReadInt64() (int64, error)     { return Read[int64](b) }
func (b *Buffer) ReadFloat32() (float32, error) { return Read[float32](b) }
func (b *Buffer) ReadFloat64() (float64, error) { return Read[float64](b) }
func (b *Buffer) ReadBool() (bool, error)       { return Read[bool](b) }

func (b *Buffer) ReadUint8At(pos int) (uint8, error)     { return ReadAt[uint8](b, pos) }
func (b *Buffer) ReadUint16At(pos int) (uint16, error)   { return ReadAt[uint16](b, pos) }
func (b *Buffer) ReadUint32At(pos int) (uint32, error)   { return ReadAt[uint32](b, pos) }
func (b *Buffer) ReadUint64At(pos int) (uint64, error)   { return ReadAt[uint64](b, pos) }
func (b *Buffer) ReadInt32At(pos int) (int32, error)     { return ReadAt[int32](b, pos) }
func (b *Buffer) ReadFloat32At(pos int) (float32, error) { return ReadAt[float32](b, pos) }

func (b *Buffer) PutUint8(pos int, v uint8) error     { return Put(b, pos, v) }
func (b *Buffer) PutUint16(pos int, v uint16) error   { return Put(b, pos, v) }
func (b *Buffer) PutUint32(pos int, v uint32) error   { return Put(b, pos, v) }
func (b *Buffer) PutUint64(pos int, v uint64) error   { return Put(b, pos, v) }
func (b *Buffer) PutInt32(pos int, v int32) error     { return Put(b, pos, v) }
func (b *Buffer) PutFloat32(pos int, v float32) error { return Put(b, pos, v) }
