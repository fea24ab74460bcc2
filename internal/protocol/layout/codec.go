package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/danmuck/wirebuf/internal/observability"
	"github.com/danmuck/wirebuf/internal/protocol/bytebuf"
	"github.com/rs/zerolog/log"
)

// Decode reads every field of l from buf, starting at its read cursor.
func Decode(buf *bytebuf.Buffer, l Layout) (Record, error) {
	if err := Validate(l); err != nil {
		return nil, err
	}
	rec := make(Record, len(l.Fields))
	for _, f := range l.Fields {
		name := strings.TrimSpace(f.Name)
		v, err := decodeField(buf, f, rec)
		if err != nil {
			log.Error().Msgf("layout.Decode failed layout=%s field=%s rpos=%d: %v", l.Name, name, buf.ReadPos(), err)
			observability.RecordDecode(l.Name, err)
			return nil, &FieldError{Layout: l.Name, Field: name, Op: "decode", Err: err}
		}
		rec[name] = v
	}
	observability.RecordDecode(l.Name, nil)
	log.Debug().Msgf("layout.Decode ok layout=%s fields=%d rpos=%d", l.Name, len(rec), buf.ReadPos())
	return rec, nil
}

func decodeField(buf *bytebuf.Buffer, f FieldSpec, rec Record) (Value, error) {
	v := Value{Type: f.Type}
	var err error
	switch f.Type {
	case TypeU8:
		var x uint8
		x, err = buf.ReadUint8()
		v.Uint = uint64(x)
	case TypeU16:
		var x uint16
		x, err = buf.ReadUint16()
		v.Uint = uint64(x)
	case TypeU32:
		var x uint32
		x, err = buf.ReadUint32()
		v.Uint = uint64(x)
	case TypeU64:
		v.Uint, err = buf.ReadUint64()
	case TypeI8:
		var x int8
		x, err = buf.ReadInt8()
		v.Int = int64(x)
	case TypeI16:
		var x int16
		x, err = buf.ReadInt16()
		v.Int = int64(x)
	case TypeI32:
		var x int32
		x, err = buf.ReadInt32()
		v.Int = int64(x)
	case TypeI64:
		v.Int, err = buf.ReadInt64()
	case TypeF32:
		var x float32
		x, err = buf.ReadFloat32()
		v.Float = float64(x)
	case TypeF64:
		v.Float, err = buf.ReadFloat64()
	case TypeBool:
		v.Bool, err = buf.ReadBool()
	case TypeBit:
		v.Bool, err = buf.ReadBit()
	case TypeBits:
		var x uint32
		x, err = buf.ReadBits(f.Count)
		v.Uint = uint64(x)
	case TypeCString:
		v.Text, err = buf.ReadCString(true)
	case TypeRawCString:
		v.Text, err = buf.ReadCString(false)
	case TypePackedTime:
		v.Time, err = buf.ReadPackedTime()
	case TypeBytes:
		v.Bytes, err = buf.ReadBytes(f.Count)
	case TypeGUIDMask:
		v.Mask, err = buf.ReadBitsInOrder(f.Order)
	case TypeGUIDBytes:
		mask := rec[strings.TrimSpace(f.Mask)].Mask
		v.Mask = mask
		v.GUID, err = buf.ReadBytesInOrder(mask, f.Order)
	default:
		err = fmt.Errorf("%w: %s", ErrTypeMismatch, f.Type)
	}
	return v, err
}

// Encode writes rec into a fresh buffer in the field order of l. Pending
// bits are flushed at the end.
func Encode(l Layout, rec Record) (*bytebuf.Buffer, error) {
	if err := Validate(l); err != nil {
		return nil, err
	}
	buf := bytebuf.New()
	for _, f := range l.Fields {
		name := strings.TrimSpace(f.Name)
		v, ok := rec[name]
		if !ok {
			return nil, &FieldError{Layout: l.Name, Field: name, Op: "encode", Err: ErrMissingField}
		}
		if err := encodeField(buf, f, v); err != nil {
			return nil, &FieldError{Layout: l.Name, Field: name, Op: "encode", Err: err}
		}
	}
	buf.FlushBits()
	log.Debug().Msgf("layout.Encode ok layout=%s size=%d", l.Name, buf.Size())
	return buf, nil
}

func encodeField(buf *bytebuf.Buffer, f FieldSpec, v Value) error {
	if v.Type != "" && v.Type != f.Type {
		return fmt.Errorf("%w: got %s want %s", ErrTypeMismatch, v.Type, f.Type)
	}
	switch f.Type {
	case TypeU8:
		if !fitsUnsigned(v.Uint, 8) {
			return rangeErr(v.Uint, f.Type)
		}
		buf.WriteUint8(uint8(v.Uint))
	case TypeU16:
		if !fitsUnsigned(v.Uint, 16) {
			return rangeErr(v.Uint, f.Type)
		}
		buf.WriteUint16(uint16(v.Uint))
	case TypeU32:
		if !fitsUnsigned(v.Uint, 32) {
			return rangeErr(v.Uint, f.Type)
		}
		buf.WriteUint32(uint32(v.Uint))
	case TypeU64:
		buf.WriteUint64(v.Uint)
	case TypeI8:
		if v.Int < math.MinInt8 || v.Int > math.MaxInt8 {
			return rangeErr(v.Int, f.Type)
		}
		buf.WriteInt8(int8(v.Int))
	case TypeI16:
		if v.Int < math.MinInt16 || v.Int > math.MaxInt16 {
			return rangeErr(v.Int, f.Type)
		}
		buf.WriteInt16(int16(v.Int))
	case TypeI32:
		if v.Int < math.MinInt32 || v.Int > math.MaxInt32 {
			return rangeErr(v.Int, f.Type)
		}
		buf.WriteInt32(int32(v.Int))
	case TypeI64:
		buf.WriteInt64(v.Int)
	case TypeF32:
		buf.WriteFloat32(float32(v.Float))
	case TypeF64:
		buf.WriteFloat64(v.Float)
	case TypeBool:
		buf.WriteBool(v.Bool)
	case TypeBit:
		buf.WriteBit(v.Bool)
	case TypeBits:
		if !fitsUnsigned(v.Uint, f.Count) {
			return rangeErr(v.Uint, f.Type)
		}
		buf.WriteBits(uint32(v.Uint), f.Count)
	case TypeCString, TypeRawCString:
		buf.WriteCString(v.Text)
	case TypePackedTime:
		buf.WritePackedTime(v.Time)
	case TypeBytes:
		if len(v.Bytes) != f.Count {
			return fmt.Errorf("%w: got %d want %d", ErrLengthMismatch, len(v.Bytes), f.Count)
		}
		buf.FlushBits()
		return buf.Append(v.Bytes)
	case TypeGUIDMask:
		return buf.WriteBitsInOrder(v.GUID, f.Order)
	case TypeGUIDBytes:
		return buf.WriteBytesInOrder(v.GUID, f.Order)
	default:
		return fmt.Errorf("%w: %s", ErrTypeMismatch, f.Type)
	}
	return nil
}

func fitsUnsigned(v uint64, bits int) bool {
	return bits >= 64 || v>>uint(bits) == 0
}

func rangeErr[T int64 | uint64](v T, t FieldType) error {
	return fmt.Errorf("%w: %d does not fit %s", ErrValueRange, v, t)
}
