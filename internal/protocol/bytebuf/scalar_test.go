package bytebuf

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/danmuck/wirebuf/internal/testutil/testlog"
)

func TestScalarRoundTrip(t *testing.T) {
	testlog.Start(t)
	b := New()
	b.WriteUint8(0xFE)
	b.WriteUint16(0xBEEF)
	b.WriteUint32(0xDEADBEEF)
	b.WriteUint64(0x0102030405060708)
	b.WriteInt8(-5)
	b.WriteInt16(-300)
	b.WriteInt32(math.MinInt32)
	b.WriteInt64(-1)
	b.WriteFloat32(3.5)
	b.WriteFloat64(math.Pi)
	b.WriteBool(true)

	if v, err := b.ReadUint8(); err != nil || v != 0xFE {
		t.Fatalf("uint8: %v %v", v, err)
	}
	if v, err := b.ReadUint16(); err != nil || v != 0xBEEF {
		t.Fatalf("uint16: %v %v", v, err)
	}
	if v, err := b.ReadUint32(); err != nil || v != 0xDEADBEEF {
		t.Fatalf("uint32: %v %v", v, err)
	}
	if v, err := b.ReadUint64(); err != nil || v != 0x0102030405060708 {
		t.Fatalf("uint64: %v %v", v, err)
	}
	if v, err := b.ReadInt8(); err != nil || v != -5 {
		t.Fatalf("int8: %v %v", v, err)
	}
	if v, err := b.ReadInt16(); err != nil || v != -300 {
		t.Fatalf("int16: %v %v", v, err)
	}
	if v, err := b.ReadInt32(); err != nil || v != math.MinInt32 {
		t.Fatalf("int32: %v %v", v, err)
	}
	if v, err := b.ReadInt64(); err != nil || v != -1 {
		t.Fatalf("int64: %v %v", v, err)
	}
	if v, err := b.ReadFloat32(); err != nil || v != 3.5 {
		t.Fatalf("float32: %v %v", v, err)
	}
	if v, err := b.ReadFloat64(); err != nil || v != math.Pi {
		t.Fatalf("float64: %v %v", v, err)
	}
	if v, err := b.ReadBool(); err != nil || !v {
		t.Fatalf("bool: %v %v", v, err)
	}
	if b.ReadPos() != b.Size() {
		t.Fatalf("expected all bytes consumed: rpos=%d size=%d", b.ReadPos(), b.Size())
	}
}

func TestScalarLittleEndianOnWire(t *testing.T) {
	testlog.Start(t)
	b := New()
	b.WriteUint32(0x11223344)
	b.WriteInt16(-2)
	want := []byte{0x44, 0x33, 0x22, 0x11, 0xFE, 0xFF}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("got %x want %x", b.Bytes(), want)
	}
}

func TestReadAtIsNonConsuming(t *testing.T) {
	testlog.Start(t)
	b := New()
	b.WriteUint16(10)
	b.WriteUint16(20)
	v, err := b.ReadUint16At(2)
	if err != nil || v != 20 {
		t.Fatalf("peek: %v %v", v, err)
	}
	if b.ReadPos() != 0 {
		t.Fatalf("peek moved read cursor to %d", b.ReadPos())
	}
	g, err := ReadAt[uint16](b, 0)
	if err != nil || g != 10 {
		t.Fatalf("generic peek: %v %v", g, err)
	}
}

func TestReadUint32OutOfRange(t *testing.T) {
	testlog.Start(t)
	b := New()
	b.WriteUint32(1)
	_, err := b.ReadUint32At(1)
	var pe *PositionError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PositionError, got %v", err)
	}
	if pe.Op != OpGet || pe.Pos != 1 || pe.ValueSize != 4 || pe.Size != 4 {
		t.Fatalf("unexpected position error: %+v", pe)
	}

	if _, err := b.ReadUint64(); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected out of range for uint64, got %v", err)
	}
	if b.ReadPos() != 0 {
		t.Fatalf("failed read moved cursor to %d", b.ReadPos())
	}
	if _, err := b.ReadFloat32At(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected out of range for negative position, got %v", err)
	}
}

func TestGenericWriteReadPut(t *testing.T) {
	testlog.Start(t)
	b := New()
	Write(b, int32(-7))
	Write(b, float64(1.25))
	if err := Put(b, 0, int32(42)); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, err := Read[int32](b)
	if err != nil || v != 42 {
		t.Fatalf("int32: %v %v", v, err)
	}
	f, err := Read[float64](b)
	if err != nil || f != 1.25 {
		t.Fatalf("float64: %v %v", f, err)
	}
	if SizeOf[uint16]() != 2 || SizeOf[bool]() != 1 || SizeOf[float64]() != 8 {
		t.Fatalf("unexpected scalar sizes")
	}
}
