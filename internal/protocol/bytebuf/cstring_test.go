package bytebuf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/wirebuf/internal/testutil/testlog"
)

func TestWriteCStringTerminates(t *testing.T) {
	testlog.Start(t)
	b := New()
	b.WriteCString("hi")
	b.WriteCString("")
	if !bytes.Equal(b.Bytes(), []byte{'h', 'i', 0, 0}) {
		t.Fatalf("got %x", b.Bytes())
	}
}

func TestReadCStringStopsAtTerminator(t *testing.T) {
	testlog.Start(t)
	b := FromBytes([]byte("hello\x00world\x00"))
	got, err := b.ReadString()
	if err != nil || got != "hello" {
		t.Fatalf("got %q err %v", got, err)
	}
	if b.ReadPos() != 6 {
		t.Fatalf("expected cursor just after terminator, got %d", b.ReadPos())
	}
	got, err = b.ReadString()
	if err != nil || got != "world" {
		t.Fatalf("second string %q err %v", got, err)
	}
}

func TestReadCStringWithoutTerminator(t *testing.T) {
	testlog.Start(t)
	b := FromBytes([]byte("abc"))
	got, err := b.ReadString()
	if err != nil || got != "abc" {
		t.Fatalf("got %q err %v", got, err)
	}
	if b.ReadPos() != b.Size() {
		t.Fatalf("cursor should stop at end, got %d", b.ReadPos())
	}
	got, err = b.ReadString()
	if err != nil || got != "" {
		t.Fatalf("read at end should be empty, got %q err %v", got, err)
	}
	if b.ReadPos() != 3 {
		t.Fatalf("cursor moved past end: %d", b.ReadPos())
	}
}

func TestReadCStringValidation(t *testing.T) {
	testlog.Start(t)
	raw := []byte{'o', 'k', 0xFF, 0xFE, 0}

	b := FromBytes(raw)
	_, err := b.ReadCString(true)
	var ive *InvalidValueError
	if !errors.As(err, &ive) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if ive.Kind != "string" || ive.Value != string(raw[:4]) {
		t.Fatalf("unexpected invalid value error: %+v", ive)
	}
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected errors.Is ErrInvalidValue")
	}

	b = FromBytes(raw)
	got, err := b.ReadCString(false)
	if err != nil || got != string(raw[:4]) {
		t.Fatalf("unvalidated read got %q err %v", got, err)
	}
}

func TestCStringAfterBits(t *testing.T) {
	testlog.Start(t)
	b := New()
	b.WriteBit(true)
	b.WriteCString("x")
	if !bytes.Equal(b.Bytes(), []byte{0x80, 'x', 0}) {
		t.Fatalf("got %x", b.Bytes())
	}
	if _, err := b.ReadBit(); err != nil {
		t.Fatalf("read bit: %v", err)
	}
	got, err := b.ReadString()
	if err != nil || got != "x" {
		t.Fatalf("got %q err %v", got, err)
	}
}
