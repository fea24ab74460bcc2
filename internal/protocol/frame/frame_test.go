package frame

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/danmuck/wirebuf/internal/protocol/packet"
	"github.com/danmuck/wirebuf/internal/testutil/testlog"
)

func TestReadWritePacketRoundTrip(t *testing.T) {
	testlog.Start(t)
	first := packet.New(0x96)
	first.WriteUint16(513)
	first.WriteCString("ok")
	second := packet.New(7)

	var stream bytes.Buffer
	for _, p := range []*packet.Packet{first, second} {
		if err := WritePacket(&stream, p, DefaultLimits()); err != nil {
			t.Fatalf("write packet: %v", err)
		}
	}
	if !bytes.HasPrefix(stream.Bytes(), []byte{0x96, 0, 0, 0, 5, 0, 0, 0}) {
		t.Fatalf("unexpected header bytes: %x", stream.Bytes()[:HeaderLen])
	}

	got, err := ReadPacket(&stream, DefaultLimits())
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	if got.Opcode != 0x96 || !bytes.Equal(got.Bytes(), first.Bytes()) {
		t.Fatalf("first mismatch: opcode=%d body=%x", got.Opcode, got.Bytes())
	}
	if got.ReadPos() != 0 || got.WritePos() != 5 {
		t.Fatalf("unexpected cursors rpos=%d wpos=%d", got.ReadPos(), got.WritePos())
	}
	got, err = ReadPacket(&stream, DefaultLimits())
	if err != nil || got.Opcode != 7 || got.Size() != 0 {
		t.Fatalf("read second: %+v %v", got, err)
	}
	if _, err := ReadPacket(&stream, DefaultLimits()); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF at boundary, got %v", err)
	}
}

func TestReadPacketShortInput(t *testing.T) {
	testlog.Start(t)
	if _, err := ReadPacket(bytes.NewReader([]byte{1, 2, 3}), DefaultLimits()); !errors.Is(err, ErrShortHeader) {
		t.Fatalf("expected ErrShortHeader, got %v", err)
	}
	raw := append(EncodeHeader(Header{Opcode: 1, Size: 4}), 0xAA)
	if _, err := ReadPacket(bytes.NewReader(raw), DefaultLimits()); !errors.Is(err, ErrShortBody) {
		t.Fatalf("expected ErrShortBody, got %v", err)
	}
}

func TestLimitsEnforced(t *testing.T) {
	testlog.Start(t)
	limits := Limits{MaxBodyBytes: 2}
	raw := EncodeHeader(Header{Opcode: 1, Size: 3})
	if _, err := ReadPacket(bytes.NewReader(raw), limits); !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge on read, got %v", err)
	}
	p := packet.FromBytes(1, []byte{1, 2, 3})
	if err := WritePacket(io.Discard, p, limits); !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge on write, got %v", err)
	}
}

func TestDecodeHeaderLength(t *testing.T) {
	testlog.Start(t)
	if _, err := DecodeHeader([]byte{1, 2}); err == nil {
		t.Fatalf("expected header length error")
	}
	h, err := DecodeHeader(EncodeHeader(Header{Opcode: 0xDEADBEEF, Size: 9}))
	if err != nil || h.Opcode != 0xDEADBEEF || h.Size != 9 {
		t.Fatalf("header round trip: %+v %v", h, err)
	}
}

func TestReadPacketOversizedClaimShortBody(t *testing.T) {
	testlog.Start(t)
	raw := append(EncodeHeader(Header{Opcode: 2, Size: 9_000_000}), 0xAA)
	p, err := ReadPacket(bytes.NewReader(raw), DefaultLimits())
	if !errors.Is(err, ErrShortBody) || p != nil {
		t.Fatalf("expected ErrShortBody, got %v", err)
	}
}

func TestReadPacketGrowsWithBody(t *testing.T) {
	testlog.Start(t)
	body := bytes.Repeat([]byte{0x5A}, 70_000)
	raw := append(EncodeHeader(Header{Opcode: 3, Size: uint32(len(body))}), body...)
	p, err := ReadPacket(bytes.NewReader(raw), DefaultLimits())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(p.Bytes(), body) || p.ReadPos() != 0 || p.WritePos() != len(body) {
		t.Fatalf("unexpected packet size=%d rpos=%d wpos=%d", p.Size(), p.ReadPos(), p.WritePos())
	}
}
