package layout

import (
	"errors"
	"testing"
	"time"

	"github.com/danmuck/wirebuf/internal/protocol/packet"
	"github.com/danmuck/wirebuf/internal/testutil/testlog"
	"github.com/google/go-cmp/cmp"
)

func TestRegistryRejectsDuplicates(t *testing.T) {
	testlog.Start(t)
	r, err := NewRegistry(chatLayout())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if err := r.Add(Layout{Name: "chat", Fields: []FieldSpec{{Name: "a", Type: TypeU8}}}); err == nil {
		t.Fatalf("expected duplicate name error")
	}
	if err := r.Add(Layout{Name: "other", Opcode: 0x96, Fields: []FieldSpec{{Name: "a", Type: TypeU8}}}); err == nil {
		t.Fatalf("expected duplicate opcode error")
	}
	if err := r.Add(Layout{Name: "local", Fields: []FieldSpec{{Name: "a", Type: TypeU8}}}); err != nil {
		t.Fatalf("add name-only layout: %v", err)
	}
	if _, ok := r.ByOpcode(0); ok {
		t.Fatalf("opcode 0 must not be indexed")
	}
	if diff := cmp.Diff([]string{"chat", "local"}, r.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, ok := r.Lookup(" local "); !ok {
		t.Fatalf("lookup should trim the name")
	}
}

func TestRegistryDecodePacket(t *testing.T) {
	testlog.Start(t)
	r, err := NewRegistry(chatLayout())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	sent := time.Date(2025, time.January, 2, 3, 4, 0, 0, time.Local)
	buf, err := Encode(chatLayout(), chatRecord(sent))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	l, rec, err := r.DecodePacket(packet.FromBytes(0x96, buf.Bytes()))
	if err != nil {
		t.Fatalf("decode packet: %v", err)
	}
	if l.Name != "chat" || rec["text"].Text != "hi" || !rec["sent"].Time.Equal(sent) {
		t.Fatalf("unexpected decode: layout=%s text=%q sent=%v", l.Name, rec["text"].Text, rec["sent"].Time)
	}

	if _, _, err := r.DecodePacket(packet.New(0x97)); !errors.Is(err, ErrUnknownLayout) {
		t.Fatalf("expected ErrUnknownLayout, got %v", err)
	}
}
