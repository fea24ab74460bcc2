package layout

import (
	"errors"
	"testing"

	"github.com/danmuck/wirebuf/internal/protocol/bytebuf"
	"github.com/danmuck/wirebuf/internal/testutil/testlog"
)

var identityOrder = bytebuf.ByteOrder{0, 1, 2, 3, 4, 5, 6, 7}

func TestValidateRejectsMalformedLayouts(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name   string
		layout Layout
		field  string
	}{
		{name: "missing layout name", layout: Layout{Fields: []FieldSpec{{Name: "a", Type: TypeU8}}}},
		{name: "missing field name", layout: Layout{Name: "l", Fields: []FieldSpec{{Type: TypeU8}}}},
		{name: "duplicate field", layout: Layout{Name: "l", Fields: []FieldSpec{{Name: "a", Type: TypeU8}, {Name: " a", Type: TypeU16}}}, field: "a"},
		{name: "unknown type", layout: Layout{Name: "l", Fields: []FieldSpec{{Name: "a", Type: "u128"}}}, field: "a"},
		{name: "zero bits", layout: Layout{Name: "l", Fields: []FieldSpec{{Name: "a", Type: TypeBits}}}, field: "a"},
		{name: "too many bits", layout: Layout{Name: "l", Fields: []FieldSpec{{Name: "a", Type: TypeBits, Count: 33}}}, field: "a"},
		{name: "empty bytes", layout: Layout{Name: "l", Fields: []FieldSpec{{Name: "a", Type: TypeBytes}}}, field: "a"},
		{name: "order out of range", layout: Layout{Name: "l", Fields: []FieldSpec{{Name: "a", Type: TypeGUIDMask, Order: bytebuf.ByteOrder{8}}}}, field: "a"},
		{name: "bytes before mask", layout: Layout{Name: "l", Fields: []FieldSpec{
			{Name: "b", Type: TypeGUIDBytes, Order: identityOrder, Mask: "a"},
			{Name: "a", Type: TypeGUIDMask, Order: identityOrder},
		}}, field: "b"},
	}
	for _, tc := range cases {
		err := Validate(tc.layout)
		var ve ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
		if ve.Field != tc.field {
			t.Fatalf("%s: expected field %q, got %q (%v)", tc.name, tc.field, ve.Field, err)
		}
	}
}

func TestValidateAcceptsGUIDPair(t *testing.T) {
	testlog.Start(t)
	l := Layout{Name: "l", Fields: []FieldSpec{
		{Name: "mask", Type: TypeGUIDMask, Order: identityOrder},
		{Name: "guid", Type: TypeGUIDBytes, Order: identityOrder, Mask: "mask"},
	}}
	if err := Validate(l); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
