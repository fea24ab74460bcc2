package config

import (
	"fmt"
	"strings"

	"github.com/danmuck/wirebuf/internal/protocol/bytebuf"
	"github.com/danmuck/wirebuf/internal/protocol/layout"
)

var identityOrder = bytebuf.ByteOrder{0, 1, 2, 3, 4, 5, 6, 7}

// Layouts converts file entries into validated layouts.
func Layouts(entries []LayoutConfig) ([]layout.Layout, error) {
	out := make([]layout.Layout, 0, len(entries))
	for _, entry := range entries {
		l := layout.Layout{
			Name:   strings.TrimSpace(entry.Name),
			Opcode: entry.Opcode,
			Fields: make([]layout.FieldSpec, 0, len(entry.Fields)),
		}
		for _, f := range entry.Fields {
			order, err := byteOrder(f.Order)
			if err != nil {
				return nil, fmt.Errorf("layout %s field %s: %w", l.Name, f.Name, err)
			}
			l.Fields = append(l.Fields, layout.FieldSpec{
				Name:  strings.TrimSpace(f.Name),
				Type:  layout.FieldType(strings.ToLower(strings.TrimSpace(f.Type))),
				Count: f.Count,
				Order: order,
				Mask:  strings.TrimSpace(f.Mask),
			})
		}
		if err := layout.Validate(l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Registry converts entries and indexes them.
func Registry(cfg LayoutsConfig) (*layout.Registry, error) {
	layouts, err := Layouts(cfg.Layouts)
	if err != nil {
		return nil, err
	}
	return layout.NewRegistry(layouts...)
}

func byteOrder(raw []int) (bytebuf.ByteOrder, error) {
	if len(raw) == 0 {
		return identityOrder, nil
	}
	if len(raw) != 8 {
		return bytebuf.ByteOrder{}, fmt.Errorf("order must list 8 indexes, got %d", len(raw))
	}
	var order bytebuf.ByteOrder
	for i, idx := range raw {
		if idx < 0 || idx > 7 {
			return bytebuf.ByteOrder{}, fmt.Errorf("order index %d out of range", idx)
		}
		order[i] = uint8(idx)
	}
	return order, nil
}
