package layout

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/danmuck/wirebuf/internal/protocol/packet"
)

var ErrUnknownLayout = errors.New("layout: unknown layout")

// Registry indexes validated layouts by name and by opcode. Opcode 0 means
// the layout is reachable by name only.
type Registry struct {
	byName   map[string]Layout
	byOpcode map[uint32]Layout
}

func NewRegistry(layouts ...Layout) (*Registry, error) {
	r := &Registry{
		byName:   make(map[string]Layout, len(layouts)),
		byOpcode: make(map[uint32]Layout, len(layouts)),
	}
	for _, l := range layouts {
		if err := r.Add(l); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Add(l Layout) error {
	if err := Validate(l); err != nil {
		return err
	}
	name := strings.TrimSpace(l.Name)
	if _, exists := r.byName[name]; exists {
		return ValidationError{Layout: name, Reason: "duplicate layout name"}
	}
	if l.Opcode != 0 {
		if prev, exists := r.byOpcode[l.Opcode]; exists {
			return ValidationError{Layout: name, Reason: fmt.Sprintf("opcode %d already used by %s", l.Opcode, prev.Name)}
		}
		r.byOpcode[l.Opcode] = l
	}
	r.byName[name] = l
	return nil
}

func (r *Registry) Lookup(name string) (Layout, bool) {
	l, ok := r.byName[strings.TrimSpace(name)]
	return l, ok
}

func (r *Registry) ByOpcode(opcode uint32) (Layout, bool) {
	l, ok := r.byOpcode[opcode]
	return l, ok
}

func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DecodePacket decodes p with the layout registered for its opcode.
func (r *Registry) DecodePacket(p *packet.Packet) (Layout, Record, error) {
	l, ok := r.ByOpcode(p.Opcode)
	if !ok {
		return Layout{}, nil, fmt.Errorf("%w: opcode %d", ErrUnknownLayout, p.Opcode)
	}
	rec, err := Decode(p.Buffer, l)
	return l, rec, err
}
