package layout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danmuck/wirebuf/internal/protocol/bytebuf"
	"github.com/rs/zerolog/log"
)

// FieldType names how a field is laid out on the wire.
type FieldType string

const (
	TypeU8         FieldType = "u8"
	TypeU16        FieldType = "u16"
	TypeU32        FieldType = "u32"
	TypeU64        FieldType = "u64"
	TypeI8         FieldType = "i8"
	TypeI16        FieldType = "i16"
	TypeI32        FieldType = "i32"
	TypeI64        FieldType = "i64"
	TypeF32        FieldType = "f32"
	TypeF64        FieldType = "f64"
	TypeBool       FieldType = "bool"
	TypeBit        FieldType = "bit"
	TypeBits       FieldType = "bits"
	TypeCString    FieldType = "cstring"
	TypeRawCString FieldType = "rawcstring"
	TypePackedTime FieldType = "packedtime"
	TypeBytes      FieldType = "bytes"
	TypeGUIDMask   FieldType = "guidmask"
	TypeGUIDBytes  FieldType = "guidbytes"
)

var knownTypes = map[FieldType]struct{}{
	TypeU8: {}, TypeU16: {}, TypeU32: {}, TypeU64: {},
	TypeI8: {}, TypeI16: {}, TypeI32: {}, TypeI64: {},
	TypeF32: {}, TypeF64: {}, TypeBool: {},
	TypeBit: {}, TypeBits: {},
	TypeCString: {}, TypeRawCString: {}, TypePackedTime: {}, TypeBytes: {},
	TypeGUIDMask: {}, TypeGUIDBytes: {},
}

// FieldSpec declares one field. Count is the bit width for bits and the
// byte length for bytes. Order applies to guid fields; Mask names the
// guidmask field a guidbytes field reads its presence bits from.
type FieldSpec struct {
	Name  string
	Type  FieldType
	Count int
	Order bytebuf.ByteOrder
	Mask  string
}

// Layout is the ordered field list of one message.
type Layout struct {
	Name   string
	Opcode uint32
	Fields []FieldSpec
}

// Value is a decoded or to-be-encoded field value.
type Value struct {
	Type  FieldType
	Uint  uint64
	Int   int64
	Float float64
	Bool  bool
	Text  string
	Bytes []byte
	Time  time.Time
	GUID  bytebuf.GUID
	Mask  bytebuf.GUIDMask
}

// Record holds field values by name.
type Record map[string]Value

var (
	ErrMissingField   = errors.New("layout: missing field value")
	ErrTypeMismatch   = errors.New("layout: value type mismatch")
	ErrValueRange     = errors.New("layout: value out of range")
	ErrLengthMismatch = errors.New("layout: length mismatch")
)

// ValidationError reports a malformed layout definition.
type ValidationError struct {
	Layout string
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("layout: layout=%s: %s", e.Layout, e.Reason)
	}
	return fmt.Sprintf("layout: layout=%s field=%s: %s", e.Layout, e.Field, e.Reason)
}

// FieldError wraps a failure encoding or decoding one field.
type FieldError struct {
	Layout string
	Field  string
	Op     string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("layout: %s layout=%s field=%s: %v", e.Op, e.Layout, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate checks names, types, widths and guid references.
func Validate(l Layout) error {
	log.Debug().Msgf("layout.Validate layout=%s fields=%d", l.Name, len(l.Fields))
	if strings.TrimSpace(l.Name) == "" {
		return ValidationError{Layout: l.Name, Reason: "missing layout name"}
	}
	seen := make(map[string]FieldType, len(l.Fields))
	for _, f := range l.Fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return ValidationError{Layout: l.Name, Reason: "missing field name"}
		}
		if _, dup := seen[name]; dup {
			return ValidationError{Layout: l.Name, Field: name, Reason: "duplicate field"}
		}
		if _, ok := knownTypes[f.Type]; !ok {
			return ValidationError{Layout: l.Name, Field: name, Reason: fmt.Sprintf("unknown type %q", f.Type)}
		}
		switch f.Type {
		case TypeBits:
			if f.Count < 1 || f.Count > 32 {
				return ValidationError{Layout: l.Name, Field: name, Reason: "bits count must be within 1..32"}
			}
		case TypeBytes:
			if f.Count < 1 {
				return ValidationError{Layout: l.Name, Field: name, Reason: "bytes count must be positive"}
			}
		case TypeGUIDMask, TypeGUIDBytes:
			for _, idx := range f.Order {
				if idx > 7 {
					return ValidationError{Layout: l.Name, Field: name, Reason: "byte order entries must be within 0..7"}
				}
			}
			if f.Type == TypeGUIDBytes && seen[strings.TrimSpace(f.Mask)] != TypeGUIDMask {
				return ValidationError{Layout: l.Name, Field: name, Reason: "mask must name an earlier guidmask field"}
			}
		}
		seen[name] = f.Type
	}
	return nil
}
