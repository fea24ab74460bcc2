package layout

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// String renders v for humans according to its type.
func (v Value) String() string {
	switch v.Type {
	case TypeU8, TypeU16, TypeU32, TypeU64, TypeBits:
		return strconv.FormatUint(v.Uint, 10)
	case TypeI8, TypeI16, TypeI32, TypeI64:
		return strconv.FormatInt(v.Int, 10)
	case TypeF32:
		return strconv.FormatFloat(v.Float, 'g', -1, 32)
	case TypeF64:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case TypeBool, TypeBit:
		return strconv.FormatBool(v.Bool)
	case TypeCString, TypeRawCString:
		return strconv.Quote(v.Text)
	case TypePackedTime:
		return v.Time.Format(time.RFC3339)
	case TypeBytes:
		return hex.EncodeToString(v.Bytes)
	case TypeGUIDMask:
		return fmt.Sprintf("%08b", uint8(v.Mask))
	case TypeGUIDBytes:
		return fmt.Sprintf("%#016x", uint64(v.GUID))
	default:
		return ""
	}
}

// Format renders rec one "name (type) = value" line per field in layout order.
func Format(l Layout, rec Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s opcode=%d\n", l.Name, l.Opcode)
	for _, f := range l.Fields {
		name := strings.TrimSpace(f.Name)
		v, ok := rec[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "  %s (%s) = %s\n", name, f.Type, v)
	}
	return sb.String()
}
