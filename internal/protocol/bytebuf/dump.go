package bytebuf

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// DumpKind selects a diagnostic rendering of the buffer content.
type DumpKind uint8

const (
	DumpHex DumpKind = iota
	DumpText
	DumpSummary
)

func (k DumpKind) String() string {
	switch k {
	case DumpText:
		return "text"
	case DumpSummary:
		return "summary"
	default:
		return "hex"
	}
}

// ParseDumpKind maps a config string onto a DumpKind.
func ParseDumpKind(raw string) (DumpKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "hex":
		return DumpHex, nil
	case "text":
		return DumpText, nil
	case "summary":
		return DumpSummary, nil
	default:
		return DumpHex, fmt.Errorf("bytebuf: unknown dump kind %q", raw)
	}
}

// HexDump renders the content as rows of 16 bytes split into 8-byte halves.
// The first row follows the size header on the same line.
func (b *Buffer) HexDump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "STORAGE_SIZE: %d ", len(b.storage))
	for i, c := range b.storage {
		switch {
		case i == 0:
		case i%16 == 0:
			sb.WriteByte('\n')
		case i%8 == 0:
			sb.WriteString("| ")
		}
		fmt.Fprintf(&sb, "%02X ", c)
	}
	return sb.String()
}

// TextDump renders printable bytes as-is and everything else as '.'.
func (b *Buffer) TextDump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "STORAGE_SIZE: %d ", len(b.storage))
	for _, c := range b.storage {
		if c >= 0x20 && c < 0x7F {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// Summary renders cursors followed by each byte in decimal.
func (b *Buffer) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "STORAGE_SIZE: %d rpos: %d wpos: %d bitpos: %d |", len(b.storage), b.rpos, b.wpos, b.BitPosition())
	for _, c := range b.storage {
		fmt.Fprintf(&sb, " %d -", c)
	}
	return sb.String()
}

// Dump renders kind only when enabled reports true, so callers pay for the
// traversal only when the output will be used.
func (b *Buffer) Dump(kind DumpKind, enabled func() bool) (string, bool) {
	if enabled != nil && !enabled() {
		return "", false
	}
	switch kind {
	case DumpText:
		return b.TextDump(), true
	case DumpSummary:
		return b.Summary(), true
	default:
		return b.HexDump(), true
	}
}

// LogDump writes kind to logger at trace level when trace is enabled.
func (b *Buffer) LogDump(logger zerolog.Logger, kind DumpKind) {
	out, ok := b.Dump(kind, func() bool { return TraceEnabled(logger) })
	if !ok {
		return
	}
	logger.Trace().Str("dump", kind.String()).Msg(out)
}

// TraceEnabled reports whether logger would emit trace events.
func TraceEnabled(logger zerolog.Logger) bool {
	return logger.GetLevel() <= zerolog.TraceLevel && zerolog.GlobalLevel() <= zerolog.TraceLevel
}
