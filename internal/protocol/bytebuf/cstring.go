package bytebuf

import (
	"bytes"
	"unicode/utf8"
)

// WriteCString appends s followed by a single zero byte.
func (b *Buffer) WriteCString(s string) {
	b.FlushBits()
	tmp := make([]byte, len(s)+1)
	copy(tmp, s)
	b.append(tmp)
}

// ReadCString consumes bytes up to and including the next zero byte, or up
// to the end of the buffer when no terminator is present. With validate set,
// content that is not UTF-8 fails with an InvalidValueError; the consumed
// bytes stay consumed.
func (b *Buffer) ReadCString(validate bool) (string, error) {
	b.ResetBitReader()
	rest := b.storage[min(b.rpos, len(b.storage)):]
	raw := rest
	if i := bytes.IndexByte(rest, 0); i >= 0 {
		raw = rest[:i]
		b.rpos += i + 1
	} else {
		b.rpos += len(rest)
	}
	value := string(raw)
	if validate && !utf8.ValidString(value) {
		return "", &InvalidValueError{Kind: "string", Value: value}
	}
	return value, nil
}

// ReadString reads a zero-terminated string and requires valid UTF-8.
func (b *Buffer) ReadString() (string, error) {
	return b.ReadCString(true)
}
