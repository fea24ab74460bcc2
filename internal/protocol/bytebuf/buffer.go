package bytebuf

import (
	"fmt"
	"io"
)

// MaxSize is the hard ceiling on a buffer's logical size. Reaching it is a
// programming error and panics.
const MaxSize = 10_000_000

// growthTiers maps a projected size to the capacity reserved for it. Sizes at
// or above the last threshold reserve topTierReserve.
var growthTiers = [...]struct {
	below   int
	reserve int
}{
	{below: 100, reserve: 300},
	{below: 750, reserve: 2500},
	{below: 6000, reserve: 10000},
}

const topTierReserve = 400000

// GrowthObserver is called each time the growth table reserves capacity.
type GrowthObserver func(projected, reserved int)

// Buffer is a growable byte store with independent read and write cursors.
// The zero value is an empty buffer ready for use.
type Buffer struct {
	storage []byte
	rpos    int
	wpos    int

	// write side bit accumulator; bitsUsed counts bits already placed in
	// curBitVal, so bit position 8 (nothing pending) is bitsUsed == 0.
	bitsUsed  uint8
	curBitVal uint8

	// read side bit accumulator, independent of the write side.
	readBitsLeft uint8
	readBitVal   uint8

	onGrow GrowthObserver
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// NewWithCapacity returns an empty buffer with n bytes reserved.
func NewWithCapacity(n int) *Buffer {
	b := &Buffer{}
	if n > 0 {
		b.storage = make([]byte, 0, n)
	}
	return b
}

// FromBytes copies raw into a new buffer positioned for reading from the
// start; the write cursor sits at the end of the copied content.
func FromBytes(raw []byte) *Buffer {
	b := &Buffer{}
	if len(raw) > 0 {
		b.storage = make([]byte, len(raw))
		copy(b.storage, raw)
	}
	b.wpos = len(raw)
	return b
}

// Clone returns an independent copy. The write cursor and any pending write
// bits are kept; the read cursor and bit reader start over.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{
		wpos:      b.wpos,
		bitsUsed:  b.bitsUsed,
		curBitVal: b.curBitVal,
		onGrow:    b.onGrow,
	}
	if b.storage != nil {
		c.storage = make([]byte, len(b.storage), cap(b.storage))
		copy(c.storage, b.storage)
	}
	return c
}

// SetGrowthObserver installs fn to be notified of capacity reservations.
func (b *Buffer) SetGrowthObserver(fn GrowthObserver) {
	b.onGrow = fn
}

func (b *Buffer) Size() int     { return len(b.storage) }
func (b *Buffer) Capacity() int { return cap(b.storage) }
func (b *Buffer) Empty() bool   { return len(b.storage) == 0 }
func (b *Buffer) ReadPos() int  { return b.rpos }
func (b *Buffer) WritePos() int { return b.wpos }

// Bytes returns the buffer content. The slice aliases the buffer storage and
// stays valid only until the next mutation.
func (b *Buffer) Bytes() []byte {
	return b.storage
}

// SetReadPos moves the read cursor. n must lie in [0, WritePos()].
func (b *Buffer) SetReadPos(n int) error {
	if n < 0 || n > b.wpos {
		return &PositionError{Op: OpGet, Pos: n, Size: len(b.storage)}
	}
	b.rpos = n
	b.ResetBitReader()
	return nil
}

// SetWritePos moves the write cursor. n must lie in [0, Size()]; the read
// cursor is pulled back if it would pass the new write cursor.
func (b *Buffer) SetWritePos(n int) error {
	if n < 0 || n > len(b.storage) {
		return &PositionError{Op: OpPut, Pos: n, Size: len(b.storage)}
	}
	b.wpos = n
	if b.rpos > n {
		b.rpos = n
	}
	return nil
}

// Reserve ensures capacity for at least n bytes without touching the table.
func (b *Buffer) Reserve(n int) {
	if n <= cap(b.storage) {
		return
	}
	next := make([]byte, len(b.storage), n)
	copy(next, b.storage)
	b.storage = next
}

// Resize sets the logical size to n, zero filling any new bytes, and places
// the read cursor at 0 and the write cursor at n.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(b.storage) {
		b.storage = b.storage[:n]
	} else {
		b.grow(n)
		old := len(b.storage)
		b.storage = b.storage[:n]
		clear(b.storage[old:])
	}
	b.rpos = 0
	b.wpos = n
	b.ResetBitReader()
}

// Clear empties the storage and zeroes both cursors. Capacity is kept and
// pending write bits are left alone.
func (b *Buffer) Clear() {
	b.storage = b.storage[:0]
	b.rpos = 0
	b.wpos = 0
}

// Append copies src in at the write cursor. A nil or empty src is a caller
// bug and is reported as a SourceError.
func (b *Buffer) Append(src []byte) error {
	if src == nil {
		return &SourceError{Reason: SourceNil, Pos: b.wpos, Size: len(b.storage), Count: len(src)}
	}
	if len(src) == 0 {
		return &SourceError{Reason: SourceEmpty, Pos: b.wpos, Size: len(b.storage), Count: len(src)}
	}
	b.append(src)
	return nil
}

func (b *Buffer) append(src []byte) {
	end := b.wpos + len(src)
	b.grow(end)
	if len(b.storage) < end {
		b.storage = b.storage[:end]
	}
	copy(b.storage[b.wpos:end], src)
	b.wpos = end
}

// grow makes room for projected bytes, reserving by the growth table.
func (b *Buffer) grow(projected int) {
	if projected >= MaxSize {
		panic(fmt.Sprintf("bytebuf: buffer size %d reaches limit %d", projected, MaxSize))
	}
	if cap(b.storage) >= projected {
		return
	}
	reserved := reserveFor(projected)
	if reserved < projected {
		reserved = max(projected, 2*cap(b.storage))
		reserved = min(reserved, MaxSize)
	}
	next := make([]byte, len(b.storage), reserved)
	copy(next, b.storage)
	b.storage = next
	if b.onGrow != nil {
		b.onGrow(projected, reserved)
	}
}

func reserveFor(projected int) int {
	for _, tier := range growthTiers {
		if projected < tier.below {
			return tier.reserve
		}
	}
	return topTierReserve
}

// Put overwrites already written bytes at pos. Cursors do not move.
func (b *Buffer) Put(pos int, src []byte) error {
	if !inRange(pos, len(src), len(b.storage)) {
		return &PositionError{Op: OpPut, Pos: pos, ValueSize: len(src), Size: len(b.storage)}
	}
	if src == nil {
		return &SourceError{Reason: SourceNil, Pos: b.wpos, Size: len(b.storage), Count: len(src)}
	}
	copy(b.storage[pos:], src)
	return nil
}

// Write implements io.Writer over Append. Empty writes are accepted.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b.append(p)
	return len(p), nil
}

// WriteTo hands the full content to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if len(b.storage) == 0 {
		return 0, nil
	}
	n, err := w.Write(b.storage)
	return int64(n), err
}

// ReadBytes consumes n bytes and returns a copy of them.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	b.ResetBitReader()
	if err := b.check(OpGet, b.rpos, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b.storage[b.rpos:b.rpos+n])
	b.rpos += n
	return out, nil
}

// Skip advances the read cursor by n bytes.
func (b *Buffer) Skip(n int) error {
	b.ResetBitReader()
	if err := b.check(OpGet, b.rpos, n); err != nil {
		return err
	}
	b.rpos += n
	return nil
}

func (b *Buffer) check(op Op, pos, n int) error {
	if !inRange(pos, n, len(b.storage)) {
		return &PositionError{Op: op, Pos: pos, ValueSize: n, Size: len(b.storage)}
	}
	return nil
}

// inRange reports whether [pos, pos+n) lies within [0, size) without
// computing pos+n, which may overflow.
func inRange(pos, n, size int) bool {
	return pos >= 0 && n >= 0 && pos <= size && n <= size-pos
}
