// Package bytebuf owns the wire buffer messages are built in and parsed from.
//
// Ownership boundary:
// - byte storage, read/write cursors and the capacity growth table
// - bit packing (MSB first) over the byte store
// - little-endian typed scalars, zero-terminated strings, packed time
// - bounds/source/value errors and read-only dumps
//
// A Buffer is owned by one goroutine at a time. Clone it before handing a
// copy to another goroutine.
package bytebuf
