// Package layout decodes and encodes buffers by declarative field lists.
//
// Ownership boundary:
// - field type vocabulary and layout validation
// - ordered decode/encode over bytebuf
// - opcode and name registry
package layout
