// Package packet owns opcode-tagged messages built on bytebuf.
//
// Ownership boundary:
// - packet identity (opcode) and raw content hand-off
// - message templates built once and cloned per recipient with patched slots
//
// Recipient selection stays with the caller.
package packet
