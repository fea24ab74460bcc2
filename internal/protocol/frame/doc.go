// Package frame reads and writes capture streams of opcode-tagged packets.
//
// Ownership boundary:
// - fixed capture header codec
// - body size limits
// - io.Reader/io.Writer framing of packet.Packet
package frame
