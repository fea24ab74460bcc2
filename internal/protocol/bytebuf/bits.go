package bytebuf

// BitPosition reports how many bits of the pending write byte are still
// free, 8 meaning nothing is pending.
func (b *Buffer) BitPosition() int {
	return 8 - int(b.bitsUsed)
}

// WriteBit packs v into the pending byte, most significant bit first, and
// appends the byte once all 8 bits are used. It returns v.
func (b *Buffer) WriteBit(v bool) bool {
	b.bitsUsed++
	if v {
		b.curBitVal |= 1 << (8 - b.bitsUsed)
	}
	if b.bitsUsed == 8 {
		b.append([]byte{b.curBitVal})
		b.bitsUsed = 0
		b.curBitVal = 0
	}
	return v
}

// WriteBits packs the low n bits of v, highest first. n is clamped to 32.
func (b *Buffer) WriteBits(v uint32, n int) {
	n = min(n, 32)
	for i := n - 1; i >= 0; i-- {
		b.WriteBit((v>>uint(i))&1 == 1)
	}
}

// FlushBits appends the partially filled pending byte, low bits zero. It is
// a no-op when nothing is pending.
func (b *Buffer) FlushBits() {
	if b.bitsUsed == 0 {
		return
	}
	b.append([]byte{b.curBitVal})
	b.bitsUsed = 0
	b.curBitVal = 0
}

// ReadBit returns the next bit, consuming a fresh byte from the read cursor
// when the current one is exhausted.
func (b *Buffer) ReadBit() (bool, error) {
	if b.readBitsLeft == 0 {
		if err := b.check(OpGet, b.rpos, 1); err != nil {
			return false, err
		}
		b.readBitVal = b.storage[b.rpos]
		b.rpos++
		b.readBitsLeft = 8
	}
	b.readBitsLeft--
	return (b.readBitVal>>b.readBitsLeft)&1 == 1, nil
}

// ReadBits reads n bits, highest first, into the low bits of the result.
func (b *Buffer) ReadBits(n int) (uint32, error) {
	n = min(n, 32)
	var v uint32
	for i := n - 1; i >= 0; i-- {
		bit, err := b.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit {
			v |= 1 << uint(i)
		}
	}
	return v, nil
}

// ResetBitReader drops whatever remains of the byte being read bit by bit.
func (b *Buffer) ResetBitReader() {
	b.readBitsLeft = 0
	b.readBitVal = 0
}
