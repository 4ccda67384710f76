package byteio

import (
	"bytes"

	"github.com/icza/bitio"
)

// reverseBits maps a byte to its bit-reversed form, precomputed once.
var reverseBits = func() (table [256]byte) {
	for i := 0; i < 256; i++ {
		b := byte(i)
		var r byte
		for bit := 0; bit < 8; bit++ {
			r <<= 1
			r |= b & 1
			b >>= 1
		}
		table[i] = r
	}
	return table
}()

// readBitsLSB decodes n bits starting at bitOffset (0 = least significant
// bit of buf[0]), reading LSB-first within each byte and byte-by-byte in
// order; the first bit read becomes bit 0 of the returned value. icza/bitio's
// Reader fetches bits MSB-first; bit-reversing each input byte turns each
// single-bit fetch into the next LSB-first bit of the original byte, and
// fetching one bit at a time (rather than n at once) keeps bitio's own
// MSB-first packing of multi-bit reads out of the result.
func readBitsLSB(buf []byte, bitOffset, n uint) uint64 {
	rev := make([]byte, len(buf))
	for i, b := range buf {
		rev[i] = reverseBits[b]
	}
	br := bitio.NewReader(bytes.NewReader(rev))
	if bitOffset > 0 {
		br.ReadBits(byte(bitOffset))
	}
	var v uint64
	for i := uint(0); i < n; i++ {
		bit, _ := br.ReadBits(1)
		v |= bit << i
	}
	return v
}
