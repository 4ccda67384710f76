package dsqlstring

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// EncodeShortASCII re-encodes s as a short-ASCII DeviceSqlString, for
// exercising the decode/re-encode round-trip property. The short-ASCII
// variant stores no terminating NUL; length_and_kind packs the content
// length directly (plus one, to keep the encoded byte odd and in range).
func EncodeShortASCII(s string) []byte {
	out := make([]byte, 1+len(s))
	out[0] = byte((len(s)+1)<<1) | 1
	copy(out[1:], s)
	return out
}

// EncodeLongASCII re-encodes s as a long-ASCII DeviceSqlString.
func EncodeLongASCII(s string) []byte {
	const header = 1 + 2 + 1
	length := header + len(s) + 1
	out := make([]byte, length)
	out[0] = 0x40
	binary.LittleEndian.PutUint16(out[1:], uint16(length))
	copy(out[header:], s)
	return out
}

var utf16LEEncoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodeLongUTF16LE re-encodes s as a long-UTF16LE DeviceSqlString.
func EncodeLongUTF16LE(s string) []byte {
	enc, _ := utf16LEEncoder.NewEncoder().Bytes([]byte(s))
	const header = 1 + 2 + 1
	length := header + len(enc) + 2
	out := make([]byte, length)
	out[0] = 0x90
	binary.LittleEndian.PutUint16(out[1:], uint16(length))
	copy(out[header:], enc)
	return out
}
