package anlz

import (
	"golang.org/x/text/encoding/unicode"

	"djdb/internal/byteio"
)

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// DecodePath parses a PPTH tag body: (len_path u32 BE, path as UTF-16BE,
// NUL-terminated).
func DecodePath(body *byteio.Source) (string, error) {
	lenPath, err := body.ReadU32BE(0)
	if err != nil {
		return "", err
	}
	raw, err := body.ReadBytes(4, int(lenPath))
	if err != nil {
		return "", err
	}
	s, err := utf16BE.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return stripTrailingNUL(string(s)), nil
}

func stripTrailingNUL(s string) string {
	if n := len(s); n > 0 && s[n-1] == 0 {
		s = s[:n-1]
	}
	return s
}
