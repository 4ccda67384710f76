package anlz

import "djdb/internal/byteio"

// RawTag wraps a tag body this package does not interpret further, exposing
// only the raw bytes. PVBR (the VBR seek index) is opaque by design.
type RawTag struct {
	data []byte
}

func (t RawTag) Raw() []byte { return t.data }

// DecodeVBR returns the PVBR body untouched.
func DecodeVBR(body *byteio.Source) (RawTag, error) {
	data, err := body.ReadBytes(0, body.Len())
	if err != nil {
		return RawTag{}, err
	}
	return RawTag{data: data}, nil
}

// MonoColumn is one column of a monochrome waveform preview or detail
// rendition: a height and a whiteness/accent flag.
type MonoColumn struct {
	Height int
	White  bool
}

// MonoWaveform is a decoded PWAV/PWV2/PWV3 tag.
type MonoWaveform struct {
	Columns []MonoColumn
	raw     []byte
}

func (w *MonoWaveform) Raw() []byte { return w.raw }

func decodeMonoColumn(b byte) MonoColumn {
	return MonoColumn{Height: int(b & 0x1F), White: b&0xE0 != 0}
}

// DecodePWAV decodes the 400-byte monochrome preview: each byte's low 5 bits
// are height, high 3 bits a whiteness/accent flag. A body shorter than 400
// bytes is only accepted when every byte present is zero (a vestigial,
// effectively-empty tag); any other short body is rejected.
func DecodePWAV(body *byteio.Source) (*MonoWaveform, error) {
	const want = 400
	raw, err := body.ReadBytes(0, body.Len())
	if err != nil {
		return nil, err
	}
	if len(raw) != want && !isAllZero(raw) {
		return nil, &MalformedTag{FourCC: "PWAV", Reason: "data length is neither 400 nor vestigial-empty"}
	}
	w := &MonoWaveform{raw: raw}
	for _, b := range raw {
		w.Columns = append(w.Columns, decodeMonoColumn(b))
	}
	return w, nil
}

// DecodePWV2 decodes the 100-byte monochrome detail rendition: each byte's
// low 4 bits are height.
func DecodePWV2(body *byteio.Source) (*MonoWaveform, error) {
	const want = 100
	raw, err := body.ReadBytes(0, body.Len())
	if err != nil {
		return nil, err
	}
	if len(raw) != want && !isAllZero(raw) {
		return nil, &MalformedTag{FourCC: "PWV2", Reason: "data length is neither 100 nor vestigial-empty"}
	}
	w := &MonoWaveform{raw: raw}
	for _, b := range raw {
		w.Columns = append(w.Columns, MonoColumn{Height: int(b & 0x0F)})
	}
	return w, nil
}

// DecodePWV3 decodes the variable-length monochrome detail rendition: header
// (len_entry_bytes=1, len_entries, unknown), then len_entries bytes encoded
// like PWAV.
func DecodePWV3(body *byteio.Source) (*MonoWaveform, error) {
	lenEntryBytes, err := body.ReadU8(0)
	if err != nil {
		return nil, err
	}
	lenEntries, err := body.ReadU32BE(1)
	if err != nil {
		return nil, err
	}
	if lenEntryBytes != 1 {
		return nil, &MalformedTag{FourCC: "PWV3", Reason: "unexpected len_entry_bytes"}
	}
	raw, err := body.ReadBytes(9, int(lenEntries))
	if err != nil {
		return nil, err
	}
	w := &MonoWaveform{raw: raw}
	for _, b := range raw {
		w.Columns = append(w.Columns, decodeMonoColumn(b))
	}
	return w, nil
}

// ColorColumn is one column of a PWV5 color waveform rendition.
type ColorColumn struct {
	Height  int
	R, G, B int
}

// ColorWaveform is a decoded PWV5 (detail) tag.
type ColorWaveform struct {
	Columns []ColorColumn
	raw     []byte
}

func (w *ColorWaveform) Raw() []byte { return w.raw }

// WaveformSegment is one of the five stacked (height, hue) bands making up a
// PWV4 column.
type WaveformSegment struct {
	Height int
	Hue    int
}

// PreviewColumn is one column of a PWV4 color preview: five vertically
// stacked segments, each with its own height and hue, plus a trailing
// reserved byte preserved verbatim.
type PreviewColumn struct {
	Segments [5]WaveformSegment
	Unknown  byte
}

// ColorPreviewWaveform is a decoded PWV4 tag.
type ColorPreviewWaveform struct {
	Columns []PreviewColumn
	raw     []byte
}

func (w *ColorPreviewWaveform) Raw() []byte { return w.raw }

// DecodePWV4 decodes the 6-bytes-per-column color preview: five segment
// bytes, each packing a 3-bit hue in the top bits and a 5-bit height in the
// bottom bits, followed by one reserved byte, carried verbatim and never
// interpreted.
func DecodePWV4(body *byteio.Source) (*ColorPreviewWaveform, error) {
	const entryBytes = 6
	lenEntryBytes, err := body.ReadU8(0)
	if err != nil {
		return nil, err
	}
	lenEntries, err := body.ReadU32BE(1)
	if err != nil {
		return nil, err
	}
	if int(lenEntryBytes) != entryBytes {
		return nil, &MalformedTag{FourCC: "PWV4", Reason: "unexpected len_entry_bytes"}
	}
	raw, err := body.ReadBytes(9, int(lenEntries)*entryBytes)
	if err != nil {
		return nil, err
	}
	w := &ColorPreviewWaveform{raw: raw}
	for i := 0; i+entryBytes <= len(raw); i += entryBytes {
		var col PreviewColumn
		for s := 0; s < 5; s++ {
			b := raw[i+s]
			col.Segments[s] = WaveformSegment{Hue: int(b>>5) & 0x7, Height: int(b & 0x1F)}
		}
		col.Unknown = raw[i+5]
		w.Columns = append(w.Columns, col)
	}
	return w, nil
}

// DecodePWV5 decodes the 2-bytes-per-column color detail rendition: a
// big-endian 16-bit value packed R(3)|G(3)|B(3)|height(5)|unused(2).
func DecodePWV5(body *byteio.Source) (*ColorWaveform, error) {
	lenEntryBytes, err := body.ReadU8(0)
	if err != nil {
		return nil, err
	}
	lenEntries, err := body.ReadU32BE(1)
	if err != nil {
		return nil, err
	}
	if lenEntryBytes != 2 {
		return nil, &MalformedTag{FourCC: "PWV5", Reason: "unexpected len_entry_bytes"}
	}
	raw, err := body.ReadBytes(9, int(lenEntries)*2)
	if err != nil {
		return nil, err
	}
	w := &ColorWaveform{raw: raw}
	for i := 0; i < len(raw); i += 2 {
		v := uint16(raw[i])<<8 | uint16(raw[i+1])
		r := int(v>>13) & 0x7
		g := int(v>>10) & 0x7
		b := int(v>>7) & 0x7
		height := int(v>>2) & 0x1F
		w.Columns = append(w.Columns, ColorColumn{Height: height, R: r, G: g, B: b})
	}
	return w, nil
}

// BandColumn is one column of a PWV6/PWV7 three-band waveform rendition.
type BandColumn struct {
	Mid, High, Low int
}

// BandWaveform is a decoded PWV6 (preview) or PWV7 (detail) tag.
type BandWaveform struct {
	Columns []BandColumn
	raw     []byte
}

func (w *BandWaveform) Raw() []byte { return w.raw }

// DecodePWV6 decodes the three-band preview: header (len_entry_bytes=3,
// len_entries), then 3 bytes per column: mid, high, low heights.
func DecodePWV6(body *byteio.Source) (*BandWaveform, error) {
	return decodeBandWaveform(body, "PWV6", 5)
}

// DecodePWV7 decodes the three-band detail rendition: as PWV6 but with a
// 4-byte unknown header field preceding the entries.
func DecodePWV7(body *byteio.Source) (*BandWaveform, error) {
	return decodeBandWaveform(body, "PWV7", 9)
}

func decodeBandWaveform(body *byteio.Source, fourcc string, headerSize int) (*BandWaveform, error) {
	lenEntryBytes, err := body.ReadU8(0)
	if err != nil {
		return nil, err
	}
	lenEntries, err := body.ReadU32BE(1)
	if err != nil {
		return nil, err
	}
	if lenEntryBytes != 3 {
		return nil, &MalformedTag{FourCC: fourcc, Reason: "unexpected len_entry_bytes"}
	}
	raw, err := body.ReadBytes(headerSize, int(lenEntries)*3)
	if err != nil {
		return nil, err
	}
	w := &BandWaveform{raw: raw}
	for i := 0; i+3 <= len(raw); i += 3 {
		w.Columns = append(w.Columns, BandColumn{Mid: int(raw[i]), High: int(raw[i+1]), Low: int(raw[i+2])})
	}
	return w, nil
}

func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
