package anlz

import "djdb/internal/byteio"

// CueKind distinguishes a single hot cue/memory point from a loop.
type CueKind uint8

const (
	CuePoint CueKind = 1
	CueLoop  CueKind = 2
)

// CueEntry is one decoded cue, whether from the legacy PCOB list or the
// extended PCO2 list. Fields only PCO2 carries (Comment, color, quantized
// loop) are zero-valued when decoded from PCOB, or when a PCO2 entry was
// truncated before they were reached.
type CueEntry struct {
	HotCue     uint32
	Status     uint32
	Kind       CueKind
	TimeMs     uint32
	LoopTimeMs uint32 // only meaningful when Kind == CueLoop

	// PCO2 only:
	Comment        string
	HasColor       bool
	Palette, R, G, B uint8
	HasQuantizeLoop  bool
	LoopNumerator    uint16
	LoopDenominator  uint16
}

// CueList is the decoded body of a PCOB or PCO2 tag.
type CueList struct {
	IsHotCueList bool // type == 1; false means memory cues
	MemoryCount  uint32
	Entries      []CueEntry
}

const subBlockHeaderSize = 8 // fourcc(4) + len_tag(4)

func readSubBlockHeader(body *byteio.Source, off int) (fourcc string, lenTag int, err error) {
	raw, err := body.ReadBytes(off, fourCCLen)
	if err != nil {
		return "", 0, err
	}
	lt, err := body.ReadU32BE(off + 4)
	if err != nil {
		return "", 0, err
	}
	return string(raw), int(lt), nil
}

// DecodePCOB parses a legacy cue list: header (type, unknown, num_cues u16 BE
// — read as exactly 16 bits at offset 2, so the bytes after it never widen
// the count into a 32-bit value — memory_count u32 BE), then num_cues
// fixed-size PCPT sub-blocks.
func DecodePCOB(body *byteio.Source) (*CueList, error) {
	typ, err := body.ReadU8(0)
	if err != nil {
		return nil, err
	}
	numCues, err := body.ReadU16BE(2)
	if err != nil {
		return nil, err
	}
	memoryCount, err := body.ReadU32BE(4)
	if err != nil {
		return nil, err
	}

	cl := &CueList{IsHotCueList: typ == 1, MemoryCount: memoryCount}
	off := 8
	for i := uint16(0); i < numCues; i++ {
		fourcc, lenTag, err := readSubBlockHeader(body, off)
		if err != nil {
			return nil, err
		}
		if fourcc != "PCPT" || lenTag < subBlockHeaderSize {
			// Malformed individual entry: skip it, keep going.
			off += lenTag
			if lenTag <= 0 {
				break
			}
			continue
		}
		entry, err := decodePCPTBody(body, off+subBlockHeaderSize)
		if err == nil {
			cl.Entries = append(cl.Entries, entry)
		}
		off += lenTag
	}
	return cl, nil
}

func decodePCPTBody(body *byteio.Source, off int) (CueEntry, error) {
	hotCue, err := body.ReadU32BE(off)
	if err != nil {
		return CueEntry{}, err
	}
	status, err := body.ReadU32BE(off + 4)
	if err != nil {
		return CueEntry{}, err
	}
	kind, err := body.ReadU8(off + 8)
	if err != nil {
		return CueEntry{}, err
	}
	timeMs, err := body.ReadU32BE(off + 12)
	if err != nil {
		return CueEntry{}, err
	}
	loopTimeMs, err := body.ReadU32BE(off + 16)
	if err != nil {
		return CueEntry{}, err
	}
	return CueEntry{HotCue: hotCue, Status: status, Kind: CueKind(kind), TimeMs: timeMs, LoopTimeMs: loopTimeMs}, nil
}

// DecodePCO2 parses the extended cue list: same header shape as PCOB, then
// num_cues variable-length PCP2 sub-blocks, each possibly truncated before
// its comment or color fields.
func DecodePCO2(body *byteio.Source) (*CueList, error) {
	typ, err := body.ReadU8(0)
	if err != nil {
		return nil, err
	}
	numCues, err := body.ReadU16BE(2)
	if err != nil {
		return nil, err
	}
	memoryCount, err := body.ReadU32BE(4)
	if err != nil {
		return nil, err
	}

	cl := &CueList{IsHotCueList: typ == 1, MemoryCount: memoryCount}
	off := 8
	for i := uint16(0); i < numCues; i++ {
		fourcc, lenTag, err := readSubBlockHeader(body, off)
		if err != nil {
			return nil, err
		}
		if fourcc != "PCP2" || lenTag < subBlockHeaderSize {
			off += lenTag
			if lenTag <= 0 {
				break
			}
			continue
		}
		entry := decodePCP2Body(body, off+subBlockHeaderSize, off+lenTag)
		cl.Entries = append(cl.Entries, entry)
		off += lenTag
	}
	return cl, nil
}

// decodePCP2Body reads as much of a PCP2 entry as fits before end, returning
// a partial CueEntry rather than an error when the entry was truncated.
func decodePCP2Body(body *byteio.Source, off, end int) CueEntry {
	var e CueEntry
	read := func(n int, f func()) bool {
		if off+n > end {
			return false
		}
		f()
		return true
	}

	if !read(4, func() { v, _ := body.ReadU32BE(off); e.HotCue = v; off += 4 }) {
		return e
	}
	if !read(4, func() { v, _ := body.ReadU32BE(off); e.Status = v; off += 4 }) {
		return e
	}
	if !read(4, func() { v, _ := body.ReadU8(off); e.Kind = CueKind(v); off += 4 }) {
		return e
	}
	if !read(4, func() { v, _ := body.ReadU32BE(off); e.TimeMs = v; off += 4 }) {
		return e
	}
	if !read(4, func() { v, _ := body.ReadU32BE(off); e.LoopTimeMs = v; off += 4 }) {
		return e
	}
	if !read(4, func() {
		palette, _ := body.ReadU8(off)
		r, _ := body.ReadU8(off + 1)
		g, _ := body.ReadU8(off + 2)
		b, _ := body.ReadU8(off + 3)
		e.HasColor = true
		e.Palette, e.R, e.G, e.B = palette, r, g, b
		off += 4
	}) {
		return e
	}
	if !read(4, func() {
		num, _ := body.ReadU16BE(off)
		den, _ := body.ReadU16BE(off + 2)
		e.HasQuantizeLoop = true
		e.LoopNumerator, e.LoopDenominator = num, den
		off += 4
	}) {
		return e
	}

	if off < end {
		raw, err := body.ReadBytes(off, end-off)
		if err == nil {
			s, err := utf16BE.NewDecoder().Bytes(raw)
			if err == nil {
				e.Comment = stripTrailingNUL(string(s))
			}
		}
	}
	return e
}
