package anlz

import "djdb/internal/byteio"

// Beat is one entry of a PQTZ beat grid.
type Beat struct {
	Number uint16 // 1..4
	Tempo  uint16 // BPM x 100
	TimeMs uint32
}

// BeatGrid is the decoded PQTZ tag: a sequence of beats in playback order.
type BeatGrid struct {
	Unknown1, Unknown2 uint32
	Beats              []Beat
}

// Monotonic reports whether TimeMs is non-decreasing across consecutive
// beats, as every real beat grid is expected to be.
func (g *BeatGrid) Monotonic() bool {
	for i := 1; i < len(g.Beats); i++ {
		if g.Beats[i].TimeMs < g.Beats[i-1].TimeMs {
			return false
		}
	}
	return true
}

// DecodeBeatGrid parses a PQTZ tag body: (unknown1, unknown2, len_beats),
// then len_beats entries of (beat_number u16 BE, tempo u16 BE, time_ms u32 BE).
func DecodeBeatGrid(body *byteio.Source) (*BeatGrid, error) {
	u1, err := body.ReadU32BE(0)
	if err != nil {
		return nil, err
	}
	u2, err := body.ReadU32BE(4)
	if err != nil {
		return nil, err
	}
	lenBeats, err := body.ReadU32BE(8)
	if err != nil {
		return nil, err
	}

	g := &BeatGrid{Unknown1: u1, Unknown2: u2, Beats: make([]Beat, 0, lenBeats)}
	const entrySize = 8
	for i := uint32(0); i < lenBeats; i++ {
		off := 12 + int(i)*entrySize
		number, err := body.ReadU16BE(off)
		if err != nil {
			return nil, err
		}
		tempo, err := body.ReadU16BE(off + 2)
		if err != nil {
			return nil, err
		}
		timeMs, err := body.ReadU32BE(off + 4)
		if err != nil {
			return nil, err
		}
		g.Beats = append(g.Beats, Beat{Number: number, Tempo: tempo, TimeMs: timeMs})
	}
	return g, nil
}
