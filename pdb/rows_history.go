package pdb

import "djdb/internal/byteio"

// HistoryPlaylistRow layout: 0 u32 id, 4 u16 unknown, 6 u16 ofs_name.
type HistoryPlaylistRow struct {
	ID   uint32
	Name string

	// Unknown carries the 2-byte field at offset 4 verbatim. It is never
	// interpreted.
	Unknown []byte
}

func (r *HistoryPlaylistRow) RowID() uint32 { return r.ID }

func decodeHistoryPlaylistRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
	id, err := src.ReadU32LE(off)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated id"}
	}
	unknown, err := src.ReadBytes(off+4, 2)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated unknown field"}
	}
	ofsName, err := src.ReadU16LE(off + 6)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated name offset"}
	}
	name := decodeString(src, off, ofsName, warnf)
	return &HistoryPlaylistRow{ID: id, Name: name, Unknown: unknown}, nil
}

// HistoryEntryRow layout: 0 u32 playlist_id, 4 u32 entry_index, 8 u32
// track_id, 12 4 bytes unknown (a played-at-style ordinal in real exports,
// left uninterpreted here) — otherwise identical shape to PlaylistEntryRow,
// kept as its own type since history and live playlists are indexed
// separately.
type HistoryEntryRow struct {
	PlaylistID uint32
	EntryIndex uint32
	TrackID    uint32

	// Unknown carries the 4-byte field at offset 12 verbatim. It is never
	// interpreted.
	Unknown []byte
}

func (r *HistoryEntryRow) RowID() uint32 { return 0 }

func decodeHistoryEntryRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
	playlistID, err := src.ReadU32LE(off)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated playlist_id"}
	}
	entryIndex, err := src.ReadU32LE(off + 4)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated entry_index"}
	}
	trackID, err := src.ReadU32LE(off + 8)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated track_id"}
	}
	unknown, err := src.ReadBytes(off+12, 4)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated unknown field"}
	}
	return &HistoryEntryRow{PlaylistID: playlistID, EntryIndex: entryIndex, TrackID: trackID, Unknown: unknown}, nil
}
