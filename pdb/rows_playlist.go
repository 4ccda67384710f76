package pdb

import "djdb/internal/byteio"

// PlaylistEntryRow layout: 0 u32 playlist_id, 4 u32 entry_index, 8 u32
// track_id. A link row: it has no single primary key of its own.
type PlaylistEntryRow struct {
	PlaylistID uint32
	EntryIndex uint32
	TrackID    uint32
}

func (r *PlaylistEntryRow) RowID() uint32 { return 0 }

func decodePlaylistEntryRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
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
	return &PlaylistEntryRow{PlaylistID: playlistID, EntryIndex: entryIndex, TrackID: trackID}, nil
}

// PlaylistTreeRow layout: 0 u32 id, 4 u32 parent_id, 8 u32 sort_order,
// 12 u8 is_folder, 13 u8 pad, 14 u16 ofs_name.
type PlaylistTreeRow struct {
	ID        uint32
	ParentID  uint32
	SortOrder uint32
	IsFolder  bool
	Name      string
}

func (r *PlaylistTreeRow) RowID() uint32 { return r.ID }

func decodePlaylistTreeRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
	id, err := src.ReadU32LE(off)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated id"}
	}
	parentID, err := src.ReadU32LE(off + 4)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated parent_id"}
	}
	sortOrder, err := src.ReadU32LE(off + 8)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated sort_order"}
	}
	isFolder, err := src.ReadU8(off + 12)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated is_folder flag"}
	}
	ofsName, err := src.ReadU16LE(off + 14)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated name offset"}
	}
	name := decodeString(src, off, ofsName, warnf)
	return &PlaylistTreeRow{ID: id, ParentID: parentID, SortOrder: sortOrder, IsFolder: isFolder != 0, Name: name}, nil
}
