package pdb

import "djdb/internal/byteio"

// TagRow (extension file only) layout: 0 u32 id, 4 u32 category_id,
// 8 u32 category_pos, 12 u8 is_category, 13 u8 pad, 14 u16 ofs_name.
type TagRow struct {
	ID          uint32
	CategoryID  uint32
	CategoryPos uint32
	IsCategory  bool
	Name        string
}

func (r *TagRow) RowID() uint32 { return r.ID }

func decodeTagRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
	id, err := src.ReadU32LE(off)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated id"}
	}
	categoryID, err := src.ReadU32LE(off + 4)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated category_id"}
	}
	categoryPos, err := src.ReadU32LE(off + 8)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated category_pos"}
	}
	isCategory, err := src.ReadU8(off + 12)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated is_category flag"}
	}
	ofsName, err := src.ReadU16LE(off + 14)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated name offset"}
	}
	name := decodeString(src, off, ofsName, warnf)
	return &TagRow{ID: id, CategoryID: categoryID, CategoryPos: categoryPos, IsCategory: isCategory != 0, Name: name}, nil
}

// TagTrackRow (extension file only) layout: 0 u32 tag_id, 4 u32 track_id — a
// pure link row with no identifying key of its own.
type TagTrackRow struct {
	TagID   uint32
	TrackID uint32
}

func (r *TagTrackRow) RowID() uint32 { return 0 }

func decodeTagTrackRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
	tagID, err := src.ReadU32LE(off)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated tag_id"}
	}
	trackID, err := src.ReadU32LE(off + 4)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated track_id"}
	}
	return &TagTrackRow{TagID: tagID, TrackID: trackID}, nil
}
