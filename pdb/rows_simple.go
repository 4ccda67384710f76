package pdb

import "djdb/internal/byteio"

// Fixed layout shared by the simple named-entity rows (all little-endian,
// offsets relative to the row start):
//
//	0  u32  id
//	4  u16  subtype (unused, retained verbatim)
//	6  u16  ofs_name
//	8  u16  ofs_long_name (0 = absent)
const simpleRowFixedSize = 10

type simpleRow struct {
	ID       uint32
	Subtype  uint16
	Name     string
	LongName string
}

func decodeSimpleRow(src *byteio.Source, off int, warnf Warnf) (simpleRow, error) {
	id, err := src.ReadU32LE(off)
	if err != nil {
		return simpleRow{}, &MalformedRow{Offset: off, Reason: "truncated id"}
	}
	subtype, err := src.ReadU16LE(off + 4)
	if err != nil {
		return simpleRow{}, &MalformedRow{Offset: off, Reason: "truncated subtype"}
	}
	ofsName, err := src.ReadU16LE(off + 6)
	if err != nil {
		return simpleRow{}, &MalformedRow{Offset: off, Reason: "truncated name offset"}
	}
	ofsLongName, err := src.ReadU16LE(off + 8)
	if err != nil {
		return simpleRow{}, &MalformedRow{Offset: off, Reason: "truncated long-name offset"}
	}

	name := decodeString(src, off, ofsName, warnf)
	longName := decodeString(src, off, ofsLongName, warnf)

	return simpleRow{ID: id, Subtype: subtype, Name: name, LongName: longName}, nil
}

type ArtistRow struct {
	ID   uint32
	Name string
}

func (r *ArtistRow) RowID() uint32 { return r.ID }

func decodeArtistRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
	s, err := decodeSimpleRow(src, off, warnf)
	if err != nil {
		return nil, err
	}
	return &ArtistRow{ID: s.ID, Name: s.Name}, nil
}

type AlbumRow struct {
	ID       uint32
	Name     string
	LongName string
}

func (r *AlbumRow) RowID() uint32 { return r.ID }

func decodeAlbumRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
	s, err := decodeSimpleRow(src, off, warnf)
	if err != nil {
		return nil, err
	}
	return &AlbumRow{ID: s.ID, Name: s.Name, LongName: s.LongName}, nil
}

type LabelRow struct {
	ID   uint32
	Name string
}

func (r *LabelRow) RowID() uint32 { return r.ID }

func decodeLabelRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
	s, err := decodeSimpleRow(src, off, warnf)
	if err != nil {
		return nil, err
	}
	return &LabelRow{ID: s.ID, Name: s.Name}, nil
}

type GenreRow struct {
	ID   uint32
	Name string
}

func (r *GenreRow) RowID() uint32 { return r.ID }

func decodeGenreRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
	s, err := decodeSimpleRow(src, off, warnf)
	if err != nil {
		return nil, err
	}
	return &GenreRow{ID: s.ID, Name: s.Name}, nil
}

type ColorRow struct {
	ID   uint32
	Name string
}

func (r *ColorRow) RowID() uint32 { return r.ID }

func decodeColorRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
	s, err := decodeSimpleRow(src, off, warnf)
	if err != nil {
		return nil, err
	}
	return &ColorRow{ID: s.ID, Name: s.Name}, nil
}

type KeyRow struct {
	ID   uint32
	Name string
}

func (r *KeyRow) RowID() uint32 { return r.ID }

func decodeKeyRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
	s, err := decodeSimpleRow(src, off, warnf)
	if err != nil {
		return nil, err
	}
	return &KeyRow{ID: s.ID, Name: s.Name}, nil
}

// ArtworkRow layout: 0 u32 id, 4 u16 ofs_path.
type ArtworkRow struct {
	ID   uint32
	Path string
}

func (r *ArtworkRow) RowID() uint32 { return r.ID }

func decodeArtworkRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
	id, err := src.ReadU32LE(off)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated id"}
	}
	ofsPath, err := src.ReadU16LE(off + 4)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated path offset"}
	}
	path := decodeString(src, off, ofsPath, warnf)
	return &ArtworkRow{ID: id, Path: path}, nil
}
