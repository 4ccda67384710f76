package pdb

import (
	"djdb/internal/byteio"
	"djdb/internal/dsqlstring"
)

// Row is the common surface every decoded row type implements. Concrete row
// types (TrackRow, ArtistRow, ...) carry the table-specific fields; Row only
// guarantees enough to let generic traversal code log and count.
type Row interface {
	// RowID returns the row's primary key, or 0 for row types that have no
	// single identifying key (e.g. TagTrackRow, a pure link row).
	RowID() uint32
}

// Warnf is called for every recoverable, non-fatal condition encountered
// while decoding a row: an unknown DeviceSqlString length_and_kind byte, or
// similar. A nil Warnf is treated as a no-op.
type Warnf func(format string, args ...interface{})

// rowDecoder decodes one row's fields starting at rowOffset within src (a
// page's byte range). It must never read past the row's own bounds except
// through DeviceSqlString offsets, which are validated independently.
type rowDecoder func(src *byteio.Source, rowOffset int, warnf Warnf) (Row, error)

var rowDecoders = map[TableType]rowDecoder{
	TypeTracks:           decodeTrackRow,
	TypeArtists:          decodeArtistRow,
	TypeAlbums:           decodeAlbumRow,
	TypeLabels:           decodeLabelRow,
	TypeGenres:           decodeGenreRow,
	TypeColors:           decodeColorRow,
	TypeKeys:             decodeKeyRow,
	TypeArtwork:          decodeArtworkRow,
	TypePlaylistEntries:  decodePlaylistEntryRow,
	TypePlaylistTree:     decodePlaylistTreeRow,
	TypeHistoryPlaylists: decodeHistoryPlaylistRow,
	TypeHistoryEntries:   decodeHistoryEntryRow,
	TypeTags:             decodeTagRow,
	TypeTagTracks:        decodeTagTrackRow,
}

// decodeString reads a DeviceSqlString whose body starts at rowOffset+ofs,
// relative to the row. An ofs of 0 denotes an absent optional field and
// yields the empty string without touching src.
//
// A string-offset slot that points past the row/page end yields an empty
// string rather than failing the enclosing row decode, and is reported
// through warnf; an unknown length_and_kind byte is likewise recoverable
// and reported the same way.
func decodeString(src *byteio.Source, rowOffset int, ofs uint16, warnf Warnf) string {
	if ofs == 0 {
		return ""
	}
	s, _, warn := dsqlstring.Decode(src, rowOffset+int(ofs))
	if warn == nil {
		return s
	}
	if uv, ok := warn.(*dsqlstring.UnknownVariant); ok {
		if warnf != nil {
			warnf("pdb: unknown DeviceSqlString length_and_kind %#x at offset %d", uv.LengthAndKind, rowOffset+int(ofs))
		}
		return ""
	}
	// *byteio.Truncated, or any other short-read: the offset pointed past
	// the row/page bounds.
	if warnf != nil {
		warnf("pdb: string offset %d past row/page bounds at row %d: %v", ofs, rowOffset, warn)
	}
	return ""
}
