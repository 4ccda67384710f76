package pdb

// TableType identifies one of the closed set of logical tables a collection
// database can declare. TAGS and TAG_TRACKS only ever appear in the
// extension-file variant (exportExt.pdb).
type TableType uint32

const (
	TypeTracks TableType = iota
	TypeArtists
	TypeAlbums
	TypeLabels
	TypeGenres
	TypeColors
	TypeKeys
	TypeArtwork
	TypePlaylistEntries
	TypePlaylistTree
	TypeHistoryPlaylists
	TypeHistoryEntries
	TypeTags
	TypeTagTracks
)

var tableTypeNames = map[TableType]string{
	TypeTracks:           "TRACKS",
	TypeArtists:          "ARTISTS",
	TypeAlbums:           "ALBUMS",
	TypeLabels:           "LABELS",
	TypeGenres:           "GENRES",
	TypeColors:           "COLORS",
	TypeKeys:             "KEYS",
	TypeArtwork:          "ARTWORK",
	TypePlaylistEntries:  "PLAYLIST_ENTRIES",
	TypePlaylistTree:     "PLAYLIST_TREE",
	TypeHistoryPlaylists: "HISTORY_PLAYLISTS",
	TypeHistoryEntries:   "HISTORY_ENTRIES",
	TypeTags:             "TAGS",
	TypeTagTracks:        "TAG_TRACKS",
}

func (t TableType) String() string {
	if name, ok := tableTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Table is a table descriptor: a type code plus the first and last page of
// its page chain.
type Table struct {
	Type      TableType
	FirstPage uint32
	LastPage  uint32
}
