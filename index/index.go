// Package index turns the decoded rows of a collection database into a
// frozen, queryable snapshot: one primary ID map per table, plus the
// secondary lookups (by title, by name, by foreign key, playlists as dense
// track-ID lists) that make the decoded rows actually useful. It has no
// notion of pages or byte offsets; package pdb's job ends where this one
// begins.
package index

import (
	"sort"
	"strings"

	"djdb/pdb"
)

// Warnf is called for every non-fatal inconsistency found while building an
// Index: a duplicate row ID, a dangling foreign key, or similar. A nil Warnf
// silently drops these.
type Warnf func(format string, args ...interface{})

// Stats summarizes what Build observed, independent of and in addition to
// the indexes themselves.
type Stats struct {
	RowCounts    map[pdb.TableType]int
	DuplicateIDs int
	DanglingFKs  int
}

// Index is the frozen result of scanning every table in a collection
// database. All maps and slices are safe for concurrent read-only use; Build
// is the only place that ever mutates them.
type Index struct {
	Tracks     map[uint32]*pdb.TrackRow
	Artists    map[uint32]*pdb.ArtistRow
	Albums     map[uint32]*pdb.AlbumRow
	Labels     map[uint32]*pdb.LabelRow
	Genres     map[uint32]*pdb.GenreRow
	Colors     map[uint32]*pdb.ColorRow
	Keys       map[uint32]*pdb.KeyRow
	Artwork    map[uint32]*pdb.ArtworkRow
	Playlists  map[uint32]*pdb.PlaylistTreeRow
	History    map[uint32]*pdb.HistoryPlaylistRow
	Tags       map[uint32]*pdb.TagRow

	TracksByTitle          map[string][]uint32
	TracksByArtist         map[uint32][]uint32
	TracksByComposer       map[uint32][]uint32
	TracksByOriginalArtist map[uint32][]uint32
	TracksByRemixer        map[uint32][]uint32
	TracksByAlbum          map[uint32][]uint32
	TracksByGenre          map[uint32][]uint32

	ArtistsByName map[string][]uint32
	AlbumsByName  map[string][]uint32
	LabelsByName  map[string][]uint32
	GenresByName  map[string][]uint32
	ColorsByName  map[string][]uint32
	KeysByName    map[string][]uint32

	AlbumsByArtist map[uint32][]uint32

	PlaylistTracks map[uint32][]uint32 // playlist ID -> dense ordered track IDs
	PlaylistTree   map[uint32][]uint32 // parent folder ID -> ordered child playlist-tree IDs
	HistoryTracks  map[uint32][]uint32

	TagTracks      map[uint32][]uint32 // tag ID -> track IDs
	TrackTags      map[uint32][]uint32 // track ID -> tag IDs
	TagCategories  []uint32            // category IDs ordered by category_pos
	TagsByCategory map[uint32][]uint32 // category ID -> tag IDs ordered by category_pos

	Stats Stats
}

// Source is the subset of pdb.File that Build needs: a table lookup and the
// ability to walk a table's rows. Accepting an interface rather than a
// concrete *pdb.File lets tests build an Index from synthetic row sets
// without constructing a real page-backed file.
type Source interface {
	Table(t pdb.TableType) (pdb.Table, bool)
	IterRows(t pdb.Table, warnf pdb.Warnf, yield func(pdb.Row) error) error
}

// Build scans every table Source declares and returns a frozen Index. warnf
// may be nil.
func Build(src Source, warnf Warnf) (*Index, error) {
	if warnf == nil {
		warnf = func(string, ...interface{}) {}
	}
	idx := &Index{
		Tracks:    make(map[uint32]*pdb.TrackRow),
		Artists:   make(map[uint32]*pdb.ArtistRow),
		Albums:    make(map[uint32]*pdb.AlbumRow),
		Labels:    make(map[uint32]*pdb.LabelRow),
		Genres:    make(map[uint32]*pdb.GenreRow),
		Colors:    make(map[uint32]*pdb.ColorRow),
		Keys:      make(map[uint32]*pdb.KeyRow),
		Artwork:   make(map[uint32]*pdb.ArtworkRow),
		Playlists: make(map[uint32]*pdb.PlaylistTreeRow),
		History:   make(map[uint32]*pdb.HistoryPlaylistRow),
		Tags:      make(map[uint32]*pdb.TagRow),

		TracksByTitle:          make(map[string][]uint32),
		TracksByArtist:         make(map[uint32][]uint32),
		TracksByComposer:       make(map[uint32][]uint32),
		TracksByOriginalArtist: make(map[uint32][]uint32),
		TracksByRemixer:        make(map[uint32][]uint32),
		TracksByAlbum:          make(map[uint32][]uint32),
		TracksByGenre:          make(map[uint32][]uint32),

		ArtistsByName:  make(map[string][]uint32),
		AlbumsByName:   make(map[string][]uint32),
		LabelsByName:   make(map[string][]uint32),
		GenresByName:   make(map[string][]uint32),
		ColorsByName:   make(map[string][]uint32),
		KeysByName:     make(map[string][]uint32),
		AlbumsByArtist: make(map[uint32][]uint32),
		PlaylistTracks: make(map[uint32][]uint32),
		PlaylistTree:   make(map[uint32][]uint32),
		HistoryTracks:  make(map[uint32][]uint32),
		TagTracks:      make(map[uint32][]uint32),
		TrackTags:      make(map[uint32][]uint32),
		TagsByCategory: make(map[uint32][]uint32),

		Stats: Stats{RowCounts: make(map[pdb.TableType]int)},
	}

	var playlistEntries []*pdb.PlaylistEntryRow
	var historyEntries []*pdb.HistoryEntryRow
	var tagTrackRows []*pdb.TagTrackRow

	for _, tt := range []pdb.TableType{
		pdb.TypeTracks, pdb.TypeArtists, pdb.TypeAlbums, pdb.TypeLabels,
		pdb.TypeGenres, pdb.TypeColors, pdb.TypeKeys, pdb.TypeArtwork,
		pdb.TypePlaylistEntries, pdb.TypePlaylistTree,
		pdb.TypeHistoryPlaylists, pdb.TypeHistoryEntries,
		pdb.TypeTags, pdb.TypeTagTracks,
	} {
		table, ok := src.Table(tt)
		if !ok {
			continue
		}
		err := src.IterRows(table, pdb.Warnf(warnf), func(row pdb.Row) error {
			idx.Stats.RowCounts[tt]++
			switch r := row.(type) {
			case *pdb.TrackRow:
				putRow(idx.Tracks, r.ID, r, &idx.Stats, warnf, "TRACKS")
			case *pdb.ArtistRow:
				putRow(idx.Artists, r.ID, r, &idx.Stats, warnf, "ARTISTS")
			case *pdb.AlbumRow:
				putRow(idx.Albums, r.ID, r, &idx.Stats, warnf, "ALBUMS")
			case *pdb.LabelRow:
				putRow(idx.Labels, r.ID, r, &idx.Stats, warnf, "LABELS")
			case *pdb.GenreRow:
				putRow(idx.Genres, r.ID, r, &idx.Stats, warnf, "GENRES")
			case *pdb.ColorRow:
				putRow(idx.Colors, r.ID, r, &idx.Stats, warnf, "COLORS")
			case *pdb.KeyRow:
				putRow(idx.Keys, r.ID, r, &idx.Stats, warnf, "KEYS")
			case *pdb.ArtworkRow:
				putRow(idx.Artwork, r.ID, r, &idx.Stats, warnf, "ARTWORK")
			case *pdb.PlaylistTreeRow:
				putRow(idx.Playlists, r.ID, r, &idx.Stats, warnf, "PLAYLIST_TREE")
			case *pdb.HistoryPlaylistRow:
				putRow(idx.History, r.ID, r, &idx.Stats, warnf, "HISTORY_PLAYLISTS")
			case *pdb.TagRow:
				putRow(idx.Tags, r.ID, r, &idx.Stats, warnf, "TAGS")
			case *pdb.PlaylistEntryRow:
				playlistEntries = append(playlistEntries, r)
			case *pdb.HistoryEntryRow:
				historyEntries = append(historyEntries, r)
			case *pdb.TagTrackRow:
				tagTrackRows = append(tagTrackRows, r)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	idx.buildTrackSecondaries(warnf)
	idx.buildNamedSecondaries()
	idx.buildAlbumsByArtist()
	idx.PlaylistTracks = buildDenseLists(playlistEntries, func(e *pdb.PlaylistEntryRow) (uint32, uint32, uint32) {
		return e.PlaylistID, e.EntryIndex, e.TrackID
	})
	idx.HistoryTracks = buildDenseLists(historyEntries, func(e *pdb.HistoryEntryRow) (uint32, uint32, uint32) {
		return e.PlaylistID, e.EntryIndex, e.TrackID
	})
	idx.buildPlaylistTree()
	idx.buildTagIndexes(tagTrackRows, warnf)

	return idx, nil
}

func putRow[T any](m map[uint32]*T, id uint32, row *T, stats *Stats, warnf Warnf, table string) {
	if _, dup := m[id]; dup {
		stats.DuplicateIDs++
		warnf("%s: duplicate row id %d, keeping last write", table, id)
	}
	m[id] = row
}

// artistRoleFK resolves one of TRACKS' four artist-shaped foreign keys
// (artist_id, composer_id, original_artist_id, remixer_id) against the
// artist index, appending to byRole on success and counting a dangling FK
// otherwise.
func (idx *Index) artistRoleFK(byRole map[uint32][]uint32, field string, trackID, fk uint32, warnf Warnf) {
	if fk == 0 {
		return
	}
	if _, ok := idx.Artists[fk]; ok {
		byRole[fk] = append(byRole[fk], trackID)
		return
	}
	idx.Stats.DanglingFKs++
	warnf("TRACKS.%s: track %d references missing artist %d", field, trackID, fk)
}

func (idx *Index) buildTrackSecondaries(warnf Warnf) {
	for id, t := range idx.Tracks {
		appendSorted(idx.TracksByTitle, strings.ToLower(t.Title), id)

		idx.artistRoleFK(idx.TracksByArtist, "artist_id", id, t.ArtistID, warnf)
		idx.artistRoleFK(idx.TracksByComposer, "composer_id", id, t.ComposerID, warnf)
		idx.artistRoleFK(idx.TracksByOriginalArtist, "original_artist_id", id, t.OriginalArtistID, warnf)
		idx.artistRoleFK(idx.TracksByRemixer, "remixer_id", id, t.RemixerID, warnf)

		if t.AlbumID != 0 {
			if _, ok := idx.Albums[t.AlbumID]; ok {
				idx.TracksByAlbum[t.AlbumID] = append(idx.TracksByAlbum[t.AlbumID], id)
			} else {
				idx.Stats.DanglingFKs++
				warnf("TRACKS.album_id: track %d references missing album %d", id, t.AlbumID)
			}
		}
		if t.GenreID != 0 {
			if _, ok := idx.Genres[t.GenreID]; ok {
				idx.TracksByGenre[t.GenreID] = append(idx.TracksByGenre[t.GenreID], id)
			} else {
				idx.Stats.DanglingFKs++
				warnf("TRACKS.genre_id: track %d references missing genre %d", id, t.GenreID)
			}
		}
	}
	for _, ids := range idx.TracksByTitle {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	for _, m := range []map[uint32][]uint32{
		idx.TracksByArtist, idx.TracksByComposer, idx.TracksByOriginalArtist,
		idx.TracksByRemixer, idx.TracksByAlbum, idx.TracksByGenre,
	} {
		for _, ids := range m {
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		}
	}
}

func appendSorted(m map[string][]uint32, key string, id uint32) {
	m[key] = append(m[key], id)
}

func (idx *Index) buildNamedSecondaries() {
	for id, a := range idx.Artists {
		appendSorted(idx.ArtistsByName, strings.ToLower(a.Name), id)
	}
	for id, a := range idx.Albums {
		appendSorted(idx.AlbumsByName, strings.ToLower(a.Name), id)
	}
	for id, l := range idx.Labels {
		appendSorted(idx.LabelsByName, strings.ToLower(l.Name), id)
	}
	for id, g := range idx.Genres {
		appendSorted(idx.GenresByName, strings.ToLower(g.Name), id)
	}
	for id, c := range idx.Colors {
		appendSorted(idx.ColorsByName, strings.ToLower(c.Name), id)
	}
	for id, k := range idx.Keys {
		appendSorted(idx.KeysByName, strings.ToLower(k.Name), id)
	}
	for _, m := range []map[string][]uint32{
		idx.ArtistsByName, idx.AlbumsByName, idx.LabelsByName,
		idx.GenresByName, idx.ColorsByName, idx.KeysByName,
	} {
		for _, ids := range m {
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		}
	}
}

func (idx *Index) buildAlbumsByArtist() {
	for _, t := range idx.Tracks {
		if t.AlbumID == 0 || t.ArtistID == 0 {
			continue
		}
		if _, ok := idx.Albums[t.AlbumID]; !ok {
			continue
		}
		found := false
		for _, existing := range idx.AlbumsByArtist[t.ArtistID] {
			if existing == t.AlbumID {
				found = true
				break
			}
		}
		if !found {
			idx.AlbumsByArtist[t.ArtistID] = append(idx.AlbumsByArtist[t.ArtistID], t.AlbumID)
		}
	}
	for _, ids := range idx.AlbumsByArtist {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
}

// buildDenseLists turns a flat slice of link rows into per-parent dense
// lists: list length is max(entry_index)+1, with unfilled slots defaulting
// to 0 (no track), per entry.
func buildDenseLists[E any](entries []*E, fields func(*E) (parent, index, value uint32)) map[uint32][]uint32 {
	maxIndex := make(map[uint32]uint32)
	for _, e := range entries {
		parent, index, _ := fields(e)
		if index > maxIndex[parent] {
			maxIndex[parent] = index
		}
	}
	out := make(map[uint32][]uint32, len(maxIndex))
	for parent, m := range maxIndex {
		out[parent] = make([]uint32, m+1)
	}
	for _, e := range entries {
		parent, index, value := fields(e)
		out[parent][index] = value
	}
	return out
}

func (idx *Index) buildPlaylistTree() {
	type child struct {
		id, sortOrder uint32
	}
	byParent := make(map[uint32][]child)
	for id, p := range idx.Playlists {
		byParent[p.ParentID] = append(byParent[p.ParentID], child{id: id, sortOrder: p.SortOrder})
	}
	for parent, children := range byParent {
		sort.Slice(children, func(i, j int) bool { return children[i].sortOrder < children[j].sortOrder })
		ids := make([]uint32, len(children))
		for i, c := range children {
			ids[i] = c.id
		}
		idx.PlaylistTree[parent] = ids
	}
}

func (idx *Index) buildTagIndexes(tagTracks []*pdb.TagTrackRow, warnf Warnf) {
	for _, tt := range tagTracks {
		if _, ok := idx.Tags[tt.TagID]; !ok {
			idx.Stats.DanglingFKs++
			warnf("TAG_TRACKS.tag_id: dangling reference to tag %d", tt.TagID)
			continue
		}
		if _, ok := idx.Tracks[tt.TrackID]; !ok {
			idx.Stats.DanglingFKs++
			warnf("TAG_TRACKS.track_id: dangling reference to track %d", tt.TrackID)
			continue
		}
		idx.TagTracks[tt.TagID] = append(idx.TagTracks[tt.TagID], tt.TrackID)
		idx.TrackTags[tt.TrackID] = append(idx.TrackTags[tt.TrackID], tt.TagID)
	}
	for _, m := range []map[uint32][]uint32{idx.TagTracks, idx.TrackTags} {
		for _, ids := range m {
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		}
	}

	type cat struct {
		id  uint32
		pos uint32
	}
	var cats []cat
	byCategory := make(map[uint32][]cat)
	for id, t := range idx.Tags {
		if t.IsCategory {
			cats = append(cats, cat{id: id, pos: t.CategoryPos})
			continue
		}
		byCategory[t.CategoryID] = append(byCategory[t.CategoryID], cat{id: id, pos: t.CategoryPos})
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].pos < cats[j].pos })
	for _, c := range cats {
		idx.TagCategories = append(idx.TagCategories, c.id)
	}
	for catID, tags := range byCategory {
		sort.Slice(tags, func(i, j int) bool { return tags[i].pos < tags[j].pos })
		ids := make([]uint32, len(tags))
		for i, t := range tags {
			ids[i] = t.id
		}
		idx.TagsByCategory[catID] = ids
	}
}
