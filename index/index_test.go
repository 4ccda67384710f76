package index_test

import (
	"testing"

	"djdb/index"
	"djdb/pdb"
)

// fakeSource lets tests build an Index directly from synthetic rows, without
// constructing a real page-backed database file.
type fakeSource struct {
	rows map[pdb.TableType][]pdb.Row
}

func (f *fakeSource) Table(t pdb.TableType) (pdb.Table, bool) {
	if _, ok := f.rows[t]; !ok {
		return pdb.Table{}, false
	}
	return pdb.Table{Type: t}, true
}

func (f *fakeSource) IterRows(t pdb.Table, warnf pdb.Warnf, yield func(pdb.Row) error) error {
	for _, r := range f.rows[t.Type] {
		if err := yield(r); err != nil {
			return err
		}
	}
	return nil
}

func TestPrimaryIndexAndDuplicateWarning(t *testing.T) {
	var warnings []string
	src := &fakeSource{rows: map[pdb.TableType][]pdb.Row{
		pdb.TypeTracks: {
			&pdb.TrackRow{ID: 1, Title: "Demo"},
			&pdb.TrackRow{ID: 1, Title: "Demo (overwrite)"},
		},
	}}
	idx, err := index.Build(src, func(format string, args ...interface{}) {
		warnings = append(warnings, format)
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(idx.Tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(idx.Tracks))
	}
	if idx.Tracks[1].Title != "Demo (overwrite)" {
		t.Fatalf("expected last-write-wins, got %q", idx.Tracks[1].Title)
	}
	if idx.Stats.DuplicateIDs != 1 {
		t.Fatalf("got %d duplicate warnings, want 1", idx.Stats.DuplicateIDs)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warnf call, got %d", len(warnings))
	}
}

func TestTracksByTitleCaseInsensitive(t *testing.T) {
	src := &fakeSource{rows: map[pdb.TableType][]pdb.Row{
		pdb.TypeTracks: {
			&pdb.TrackRow{ID: 1, Title: "Strobe"},
			&pdb.TrackRow{ID: 2, Title: "STROBE"},
		},
	}}
	idx, err := index.Build(src, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ids := idx.TracksByTitle["strobe"]
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("got %v", ids)
	}
}

func TestDanglingForeignKey(t *testing.T) {
	var warnings int
	src := &fakeSource{rows: map[pdb.TableType][]pdb.Row{
		pdb.TypeTracks: {
			&pdb.TrackRow{ID: 1, Title: "Orphan", ArtistID: 99},
		},
	}}
	idx, err := index.Build(src, func(string, ...interface{}) { warnings++ })
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(idx.TracksByArtist) != 0 {
		t.Fatalf("expected no artist index entry for a dangling FK")
	}
	if idx.Stats.DanglingFKs != 1 {
		t.Fatalf("got %d dangling FKs, want 1", idx.Stats.DanglingFKs)
	}
	if warnings != 1 {
		t.Fatalf("got %d warnings, want 1", warnings)
	}
}

func TestTracksByArtistRoles(t *testing.T) {
	src := &fakeSource{rows: map[pdb.TableType][]pdb.Row{
		pdb.TypeArtists: {
			&pdb.ArtistRow{ID: 1, Name: "Performer"},
			&pdb.ArtistRow{ID: 2, Name: "Writer"},
			&pdb.ArtistRow{ID: 3, Name: "Original"},
			&pdb.ArtistRow{ID: 4, Name: "Remixer"},
		},
		pdb.TypeTracks: {
			&pdb.TrackRow{
				ID: 10, Title: "Cover",
				ArtistID: 1, ComposerID: 2, OriginalArtistID: 3, RemixerID: 4,
			},
		},
	}}
	idx, err := index.Build(src, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cases := []struct {
		name string
		got  map[uint32][]uint32
		fk   uint32
	}{
		{"TracksByArtist", idx.TracksByArtist, 1},
		{"TracksByComposer", idx.TracksByComposer, 2},
		{"TracksByOriginalArtist", idx.TracksByOriginalArtist, 3},
		{"TracksByRemixer", idx.TracksByRemixer, 4},
	}
	for _, c := range cases {
		ids := c.got[c.fk]
		if len(ids) != 1 || ids[0] != 10 {
			t.Fatalf("%s[%d]: got %v, want [10]", c.name, c.fk, ids)
		}
	}
}

func TestTracksByArtistRoleDanglingFK(t *testing.T) {
	var warnings int
	src := &fakeSource{rows: map[pdb.TableType][]pdb.Row{
		pdb.TypeTracks: {
			&pdb.TrackRow{ID: 1, Title: "Remix", RemixerID: 99},
		},
	}}
	idx, err := index.Build(src, func(string, ...interface{}) { warnings++ })
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(idx.TracksByRemixer) != 0 {
		t.Fatalf("expected no remixer index entry for a dangling FK")
	}
	if idx.Stats.DanglingFKs != 1 || warnings != 1 {
		t.Fatalf("got dangling=%d warnings=%d", idx.Stats.DanglingFKs, warnings)
	}
}

func TestPlaylistDenseListWithHoles(t *testing.T) {
	src := &fakeSource{rows: map[pdb.TableType][]pdb.Row{
		pdb.TypePlaylistEntries: {
			&pdb.PlaylistEntryRow{PlaylistID: 1, EntryIndex: 0, TrackID: 10},
			&pdb.PlaylistEntryRow{PlaylistID: 1, EntryIndex: 2, TrackID: 30},
		},
	}}
	idx, err := index.Build(src, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := idx.PlaylistTracks[1]
	want := []uint32{10, 0, 30}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPlaylistTreeOrderedBySortOrder(t *testing.T) {
	src := &fakeSource{rows: map[pdb.TableType][]pdb.Row{
		pdb.TypePlaylistTree: {
			&pdb.PlaylistTreeRow{ID: 1, ParentID: 0, SortOrder: 2, Name: "B"},
			&pdb.PlaylistTreeRow{ID: 2, ParentID: 0, SortOrder: 1, Name: "A"},
		},
	}}
	idx, err := index.Build(src, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := idx.PlaylistTree[0]
	if len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Fatalf("got %v, want [2 1]", got)
	}
}

func TestTagCategoriesAndTrackLinks(t *testing.T) {
	src := &fakeSource{rows: map[pdb.TableType][]pdb.Row{
		pdb.TypeTracks: {
			&pdb.TrackRow{ID: 1, Title: "Track"},
		},
		pdb.TypeTags: {
			&pdb.TagRow{ID: 100, IsCategory: true, CategoryPos: 0, Name: "Energy"},
			&pdb.TagRow{ID: 1, CategoryID: 100, CategoryPos: 1, Name: "Banger"},
			&pdb.TagRow{ID: 2, CategoryID: 100, CategoryPos: 0, Name: "Chill"},
		},
		pdb.TypeTagTracks: {
			&pdb.TagTrackRow{TagID: 1, TrackID: 1},
		},
	}}
	idx, err := index.Build(src, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(idx.TagCategories) != 1 || idx.TagCategories[0] != 100 {
		t.Fatalf("got %v", idx.TagCategories)
	}
	byCat := idx.TagsByCategory[100]
	if len(byCat) != 2 || byCat[0] != 2 || byCat[1] != 1 {
		t.Fatalf("got %v, want [2 1] ordered by category_pos", byCat)
	}
	if got := idx.TagTracks[1]; len(got) != 1 || got[0] != 1 {
		t.Fatalf("got %v", got)
	}
	if got := idx.TrackTags[1]; len(got) != 1 || got[0] != 1 {
		t.Fatalf("got %v", got)
	}
}

func TestTagTrackDanglingReferenceIsDropped(t *testing.T) {
	var warnings int
	src := &fakeSource{rows: map[pdb.TableType][]pdb.Row{
		pdb.TypeTagTracks: {
			&pdb.TagTrackRow{TagID: 404, TrackID: 1},
		},
	}}
	idx, err := index.Build(src, func(string, ...interface{}) { warnings++ })
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(idx.TagTracks) != 0 {
		t.Fatalf("expected dangling tag_id link to be dropped")
	}
	if idx.Stats.DanglingFKs != 1 || warnings != 1 {
		t.Fatalf("got dangling=%d warnings=%d", idx.Stats.DanglingFKs, warnings)
	}
}
