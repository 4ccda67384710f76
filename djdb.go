// Package djdb decodes a DJ library's collection database (export.pdb and
// its exportExt.pdb extension) and the per-track analysis bundles
// (ANLZnnnn.DAT/.EXT/.2EX) it references, turning both into an in-memory,
// queryable Collection.
package djdb

import (
	"sync"

	"djdb/anlz"
	"djdb/index"
	"djdb/internal/byteio"
	"djdb/pdb"
)

// Collection is an opened, indexed collection database. It owns the
// underlying byte source and must be closed once the caller is done.
type Collection struct {
	file   *pdb.File
	src    *byteio.Source
	warnf  Warnf
	lazy   bool

	once sync.Once
	idx  *index.Index
	err  error
}

// Open memory-maps the file at path and indexes it per the given options.
func Open(path string, opts ...OpenOption) (*Collection, error) {
	src, err := byteio.Open(path)
	if err != nil {
		return nil, &Io{Path: path, Err: err}
	}
	c, err := OpenReader(src, opts...)
	if err != nil {
		src.Close()
		return nil, err
	}
	return c, nil
}

// OpenReader builds a Collection from an already-open Source, taking
// ownership of it. Closing the returned Collection closes src.
func OpenReader(src *byteio.Source, opts ...OpenOption) (*Collection, error) {
	cfg := newConfig()
	for _, o := range opts {
		o(cfg)
	}

	f, err := pdb.Open(src)
	if err != nil {
		return nil, err
	}

	c := &Collection{file: f, src: src, warnf: cfg.warnf, lazy: cfg.lazy}
	if !cfg.lazy {
		if _, err := c.index(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Close releases the underlying byte source.
func (c *Collection) Close() error {
	return c.src.Close()
}

// Tables returns every table descriptor this file declares.
func (c *Collection) Tables() []pdb.Table {
	return c.file.Tables()
}

func (c *Collection) index() (*index.Index, error) {
	c.once.Do(func() {
		c.idx, c.err = index.Build(c.file, index.Warnf(c.warnf))
	})
	return c.idx, c.err
}

// Index returns the collection's frozen index, building it on first use if
// the Collection was opened with LazyIndexing.
func (c *Collection) Index() (*index.Index, error) {
	return c.index()
}

// Track looks up a track by ID.
func (c *Collection) Track(id uint32) (*pdb.TrackRow, bool, error) {
	idx, err := c.index()
	if err != nil {
		return nil, false, err
	}
	t, ok := idx.Tracks[id]
	return t, ok, nil
}

// ResolveArtist resolves a track's ArtistID against the artist index. ok is
// false both for fk == 0 ("no reference") and for a dangling reference;
// callers that need to distinguish the two should consult fk directly.
func (c *Collection) ResolveArtist(fk uint32) (*pdb.ArtistRow, bool, error) {
	idx, err := c.index()
	if err != nil {
		return nil, false, err
	}
	a, ok := idx.Artists[fk]
	return a, ok, nil
}

// ResolveAlbum resolves a track's AlbumID against the album index.
func (c *Collection) ResolveAlbum(fk uint32) (*pdb.AlbumRow, bool, error) {
	idx, err := c.index()
	if err != nil {
		return nil, false, err
	}
	a, ok := idx.Albums[fk]
	return a, ok, nil
}

// ResolveGenre resolves a track's GenreID against the genre index.
func (c *Collection) ResolveGenre(fk uint32) (*pdb.GenreRow, bool, error) {
	idx, err := c.index()
	if err != nil {
		return nil, false, err
	}
	g, ok := idx.Genres[fk]
	return g, ok, nil
}

// Playlist returns a playlist's dense, ordered track-ID list.
func (c *Collection) Playlist(id uint32) ([]uint32, bool, error) {
	idx, err := c.index()
	if err != nil {
		return nil, false, err
	}
	tracks, ok := idx.PlaylistTracks[id]
	return tracks, ok, nil
}

// AnalysisFile is an opened per-track analysis bundle (ANLZnnnn.DAT or a
// sibling .EXT/.2EX), ready to walk its tagged sections.
type AnalysisFile struct {
	file     *anlz.File
	src      *byteio.Source
	warnf    Warnf
	unmasked bool
}

// OpenAnalysis memory-maps the analysis file at path (typically resolved
// from a TrackRow.AnalysisPath) and verifies its envelope.
func OpenAnalysis(path string, opts ...AnalysisOption) (*AnalysisFile, error) {
	src, err := byteio.Open(path)
	if err != nil {
		return nil, &Io{Path: path, Err: err}
	}
	a, err := OpenAnalysisReader(src, opts...)
	if err != nil {
		src.Close()
		return nil, err
	}
	return a, nil
}

// OpenAnalysisReader builds an AnalysisFile from an already-open Source,
// taking ownership of it.
func OpenAnalysisReader(src *byteio.Source, opts ...AnalysisOption) (*AnalysisFile, error) {
	cfg := newConfig()
	for _, o := range opts {
		o(cfg)
	}
	f, err := anlz.Open(src)
	if err != nil {
		return nil, err
	}
	return &AnalysisFile{file: f, src: src, warnf: cfg.warnf, unmasked: !cfg.unmask}, nil
}

// Close releases the underlying byte source.
func (a *AnalysisFile) Close() error {
	return a.src.Close()
}

// Sections walks every tagged section in file order.
func (a *AnalysisFile) Sections(yield func(anlz.Section) error) error {
	return a.file.Sections(yield)
}

// BeatGrid decodes the PQTZ section, if present.
func (a *AnalysisFile) BeatGrid() (*anlz.BeatGrid, bool, error) {
	sec, ok, err := a.file.Find("PQTZ")
	if err != nil || !ok {
		return nil, ok, err
	}
	g, err := anlz.DecodeBeatGrid(sec.Body)
	return g, true, err
}

// Path decodes the PPTH section, if present.
func (a *AnalysisFile) Path() (string, bool, error) {
	sec, ok, err := a.file.Find("PPTH")
	if err != nil || !ok {
		return "", ok, err
	}
	p, err := anlz.DecodePath(sec.Body)
	return p, true, err
}

// CueList decodes the extended PCO2 cue list if present, falling back to
// the legacy PCOB list otherwise.
func (a *AnalysisFile) CueList() (*anlz.CueList, bool, error) {
	if sec, ok, err := a.file.Find("PCO2"); err != nil {
		return nil, false, err
	} else if ok {
		l, err := anlz.DecodePCO2(sec.Body)
		return l, true, err
	}
	sec, ok, err := a.file.Find("PCOB")
	if err != nil || !ok {
		return nil, ok, err
	}
	l, err := anlz.DecodePCOB(sec.Body)
	return l, true, err
}

// SongStructure decodes the PSSI section, if present, applying the
// AnalysisFile's configured masking behavior.
func (a *AnalysisFile) SongStructure() (*anlz.SongStructure, bool, error) {
	sec, ok, err := a.file.Find("PSSI")
	if err != nil || !ok {
		return nil, ok, err
	}
	s, err := anlz.DecodeSongStructure(sec.Body, a.unmasked)
	return s, true, err
}
