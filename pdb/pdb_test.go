package pdb_test

import (
	"encoding/binary"
	"testing"

	"djdb/internal/byteio"
	"djdb/pdb"
)

const testPageSize = 512

// buildMinimalTrackDB constructs a two-page database: page 0 is the header
// page, page 1 holds a single TRACKS row group with one present row.
func buildMinimalTrackDB(t *testing.T) []byte {
	t.Helper()
	buf := make([]byte, 2*testPageSize)

	// --- page 0: file header ---
	binary.LittleEndian.PutUint32(buf[0:], 0)             // magic
	binary.LittleEndian.PutUint32(buf[4:], testPageSize)   // page_size
	binary.LittleEndian.PutUint32(buf[8:], 1)              // num_tables
	binary.LittleEndian.PutUint32(buf[12:], 2)             // next_unused_page
	binary.LittleEndian.PutUint32(buf[16:], 0)             // sequence
	binary.LittleEndian.PutUint32(buf[20:], 0)             // gap
	binary.LittleEndian.PutUint32(buf[24:], uint32(pdb.TypeTracks))
	binary.LittleEndian.PutUint32(buf[28:], 0) // empty_candidate
	binary.LittleEndian.PutUint32(buf[32:], 1) // first_page
	binary.LittleEndian.PutUint32(buf[36:], 1) // last_page

	// --- page 1: data page with one track row ---
	page := buf[testPageSize : 2*testPageSize]
	binary.LittleEndian.PutUint32(page[0:], 1)  // page_index
	binary.LittleEndian.PutUint32(page[4:], 1)  // next_page (== last_page, loop stops here)
	binary.LittleEndian.PutUint32(page[8:], 0)  // page_type
	binary.LittleEndian.PutUint32(page[12:], 1) // num_row_groups
	binary.LittleEndian.PutUint32(page[16:], 16) // row_group_count
	binary.LittleEndian.PutUint32(page[20:], 1)  // page_flags: data page

	const rowOff = 40
	binary.LittleEndian.PutUint32(page[rowOff+4:], 42)    // id
	binary.LittleEndian.PutUint16(page[rowOff+52:], 12800) // tempo

	const titleOff = 104 // relative to row start, right after the fixed block
	binary.LittleEndian.PutUint16(page[rowOff+84:], titleOff)

	title := []byte("Demo")
	page[rowOff+titleOff] = byte((len(title)+1)<<1) | 1
	copy(page[rowOff+titleOff+1:], title)

	// --- row-group footer ---
	binary.LittleEndian.PutUint16(page[testPageSize-2:], 1)   // rows in last group
	binary.LittleEndian.PutUint16(page[testPageSize-4:], 149) // free-space offset (unused by the decoder)
	binary.LittleEndian.PutUint16(page[testPageSize-6:], uint16(rowOff))
	page[testPageSize-7] = 0x01 // presence bit 0 set

	return buf
}

func TestTrackScenario(t *testing.T) {
	buf := buildMinimalTrackDB(t)
	src := byteio.FromBytes(buf)

	f, err := pdb.Open(src)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	tbl, ok := f.Table(pdb.TypeTracks)
	if !ok {
		t.Fatal("expected a TRACKS table")
	}

	var got *pdb.TrackRow
	err = f.IterRows(tbl, nil, func(r pdb.Row) error {
		tr, ok := r.(*pdb.TrackRow)
		if !ok {
			t.Fatalf("unexpected row type %T", r)
		}
		got = tr
		return nil
	})
	if err != nil {
		t.Fatalf("IterRows: %v", err)
	}
	if got == nil {
		t.Fatal("expected exactly one row, got none")
	}
	if got.ID != 42 {
		t.Fatalf("ID = %d, want 42", got.ID)
	}
	if got.Title != "Demo" {
		t.Fatalf("Title = %q, want %q", got.Title, "Demo")
	}
	if got.Tempo != 12800 {
		t.Fatalf("Tempo = %d, want 12800", got.Tempo)
	}
}

func TestEmptyPresenceBitsYieldNoRows(t *testing.T) {
	buf := buildMinimalTrackDB(t)
	page := buf[testPageSize : 2*testPageSize]
	page[testPageSize-7] = 0x00 // clear the only presence bit

	src := byteio.FromBytes(buf)
	f, err := pdb.Open(src)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	tbl, _ := f.Table(pdb.TypeTracks)

	count := 0
	err = f.IterRows(tbl, nil, func(pdb.Row) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("IterRows: %v", err)
	}
	if count != 0 {
		t.Fatalf("got %d rows, want 0", count)
	}
}

// TestOutOfBoundsStringOffsetYieldsEmptyString: a string-offset slot that
// points past the row/page end must yield an empty string, not a fatal
// MalformedRow, and the out-of-bounds condition is reported through warnf
// rather than swallowed silently.
func TestOutOfBoundsStringOffsetYieldsEmptyString(t *testing.T) {
	buf := buildMinimalTrackDB(t)
	page := buf[testPageSize : 2*testPageSize]
	const rowOff = 40
	// Point title's offset field far past the end of the page.
	binary.LittleEndian.PutUint16(page[rowOff+84:], 0xFFF0)

	var warnings []string
	src := byteio.FromBytes(buf)
	f, err := pdb.Open(src)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	tbl, _ := f.Table(pdb.TypeTracks)

	var got *pdb.TrackRow
	err = f.IterRows(tbl, func(format string, args ...interface{}) {
		warnings = append(warnings, format)
	}, func(r pdb.Row) error {
		got = r.(*pdb.TrackRow)
		return nil
	})
	if err != nil {
		t.Fatalf("IterRows: %v", err)
	}
	if got == nil {
		t.Fatal("expected a row despite the out-of-bounds string offset")
	}
	if got.Title != "" {
		t.Fatalf("Title = %q, want empty string", got.Title)
	}
	if len(warnings) == 0 {
		t.Fatal("expected the out-of-bounds string offset to be reported via warnf")
	}
}

func TestDuplicateTableIsFatal(t *testing.T) {
	buf := make([]byte, testPageSize)
	binary.LittleEndian.PutUint32(buf[0:], 0)
	binary.LittleEndian.PutUint32(buf[4:], testPageSize)
	binary.LittleEndian.PutUint32(buf[8:], 2)
	binary.LittleEndian.PutUint32(buf[24:], uint32(pdb.TypeArtists))
	binary.LittleEndian.PutUint32(buf[40:], uint32(pdb.TypeArtists))

	src := byteio.FromBytes(buf)
	_, err := pdb.Open(src)
	if err == nil {
		t.Fatal("expected a duplicate-table error")
	}
	if _, ok := err.(*pdb.DuplicateTable); !ok {
		t.Fatalf("got %T, want *pdb.DuplicateTable", err)
	}
}

func TestBadMagicIsFatal(t *testing.T) {
	buf := make([]byte, testPageSize)
	binary.LittleEndian.PutUint32(buf[0:], 0xDEADBEEF)

	src := byteio.FromBytes(buf)
	_, err := pdb.Open(src)
	if err == nil {
		t.Fatal("expected a bad-magic error")
	}
	if _, ok := err.(*pdb.BadMagic); !ok {
		t.Fatalf("got %T, want *pdb.BadMagic", err)
	}
}
