package pdb

import (
	"djdb/internal/byteio"
)

// pageHeaderSize is the fixed size, in bytes, of the header at the start of
// every page, data or otherwise.
//
// Layout (all little-endian):
//
//	0  u32  page_index
//	4  u32  next_page
//	8  u32  page_type
//	12 u32  num_row_groups
//	16 u32  row_group_count   (max rows per group, e.g. 16)
//	20 u32  page_flags        (bit 0 set => data page)
//	24 ...  16 reserved bytes
const pageHeaderSize = 40

const dataPageFlag = 0x1

// page is one fixed-size block of a database file.
type page struct {
	index         uint32
	nextPage      uint32
	pageType      uint32
	numRowGroups  uint32
	rowGroupCount uint32
	flags         uint32

	start    int // byte offset of this page within the file
	size     int // page size
	src      *byteio.Source
}

func (p *page) isDataPage() bool {
	return p.flags&dataPageFlag != 0
}

func parsePage(src *byteio.Source, pageSize, index int) (*page, error) {
	start := index * pageSize
	sub, err := src.Sub(start, pageSize)
	if err != nil {
		return nil, &MalformedPage{Page: index, Reason: "truncated page"}
	}

	pageIndex, err := sub.ReadU32LE(0)
	if err != nil {
		return nil, &MalformedPage{Page: index, Reason: "truncated header"}
	}
	nextPage, err := sub.ReadU32LE(4)
	if err != nil {
		return nil, &MalformedPage{Page: index, Reason: "truncated header"}
	}
	pageType, err := sub.ReadU32LE(8)
	if err != nil {
		return nil, &MalformedPage{Page: index, Reason: "truncated header"}
	}
	numRowGroups, err := sub.ReadU32LE(12)
	if err != nil {
		return nil, &MalformedPage{Page: index, Reason: "truncated header"}
	}
	rowGroupCount, err := sub.ReadU32LE(16)
	if err != nil {
		return nil, &MalformedPage{Page: index, Reason: "truncated header"}
	}
	flags, err := sub.ReadU32LE(20)
	if err != nil {
		return nil, &MalformedPage{Page: index, Reason: "truncated header"}
	}

	return &page{
		index:         pageIndex,
		nextPage:      nextPage,
		pageType:      pageType,
		numRowGroups:  numRowGroups,
		rowGroupCount: rowGroupCount,
		flags:         flags,
		start:         start,
		size:          pageSize,
		src:           sub,
	}, nil
}

// iterPages walks a table's page chain starting at t.FirstPage, following
// next_page links and stopping once the current page's index equals
// t.LastPage. It refuses to loop forever: a chain that revisits a page index
// before reaching LastPage is reported as malformed.
func iterPages(src *byteio.Source, pageSize int, t Table, yield func(*page) error) error {
	seen := make(map[uint32]bool)
	idx := t.FirstPage
	for {
		if seen[idx] {
			return &MalformedPage{Page: int(idx), Reason: "page-chain cycle"}
		}
		seen[idx] = true

		p, err := parsePage(src, pageSize, int(idx))
		if err != nil {
			return err
		}
		if err := yield(p); err != nil {
			return err
		}
		if idx == t.LastPage {
			return nil
		}
		idx = p.nextPage
	}
}
