package pdb

import (
	"djdb/internal/byteio"
)

// header is the fixed-size prologue of a database file: everything needed to
// enumerate tables and start walking page chains.
//
// Layout (all little-endian):
//
//	0  u32  magic, always zero
//	4  u32  page_size
//	8  u32  num_tables
//	12 u32  next_unused_page
//	16 u32  sequence
//	20 u32  gap (reserved)
//	24 ...  num_tables table descriptors, 16 bytes each:
//	        u32 type, u32 empty_candidate, u32 first_page, u32 last_page
const (
	headerFixedSize = 24
	tableDescSize   = 16
)

type header struct {
	pageSize uint32
	tables   []Table
}

func parseHeader(src *byteio.Source) (*header, error) {
	magic, err := src.ReadU32LE(0)
	if err != nil {
		return nil, err
	}
	if magic != 0 {
		return nil, &BadMagic{Got: magic}
	}

	pageSize, err := src.ReadU32LE(4)
	if err != nil {
		return nil, err
	}
	numTables, err := src.ReadU32LE(8)
	if err != nil {
		return nil, err
	}

	h := &header{pageSize: pageSize}
	seen := make(map[TableType]bool, numTables)
	for i := uint32(0); i < numTables; i++ {
		off := headerFixedSize + int(i)*tableDescSize
		typ, err := src.ReadU32LE(off)
		if err != nil {
			return nil, err
		}
		// empty_candidate at off+4 is reserved for the writer; readers don't
		// need it.
		firstPage, err := src.ReadU32LE(off + 8)
		if err != nil {
			return nil, err
		}
		lastPage, err := src.ReadU32LE(off + 12)
		if err != nil {
			return nil, err
		}

		tt := TableType(typ)
		if seen[tt] {
			return nil, &DuplicateTable{Type: tt}
		}
		seen[tt] = true
		h.tables = append(h.tables, Table{Type: tt, FirstPage: firstPage, LastPage: lastPage})
	}
	return h, nil
}
