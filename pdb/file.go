// Package pdb decodes the paginated collection-database format: export.pdb
// and its extension-file sibling exportExt.pdb. It walks page chains table by
// table and hands back decoded rows; it knows nothing about cross-table
// relationships, which is the Indexer's job one layer up.
package pdb

import "djdb/internal/byteio"

// File is an opened collection database: its table descriptors, ready to be
// walked table by table.
type File struct {
	src      *byteio.Source
	pageSize int
	tables   []Table
}

// Open parses the top-level header of src: the magic sentinel, page size,
// and table descriptor list. It does not walk any page chains; that happens
// lazily via IterRows.
func Open(src *byteio.Source) (*File, error) {
	h, err := parseHeader(src)
	if err != nil {
		return nil, err
	}
	return &File{src: src, pageSize: int(h.pageSize), tables: h.tables}, nil
}

// Tables returns every table descriptor declared in the file header, in the
// order they were declared.
func (f *File) Tables() []Table {
	out := make([]Table, len(f.tables))
	copy(out, f.tables)
	return out
}

// Table looks up the descriptor for a given table type. The second result is
// false if the file declares no table of that type.
func (f *File) Table(t TableType) (Table, bool) {
	for _, tbl := range f.tables {
		if tbl.Type == t {
			return tbl, true
		}
	}
	return Table{}, false
}

// IterRows walks every data page in t's chain, in page-chain order, and
// invokes yield once per present row in row-group order then slot order —
// the canonical traversal order. Tables of a type this decoder doesn't
// recognize yield nothing and return no error. warnf receives every
// recoverable condition encountered while decoding a row (e.g. an unknown
// DeviceSqlString encoding); a nil warnf silently drops them.
func (f *File) IterRows(t Table, warnf Warnf, yield func(Row) error) error {
	decode, ok := rowDecoders[t.Type]
	if !ok {
		return nil
	}

	return iterPages(f.src, f.pageSize, t, func(p *page) error {
		if !p.isDataPage() {
			return nil
		}
		groups, err := parseRowGroups(p)
		if err != nil {
			return err
		}
		for _, g := range groups {
			for _, slot := range g.slots {
				if !slot.present {
					continue
				}
				rowOff := int(slot.offset)
				if rowOff < 0 || rowOff >= p.size {
					return &MalformedPage{Page: int(p.index), Reason: "row offset outside page bounds"}
				}
				row, err := decode(p.src, rowOff, warnf)
				if err != nil {
					return err
				}
				if err := yield(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
