package pdb

import "fmt"

// BadMagic is returned when a database file's leading header does not carry
// the expected sentinel value.
type BadMagic struct {
	Got uint32
}

func (e *BadMagic) Error() string {
	return fmt.Sprintf("pdb: bad file header, got %#x", e.Got)
}

// DuplicateTable is returned when a table type appears more than once in a
// file's table descriptor list.
type DuplicateTable struct {
	Type TableType
}

func (e *DuplicateTable) Error() string {
	return fmt.Sprintf("pdb: duplicate table %s", e.Type)
}

// MalformedPage is returned for any page-level structural violation: a
// truncated page, an offset that falls outside the page, or a page-chain
// that fails to terminate at the table's declared last page.
type MalformedPage struct {
	Page   int
	Reason string
}

func (e *MalformedPage) Error() string {
	return fmt.Sprintf("pdb: malformed page %d: %s", e.Page, e.Reason)
}

// MalformedRow is returned when a row's fixed field could not be read. A row
// whose decoded length runs into the next row is not detected.
type MalformedRow struct {
	Offset int
	Reason string
}

func (e *MalformedRow) Error() string {
	return fmt.Sprintf("pdb: malformed row at offset %d: %s", e.Offset, e.Reason)
}
