package djdb

import (
	"github.com/pkg/errors"

	"djdb/anlz"
	"djdb/internal/byteio"
	"djdb/pdb"
)

// Io wraps an underlying filesystem error (open/read failure) encountered
// while opening a collection or analysis file.
type Io struct {
	Path string
	Err  error
}

func (e *Io) Error() string {
	return errors.Wrapf(e.Err, "djdb: io error on %q", e.Path).Error()
}

func (e *Io) Unwrap() error { return e.Err }

// Truncated, BadMagicPdb, BadMagicAnlz, DuplicateTable, MalformedPage,
// MalformedRow, and MalformedTag are re-exported from the decoding packages so callers can
// errors.As against a single taxonomy rooted at this package, without
// importing pdb/anlz/byteio directly just to catch a decode failure.
type (
	Truncated      = byteio.Truncated
	BadMagicPdb    = pdb.BadMagic
	BadMagicAnlz   = anlz.BadMagic
	DuplicateTable = pdb.DuplicateTable
	MalformedPage  = pdb.MalformedPage
	MalformedRow   = pdb.MalformedRow
	MalformedTag   = anlz.MalformedTag
)
