package byteio

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/mmap"
)

// Open memory-maps the file at path, copies its contents into an in-memory
// buffer, and returns a Source over that copy. The mapping stays open until
// the Source is released with Close.
func Open(path string) (*Source, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "byteio: open %q", path)
	}
	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil {
		r.Close()
		return nil, errors.Wrapf(err, "byteio: read mapped file %q", path)
	}
	return &Source{data: data, closer: r.Close}, nil
}
