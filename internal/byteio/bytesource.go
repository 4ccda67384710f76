// Package byteio provides ByteSource, a random-access, endian-aware byte
// reader over either a memory-mapped file or an in-memory buffer.
//
// ByteSource is the leaf abstraction every format decoder in this module is
// built on: it never interprets bytes itself, it only ever hands them out.
package byteio

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Truncated is returned whenever a read would run past the end of the
// underlying byte source.
type Truncated struct {
	At     int
	Needed int
	Len    int
}

func (e *Truncated) Error() string {
	return errors.Errorf("byteio: truncated read at offset %d: need %d bytes, have %d", e.At, e.Needed, e.Len).Error()
}

// Source is a seekable, length-known random access byte range.
//
// A Source is owned exclusively by whatever opened it (pdb.File,
// anlz.File, ...); closing the owner closes the Source.
type Source struct {
	data   []byte
	closer func() error
}

// FromBytes wraps an in-memory buffer as a Source. The buffer is used
// directly, never copied; callers must not mutate it afterwards.
func FromBytes(data []byte) *Source {
	return &Source{data: data}
}

// Close releases any resources backing the Source (e.g. an mmap mapping).
// Closing a Source built with FromBytes is a no-op.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	closer := s.closer
	s.closer = nil
	return closer()
}

// Len returns the number of bytes available in the source.
func (s *Source) Len() int {
	return len(s.data)
}

// Sub returns a zero-copy view of the [offset, offset+length) range of s.
// The returned Source shares the underlying memory and must not be closed
// independently of s.
func (s *Source) Sub(offset, length int) (*Source, error) {
	if err := s.checkBounds(offset, length); err != nil {
		return nil, err
	}
	return &Source{data: s.data[offset : offset+length]}, nil
}

func (s *Source) checkBounds(offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(s.data) {
		return &Truncated{At: offset, Needed: length, Len: len(s.data)}
	}
	return nil
}

// ReadBytes returns a zero-copy slice of length len bytes starting at
// offset. Callers that need to retain the slice beyond the lifetime of the
// source must copy it.
func (s *Source) ReadBytes(offset, length int) ([]byte, error) {
	if err := s.checkBounds(offset, length); err != nil {
		return nil, err
	}
	return s.data[offset : offset+length], nil
}

// ReadU8 reads a single byte at offset.
func (s *Source) ReadU8(offset int) (uint8, error) {
	if err := s.checkBounds(offset, 1); err != nil {
		return 0, err
	}
	return s.data[offset], nil
}

// ReadU16LE reads a little-endian uint16 at offset.
func (s *Source) ReadU16LE(offset int) (uint16, error) {
	if err := s.checkBounds(offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(s.data[offset:]), nil
}

// ReadU32LE reads a little-endian uint32 at offset.
func (s *Source) ReadU32LE(offset int) (uint32, error) {
	if err := s.checkBounds(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(s.data[offset:]), nil
}

// ReadU16BE reads a big-endian uint16 at offset.
func (s *Source) ReadU16BE(offset int) (uint16, error) {
	if err := s.checkBounds(offset, 2); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(s.data[offset:]), nil
}

// ReadU32BE reads a big-endian uint32 at offset.
func (s *Source) ReadU32BE(offset int) (uint32, error) {
	if err := s.checkBounds(offset, 4); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(s.data[offset:]), nil
}

// ReadBits reads n bits (1 <= n <= 57) starting at the given byte offset and
// bit offset within that byte (0 = least significant bit), LSB-first,
// possibly spanning multiple bytes. It backs the page row-presence bitmap
// decode (pdb) and is available to any other non-byte-aligned field.
func (s *Source) ReadBits(byteOffset int, bitOffset, n uint) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	if bitOffset >= 8 {
		byteOffset += int(bitOffset / 8)
		bitOffset %= 8
	}
	needBytes := int((bitOffset + n + 7) / 8)
	buf, err := s.ReadBytes(byteOffset, needBytes)
	if err != nil {
		return 0, err
	}
	return readBitsLSB(buf, bitOffset, n), nil
}
