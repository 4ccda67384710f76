package anlz

import "fmt"

// BadMagic is returned when an analysis file's leading fourcc is not PMAI.
type BadMagic struct {
	Got string
}

func (e *BadMagic) Error() string {
	return fmt.Sprintf("anlz: bad file header, got %q", e.Got)
}

// MalformedTag is returned when a section's length fields are inconsistent
// with the rest of the file: a len_header/len_tag violation, or a len_tag
// that would run past the end of the file.
type MalformedTag struct {
	FourCC string
	Offset int
	Reason string
}

func (e *MalformedTag) Error() string {
	return fmt.Sprintf("anlz: malformed tag %q at offset %d: %s", e.FourCC, e.Offset, e.Reason)
}
