package format

import (
	"fmt"

	"github.com/joshuapare/marckit/internal/buf"
)

// DirEntry is one decoded directory entry.
//
//	Offset  Size                      Field
//	0       3                         Tag
//	3       LengthOfFieldLength       Field length, including its separator
//	3+n     LengthOfStartingPosition  Field start relative to the base address
type DirEntry struct {
	Tag    string
	Length int
	Start  int
}

// DecodeDirEntry decodes the directory entry starting at off. ok is false
// when the entry runs past b or its length or start part holds a non-digit.
func DecodeDirEntry(b []byte, off int, l Leader) (DirEntry, bool) {
	if !buf.Has(b, off, l.EntryLen()) {
		return DirEntry{}, false
	}
	length, ok := buf.Digits(b, off+TagLen, l.LengthOfFieldLength)
	if !ok {
		return DirEntry{}, false
	}
	start, ok := buf.Digits(b, off+TagLen+l.LengthOfFieldLength, l.LengthOfStartingPosition)
	if !ok {
		return DirEntry{}, false
	}
	return DirEntry{
		Tag:    string(b[off : off+TagLen]),
		Length: length,
		Start:  start,
	}, true
}

// AppendDirEntry appends a directory entry for a field of the given length
// starting at start. Tags are blank padded or truncated to three bytes.
func AppendDirEntry(dst []byte, tag string, length, start int, l Leader) ([]byte, error) {
	for i := 0; i < TagLen; i++ {
		if i < len(tag) {
			dst = append(dst, tag[i])
		} else {
			dst = append(dst, ' ')
		}
	}
	out, ok := buf.AppendDigits(dst, length, l.LengthOfFieldLength)
	if !ok {
		return dst[:len(dst)-TagLen], fmt.Errorf("tag %s length %d in %d digits: %w",
			tag, length, l.LengthOfFieldLength, ErrOverflow)
	}
	out, ok = buf.AppendDigits(out, start, l.LengthOfStartingPosition)
	if !ok {
		return dst[:len(dst)-TagLen], fmt.Errorf("tag %s start %d in %d digits: %w",
			tag, start, l.LengthOfStartingPosition, ErrOverflow)
	}
	return out, nil
}

// IsControlTag reports whether tag names a control field (00x). Such fields
// may still carry subfields; the reader decides by looking at the data.
func IsControlTag(tag string) bool {
	return len(tag) >= 2 && tag[0] == '0' && tag[1] == '0'
}
