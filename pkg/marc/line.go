package marc

import (
	"fmt"

	"github.com/joshuapare/marckit/internal/format"
)

// AppendLine appends the line rendering of the record to dst:
//
//	00066nam a2200037 i 4500
//	001 abc
//	245 10 $aTitle $bSubtitle
//	(comment text)
//
// Data fields are the tag, a space, the indicators and then, per subfield,
// the subfield separator, code and value. Every line ends with the line
// terminator.
func (h *Handle) AppendLine(dst []byte) ([]byte, error) {
	idLen, err := h.identifierLength()
	if err != nil {
		return dst, err
	}
	for _, n := range h.rec.nodes {
		switch f := n.(type) {
		case *Leader:
			dst = append(dst, f.Bytes[:]...)
		case *ControlField:
			dst = append(dst, f.Tag...)
			dst = append(dst, ' ')
			dst = h.appendConverted(dst, f.Data)
		case *DataField:
			dst = append(dst, f.Tag...)
			dst = append(dst, ' ')
			dst = h.appendConverted(dst, f.Indicators)
			for _, sf := range f.Subfields {
				code, value := sf.Split(h.codeWidth(idLen, sf.CodeData))
				dst = append(dst, h.subfield...)
				dst = h.appendConverted(dst, code)
				dst = h.appendConverted(dst, value)
			}
		case *Comment:
			dst = append(dst, '(')
			dst = h.appendConverted(dst, []byte(f.Text))
			dst = append(dst, ')')
		}
		dst = append(dst, h.endline...)
	}
	return dst, nil
}

// identifierLength returns the identifier length of the record's leader,
// which every text writer needs to split subfield codes.
func (h *Handle) identifierLength() (int, error) {
	l := h.rec.Leader()
	if l == nil {
		h.log.Debug("write failed", "op", "text", "err", ErrNoLeader)
		return 0, ErrNoLeader
	}
	n, err := format.IdentifierLength(l.Bytes[:])
	if err != nil {
		h.log.Debug("write failed", "op", "text", "err", err)
		return 0, fmt.Errorf("%w: %w", ErrInvalidLeader, err)
	}
	return n, nil
}
