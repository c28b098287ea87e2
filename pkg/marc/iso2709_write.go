package marc

import (
	"fmt"

	"github.com/joshuapare/marckit/internal/buf"
	"github.com/joshuapare/marckit/internal/format"
)

// AppendISO2709 appends the record in ISO 2709 form to dst. The record
// length, base address and directory are computed; every other leader byte
// is copied from the record's leader. Comments are dropped.
//
// The leader's indicator, identifier and directory widths must be digits,
// and every field must fit the directory entry widths they give.
func (h *Handle) AppendISO2709(dst []byte) ([]byte, error) {
	ld := h.rec.Leader()
	if ld == nil {
		h.log.Debug("write failed", "op", "iso2709", "err", ErrNoLeader)
		return dst, ErrNoLeader
	}
	l, err := format.ParseLeader(ld.Bytes[:])
	if err != nil {
		h.log.Debug("write failed", "op", "iso2709", "err", err)
		return dst, fmt.Errorf("%w: %w", ErrInvalidLeader, err)
	}

	// Bodies are built first; the directory precedes them in the output.
	body := h.scratch[:0]
	var dir []byte
	for _, n := range h.rec.nodes {
		var tag string
		start := len(body)
		switch f := n.(type) {
		case *ControlField:
			tag = f.Tag
			body = h.appendConverted(body, f.Data)
		case *DataField:
			tag = f.Tag
			body = appendIndicators(body, f.Indicators, l.IndicatorLength)
			for _, sf := range f.Subfields {
				body = append(body, format.IdentifierSeparator)
				body = h.appendConverted(body, sf.CodeData)
			}
		default:
			continue
		}
		body = append(body, format.FieldSeparator)
		dir, err = format.AppendDirEntry(dir, tag, len(body)-start, start, l)
		if err != nil {
			h.scratch = body
			h.log.Debug("write failed", "op", "iso2709", "err", err)
			return dst, fmt.Errorf("%w: %w", ErrFieldOverflow, err)
		}
	}
	h.scratch = body

	base := format.LeaderSize + len(dir) + 1
	total := base + len(body) + 1
	if total > format.MaxRecordLength {
		h.log.Debug("write failed", "op", "iso2709", "length", total)
		return dst, fmt.Errorf("%w: %d bytes", ErrRecordTooLong, total)
	}

	dst, _ = buf.AppendDigits(dst, total, format.RecordLengthLen)
	dst = append(dst, ld.Bytes[format.RecordLengthLen:format.BaseAddressOffset]...)
	dst, _ = buf.AppendDigits(dst, base, format.BaseAddressLen)
	dst = append(dst, ld.Bytes[format.BaseAddressOffset+format.BaseAddressLen:]...)
	dst = append(dst, dir...)
	dst = append(dst, format.FieldSeparator)
	dst = append(dst, body...)
	dst = append(dst, format.RecordSeparator)
	return dst, nil
}

// appendIndicators appends exactly n indicator bytes, blank padded.
func appendIndicators(dst, ind []byte, n int) []byte {
	for i := 0; i < n; i++ {
		if i < len(ind) {
			dst = append(dst, ind[i])
		} else {
			dst = append(dst, ' ')
		}
	}
	return dst
}
