package marc

import (
	"github.com/joshuapare/marckit/internal/format"
	"github.com/joshuapare/marckit/pkg/charset"
)

// maxCodeWidth is the widest subfield code CodeWidth will try.
const maxCodeWidth = 4

// CodeWidth guesses the width in bytes of the subfield code at the start of
// codeData for records whose identifier length is 2. Such records nominally
// use one-byte codes, but multi-byte character sets may need more. The
// converter is probed with the first 1 to 4 bytes; the first prefix that
// converts completely wins. Without a converter, or when no prefix converts
// completely, the width is 1.
func CodeWidth(c charset.Converter, codeData []byte) int {
	if c == nil {
		return 1
	}
	for i := 1; i <= maxCodeWidth && i <= len(codeData); i++ {
		if c.Probe(codeData[:i]) == charset.Complete {
			return i
		}
	}
	return 1
}

// codeWidth returns the code width for a subfield, never exceeding its length.
func (h *Handle) codeWidth(identifierLength int, codeData []byte) int {
	var w int
	if identifierLength != 2 {
		w = format.SubfieldCodeWidth(identifierLength)
	} else {
		w = CodeWidth(h.conv, codeData)
	}
	return min(w, len(codeData))
}

// appendConverted appends src to dst through the converter. Content the
// converter rejects is copied unchanged.
func (h *Handle) appendConverted(dst, src []byte) []byte {
	if h.conv == nil || len(src) == 0 {
		return append(dst, src...)
	}
	out, err := h.conv.Append(dst, src)
	if err != nil {
		return append(dst, src...)
	}
	return out
}
