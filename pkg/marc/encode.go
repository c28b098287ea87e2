package marc

import (
	"fmt"
	"io"
)

// AppendMode appends the record rendered in the handle's output mode.
func (h *Handle) AppendMode(dst []byte) ([]byte, error) {
	switch h.mode {
	case ModeLine:
		return h.AppendLine(dst)
	case ModeMARCXML:
		return h.AppendMARCXML(dst)
	case ModeMarcXchange:
		return h.AppendMarcXchange(dst, h.xchgFormat, h.xchgType)
	case ModeISO2709:
		return h.AppendISO2709(dst)
	default:
		return dst, fmt.Errorf("%w: %d", ErrUnknownMode, int(h.mode))
	}
}

// Encode renders the record in the handle's output mode. The returned slice
// is reused by the next Encode or Decode.
func (h *Handle) Encode() ([]byte, error) {
	out, err := h.AppendMode(h.out[:0])
	h.out = out
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Decode reads one ISO 2709 record from b and renders it in the handle's
// output mode. It returns the rendering and the number of input bytes
// consumed. The returned slice is reused by the next Encode or Decode.
func (h *Handle) Decode(b []byte, size int) ([]byte, int, error) {
	n, err := h.ReadISO2709(b, size)
	if err != nil {
		return nil, 0, err
	}
	out, err := h.Encode()
	if err != nil {
		return nil, n, err
	}
	return out, n, nil
}

// Write renders the record in the handle's output mode to w.
func (h *Handle) Write(w io.Writer) error {
	out, err := h.Encode()
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
