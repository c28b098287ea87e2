// Package buf contains bounds-checked helpers for reading and writing the
// fixed-width ASCII numbers used throughout ISO 2709 records.
package buf

import "math"

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// AllDigits reports whether every byte of b is an ASCII digit. An empty
// slice is not considered numeric.
func AllDigits(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if !IsDigit(c) {
			return false
		}
	}
	return true
}

// Digits parses the n-byte decimal number at b[off:off+n]. It returns
// ok = false when the range is out of bounds, contains a non-digit, or holds
// a number that does not fit in an int.
func Digits(b []byte, off, n int) (int, bool) {
	s, ok := Slice(b, off, n)
	if !ok || !AllDigits(s) {
		return 0, false
	}
	v := 0
	for _, c := range s {
		d := int(c - '0')
		if v > (math.MaxInt-d)/10 {
			return 0, false
		}
		v = v*10 + d
	}
	return v, true
}

// AppendDigits appends v zero-padded to exactly width bytes. It returns
// ok = false, leaving dst untouched, when v is negative or needs more than
// width digits.
func AppendDigits(dst []byte, v, width int) ([]byte, bool) {
	if v < 0 || width <= 0 {
		return dst, false
	}
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	n := len(tmp) - i
	if n > width {
		return dst, false
	}
	for ; n < width; n++ {
		dst = append(dst, '0')
	}
	return append(dst, tmp[i:]...), true
}

// PutDigits writes v zero-padded into b[off:off+width].
func PutDigits(b []byte, off, v, width int) bool {
	dst, ok := Slice(b, off, width)
	if !ok {
		return false
	}
	out, ok := AppendDigits(dst[:0], v, width)
	return ok && len(out) == width
}
