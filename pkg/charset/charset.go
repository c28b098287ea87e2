// Package charset implements the character-set converter used when records
// are rendered. A Converter turns bytes in the record's source encoding into
// the output encoding and can tell whether a short byte prefix forms a
// complete character, which the subfield code width heuristic relies on.
//
// Conversions are built on golang.org/x/text: any encoding registered in the
// IANA index (ISO-8859-x, Windows code pages, UTF-8, UTF-16, Shift_JIS,
// EUC-JP, EUC-KR, GBK, GB18030, Big5, ...) can be used on either side.
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnsupported indicates an encoding name that could not be resolved.
var ErrUnsupported = errors.New("charset: unsupported encoding")

// Status is the outcome of probing a byte sequence.
type Status int

const (
	// Complete means the bytes convert as a whole character sequence.
	Complete Status = iota
	// Incomplete means the bytes end inside a multi-byte character.
	Incomplete
	// Invalid means the bytes cannot be converted at all.
	Invalid
)

func (s Status) String() string {
	switch s {
	case Complete:
		return "complete"
	case Incomplete:
		return "incomplete"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Converter converts record content between character sets.
type Converter interface {
	// Probe converts src as if it were the whole input and reports whether
	// it formed a complete character sequence.
	Probe(src []byte) Status

	// Append converts src and appends the result to dst.
	Append(dst, src []byte) ([]byte, error)
}

// Transcoder converts from one x/text encoding to another. It is safe for
// concurrent use; each call builds its own transformer chain.
type Transcoder struct {
	from, to         encoding.Encoding
	fromName, toName string
}

var _ Converter = (*Transcoder)(nil)

// New returns a Transcoder between the named encodings.
func New(from, to string) (*Transcoder, error) {
	fe, err := Lookup(from)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	te, err := Lookup(to)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	t := NewTranscoder(fe, te)
	t.fromName, t.toName = from, to
	return t, nil
}

// NewTranscoder returns a Transcoder between two encodings.
func NewTranscoder(from, to encoding.Encoding) *Transcoder {
	return &Transcoder{from: from, to: to}
}

// aliases covers names commonly found in cataloguing tool configuration that
// the IANA index spells differently.
var aliases = map[string]encoding.Encoding{
	"utf8":    unicode.UTF8,
	"utf-8":   unicode.UTF8,
	"latin1":  charmap.ISO8859_1,
	"latin-1": charmap.ISO8859_1,
	"cp1252":  charmap.Windows1252,
}

// Lookup resolves an encoding name.
func Lookup(name string) (encoding.Encoding, error) {
	if e, ok := aliases[strings.ToLower(name)]; ok {
		return e, nil
	}
	e, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, ErrUnsupported)
	}
	if e == nil {
		// Known to the index but not implemented by x/text.
		return nil, fmt.Errorf("%q: %w", name, ErrUnsupported)
	}
	return e, nil
}

// Probe implements Converter.
func (t *Transcoder) Probe(src []byte) Status {
	if len(src) == 0 {
		return Incomplete
	}
	var dst [64]byte
	tr := transform.Chain(t.from.NewDecoder(), t.to.NewEncoder())
	_, nSrc, err := tr.Transform(dst[:], src, false)
	switch {
	case err == nil && nSrc == len(src):
		return Complete
	case errors.Is(err, transform.ErrShortSrc):
		return Incomplete
	default:
		return Invalid
	}
}

// Append implements Converter. Characters the target encoding cannot
// represent are replaced by its replacement character.
func (t *Transcoder) Append(dst, src []byte) ([]byte, error) {
	tr := transform.Chain(t.from.NewDecoder(), encoding.ReplaceUnsupported(t.to.NewEncoder()))
	out, _, err := transform.Append(tr, dst, src)
	if err != nil {
		return dst, fmt.Errorf("charset %s->%s: %w", t.fromName, t.toName, err)
	}
	return out, nil
}

// String returns "from->to" when the transcoder was built from names.
func (t *Transcoder) String() string {
	return t.fromName + "->" + t.toName
}
