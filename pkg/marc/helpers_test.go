package marc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/marckit/internal/testutil"
	"github.com/joshuapare/marckit/pkg/charset"
)

const (
	rs   = testutil.RS
	fs   = testutil.FS
	idfs = testutil.IDFS

	// sampleISO is the ISO 2709 form of sampleRecord.
	sampleISO = testutil.SampleISO
)

// newHandle returns a handle with default options.
func newHandle(t *testing.T) *Handle {
	t.Helper()
	h, err := New(DefaultOptions())
	require.NoError(t, err)
	return h
}

// sampleRecord fills h with a leader, one control field and one data field.
func sampleRecord(t *testing.T, h *Handle) {
	t.Helper()
	r := h.Record()
	r.Reset()
	_, err := r.AddLeader([]byte(testutil.SampleLeader))
	require.NoError(t, err)
	r.AddControlField("001", []byte("abc"))
	r.AddDataField("245", []byte("10"))
	require.NoError(t, r.AddSubfield([]byte("aTitle")))
	require.NoError(t, r.AddSubfield([]byte("bSub")))
}

// widthConverter reports Complete only for prefixes of a fixed width and
// copies content unchanged.
type widthConverter struct {
	width int
}

func (c widthConverter) Probe(src []byte) charset.Status {
	if len(src) == c.width {
		return charset.Complete
	}
	return charset.Incomplete
}

func (c widthConverter) Append(dst, src []byte) ([]byte, error) {
	return append(dst, src...), nil
}

// failingConverter rejects everything.
type failingConverter struct{}

func (failingConverter) Probe([]byte) charset.Status { return charset.Invalid }

func (failingConverter) Append(dst, _ []byte) ([]byte, error) {
	return dst, charset.ErrUnsupported
}

// upperConverter upper-cases ASCII letters.
type upperConverter struct{}

func (upperConverter) Probe([]byte) charset.Status { return charset.Complete }

func (upperConverter) Append(dst, src []byte) ([]byte, error) {
	for _, c := range src {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		dst = append(dst, c)
	}
	return dst, nil
}
