package marc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/marckit/pkg/charset"
)

func TestCodeWidth(t *testing.T) {
	tests := []struct {
		name string
		conv charset.Converter
		data string
		want int
	}{
		{"no converter", nil, "aTitle", 1},
		{"failing converter", failingConverter{}, "aTitle", 1},
		{"two byte code", widthConverter{width: 2}, "\xc3\xa9Title", 2},
		{"four byte code", widthConverter{width: 4}, "\xf0\x9f\x98\x80x", 4},
		{"wider than probe", widthConverter{width: 5}, "abcdefg", 1},
		{"shorter than width", widthConverter{width: 3}, "ab", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CodeWidth(tt.conv, []byte(tt.data)))
		})
	}
}

func TestCodeWidth_UTF8(t *testing.T) {
	conv, err := charset.New("utf-8", "utf-8")
	require.NoError(t, err)
	require.Equal(t, 2, CodeWidth(conv, []byte("\xc3\xa9Title")))
	require.Equal(t, 1, CodeWidth(conv, []byte("aTitle")))
}

func TestHandleCodeWidth(t *testing.T) {
	h := newHandle(t)
	require.Equal(t, 1, h.codeWidth(2, []byte("aTitle")))
	require.Equal(t, 0, h.codeWidth(2, nil))
	require.Equal(t, 2, h.codeWidth(3, []byte("abTitle")))
	require.Equal(t, 1, h.codeWidth(3, []byte("a")))
	require.Equal(t, 0, h.codeWidth(1, []byte("aTitle")))
	require.Equal(t, 0, h.codeWidth(0, []byte("aTitle")))
}
