package marc

import (
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"
)

func TestWriteISO2709(t *testing.T) {
	h := newHandle(t)
	sampleRecord(t, h)

	out, err := h.AppendISO2709(nil)
	require.NoError(t, err)
	require.Equal(t, sampleISO, string(out))
}

func TestReadISO2709(t *testing.T) {
	h := newHandle(t)
	n, err := h.ReadISO2709([]byte(sampleISO), UnknownSize)
	require.NoError(t, err)
	require.Equal(t, len(sampleISO), n)
	require.Empty(t, h.Record().Comments())

	nodes := h.Record().Nodes()
	require.Len(t, nodes, 3)
	require.Equal(t, "00069nam  2200049   4500", string(nodes[0].(*Leader).Bytes[:]))

	cf := nodes[1].(*ControlField)
	require.Equal(t, "001", cf.Tag)
	require.Equal(t, "abc", string(cf.Data))

	df := nodes[2].(*DataField)
	require.Equal(t, "245", df.Tag)
	require.Equal(t, "10", string(df.Indicators))
	require.Len(t, df.Subfields, 2)
	require.Equal(t, "aTitle", string(df.Subfields[0].CodeData))
	require.Equal(t, "bSub", string(df.Subfields[1].CodeData))
}

func TestISO2709_RoundTrip(t *testing.T) {
	src := newHandle(t)
	sampleRecord(t, src)
	out, err := src.AppendISO2709(nil)
	require.NoError(t, err)

	dst := newHandle(t)
	_, err = dst.ReadISO2709(out, len(out))
	require.NoError(t, err)

	again, err := dst.AppendISO2709(nil)
	require.NoError(t, err)
	require.Equal(t, string(out), string(again))

	// fields survive, the leader differs only in computed positions
	if diff := deep.Equal(src.Record().Nodes()[1:], dst.Record().Nodes()[1:]); diff != nil {
		t.Error(diff)
	}
}

func TestReadISO2709_TrailingData(t *testing.T) {
	h := newHandle(t)
	in := sampleISO + sampleISO
	n, err := h.ReadISO2709([]byte(in), UnknownSize)
	require.NoError(t, err)
	require.Equal(t, len(sampleISO), n)
}

func TestReadISO2709_RecordLengthTooSmall(t *testing.T) {
	h := newHandle(t)
	in := "00024nam  2200025   4500" + fs + rs
	_, err := h.ReadISO2709([]byte(in), UnknownSize)
	require.ErrorIs(t, err, ErrRecordLength)
	require.Len(t, h.Record().Comments(), 1)
	require.Nil(t, h.Record().Leader())
}

func TestReadISO2709_BadRecordLength(t *testing.T) {
	h := newHandle(t)
	_, err := h.ReadISO2709([]byte("0x067nam  2200049   4500"), UnknownSize)
	require.ErrorIs(t, err, ErrRecordLength)

	_, err = h.ReadISO2709([]byte("000"), UnknownSize)
	require.ErrorIs(t, err, ErrRecordLength)
}

func TestReadISO2709_LargerThanBuffer(t *testing.T) {
	h := newHandle(t)
	_, err := h.ReadISO2709([]byte(sampleISO), 40)
	require.ErrorIs(t, err, ErrRecordTooLarge)

	_, err = h.ReadISO2709([]byte(sampleISO[:50]), UnknownSize)
	require.ErrorIs(t, err, ErrRecordTooLarge)
}

func TestReadISO2709_LeaderDefaults(t *testing.T) {
	in := []byte(sampleISO)
	in[10] = 'x' // indicator length
	in[20] = ' ' // length of field length

	h := newHandle(t)
	_, err := h.ReadISO2709(in, UnknownSize)
	require.NoError(t, err)

	comments := h.Record().Comments()
	require.Contains(t, comments, "Indicator length at offset 10 should hold a digit. Assuming 2")
	require.Contains(t, comments, "Length data entry at offset 20 should hold a digit. Assuming 4")
	require.Equal(t, "00069nam  2200049   4500", string(h.Record().Leader().Bytes[:]))

	// the defaults match the sample, so every field is still read
	require.Len(t, comments, 2)
	require.Len(t, h.Record().Nodes(), 5)
}

func TestReadISO2709_BaseAddressMismatch(t *testing.T) {
	in := []byte(sampleISO)
	copy(in[12:17], "00048")

	h := newHandle(t)
	_, err := h.ReadISO2709(in, UnknownSize)
	require.NoError(t, err)
	require.Contains(t, h.Record().Comments(), "Base address not at end of directory, base 48, end 49")
}

func TestReadISO2709_DataOutOfBounds(t *testing.T) {
	in := []byte(sampleISO)
	copy(in[39:43], "0099") // length of 245

	h := newHandle(t)
	_, err := h.ReadISO2709(in, UnknownSize)
	require.NoError(t, err)

	comments := h.Record().Comments()
	require.Len(t, comments, 1)
	require.True(t, strings.HasPrefix(comments[0], "Directory offset 36: Data out of bounds"), comments[0])

	// 001 was read before the bad entry
	var tags []string
	for _, n := range h.Record().Nodes() {
		if cf, ok := n.(*ControlField); ok {
			tags = append(tags, cf.Tag)
		}
	}
	require.Equal(t, []string{"001"}, tags)
}

func TestReadISO2709_BadDirectoryDigits(t *testing.T) {
	in := []byte(sampleISO)
	in[40] = 'z'

	h := newHandle(t)
	_, err := h.ReadISO2709(in, UnknownSize)
	require.NoError(t, err)
	require.Contains(t, h.Record().Comments(),
		"Directory offset 36: Bad value for data length and/or length starting")
	require.Contains(t, h.Record().Comments(),
		"Base address not at end of directory, base 49, end 37")
}

func TestReadISO2709_MissingFieldSeparator(t *testing.T) {
	// 001 declares 4 bytes but its terminator is replaced by data
	in := []byte(sampleISO)
	in[52] = 'd'

	h := newHandle(t)
	_, err := h.ReadISO2709(in, UnknownSize)
	require.NoError(t, err)
	require.Contains(t, h.Record().Comments(), "No separator at end of field length=4")

	cf := h.Record().Nodes()[1].(*ControlField)
	require.Equal(t, "abc", string(cf.Data))
}

func TestReadISO2709_EarlySeparator(t *testing.T) {
	in := []byte(sampleISO)
	in[50] = 0x1e

	h := newHandle(t)
	_, err := h.ReadISO2709(in, UnknownSize)
	require.NoError(t, err)
	require.Contains(t, h.Record().Comments(), "Separator but not at end of field length=4")
}

func TestReadISO2709_ControlTagWithSubfields(t *testing.T) {
	src := newHandle(t)
	r := src.Record()
	_, err := r.AddLeader([]byte("00000nam  2200000   4500"))
	require.NoError(t, err)
	r.AddDataField("002", []byte("  "))
	require.NoError(t, r.AddSubfield([]byte("aX")))
	out, err := src.AppendISO2709(nil)
	require.NoError(t, err)

	dst := newHandle(t)
	_, err = dst.ReadISO2709(out, UnknownSize)
	require.NoError(t, err)
	df, ok := dst.Record().Nodes()[1].(*DataField)
	require.True(t, ok, "002 with identifier separator after indicators is a data field")
	require.Equal(t, "aX", string(df.Subfields[0].CodeData))
}

func TestReadISO2709_Debug(t *testing.T) {
	h := newHandle(t)
	h.SetDebug(1)
	_, err := h.ReadISO2709([]byte(sampleISO), UnknownSize)
	require.NoError(t, err)

	comments := h.Record().Comments()
	require.Contains(t, comments, "Record length            69")
	require.Contains(t, comments, "Indicator length          2")
	require.Contains(t, comments, "Directory offset 24: Tag 001")
	require.Contains(t, comments, "controlfield: 61 62 63")
	require.Contains(t, comments, "datafield: 31 30")
	require.Contains(t, comments, "subfield: 61 54 69 74 6C 65")
}

func TestDump_Truncates(t *testing.T) {
	h := newHandle(t)
	h.dump("controlfield", []byte("0123456789abcdefXYZ"))
	require.Equal(t,
		"controlfield: 30 31 32 33 34 35 36 37 38 39 61 62 63 64 65 66 ..",
		h.Record().Comments()[0])
}

func TestWriteISO2709_SkipsComments(t *testing.T) {
	h := newHandle(t)
	sampleRecord(t, h)
	h.Record().AddComment("note")

	out, err := h.AppendISO2709(nil)
	require.NoError(t, err)
	require.Equal(t, sampleISO, string(out))
}

func TestWriteISO2709_NoLeader(t *testing.T) {
	h := newHandle(t)
	h.Record().AddControlField("001", []byte("x"))
	_, err := h.AppendISO2709(nil)
	require.ErrorIs(t, err, ErrNoLeader)
}

func TestWriteISO2709_InvalidLeader(t *testing.T) {
	h := newHandle(t)
	_, err := h.Record().AddLeader([]byte("00000nam  x200000   4500"))
	require.NoError(t, err)
	_, err = h.AppendISO2709(nil)
	require.ErrorIs(t, err, ErrInvalidLeader)
}

func TestWriteISO2709_FieldOverflow(t *testing.T) {
	h := newHandle(t)
	// one-digit field lengths
	_, err := h.Record().AddLeader([]byte("00000nam  2200000   1500"))
	require.NoError(t, err)
	h.Record().AddControlField("001", []byte("0123456789"))
	_, err = h.AppendISO2709(nil)
	require.ErrorIs(t, err, ErrFieldOverflow)
}

func TestWriteISO2709_TooLong(t *testing.T) {
	h := newHandle(t)
	_, err := h.Record().AddLeader([]byte("00000nam  2200000   4500"))
	require.NoError(t, err)
	for i := 0; i < 12; i++ {
		h.Record().AddControlField("999", make([]byte, 9000))
	}
	_, err = h.AppendISO2709(nil)
	require.ErrorIs(t, err, ErrRecordTooLong)
}

func TestWriteISO2709_PadsIndicators(t *testing.T) {
	h := newHandle(t)
	_, err := h.Record().AddLeader([]byte("00000nam  2200000   4500"))
	require.NoError(t, err)
	h.Record().AddDataField("245", []byte("1"))
	require.NoError(t, h.Record().AddSubfield([]byte("aT")))

	out, err := h.AppendISO2709(nil)
	require.NoError(t, err)
	require.Contains(t, string(out), fs+"1 "+idfs+"aT"+fs+rs)
}
