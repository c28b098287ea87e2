package format

import (
	"fmt"

	"github.com/joshuapare/marckit/internal/buf"
)

// Leader captures the structural numbers stored in a 24-byte leader. Every
// other leader byte is opaque payload and is not decoded here.
type Leader struct {
	IndicatorLength          int
	IdentifierLength         int
	BaseAddress              int
	LengthOfFieldLength      int
	LengthOfStartingPosition int
	LengthOfImplementation   int
}

// EntryLen returns the width of one directory entry.
func (l Leader) EntryLen() int {
	return TagLen + l.LengthOfFieldLength + l.LengthOfStartingPosition
}

// Fixup records a leader field that held non-digits and was replaced by its
// default value.
type Fixup struct {
	Offset  int
	Len     int
	Value   int
	Message string
}

type leaderField struct {
	off     int
	n       int
	def     int
	message string
	dst     func(*Leader) *int
}

var leaderFields = []leaderField{
	{IndicatorLengthOffset, 1, DefaultIndicatorLength,
		"Indicator length at offset 10 should hold a digit. Assuming 2",
		func(l *Leader) *int { return &l.IndicatorLength }},
	{IdentifierLengthOffset, 1, DefaultIdentifierLength,
		"Identifier length at offset 11 should hold a digit. Assuming 2",
		func(l *Leader) *int { return &l.IdentifierLength }},
	{BaseAddressOffset, BaseAddressLen, DefaultBaseAddress,
		"Base address at offsets 12..16 should hold a number. Assuming 0",
		func(l *Leader) *int { return &l.BaseAddress }},
	{LengthOfFieldLengthOffset, 1, DefaultLengthOfFieldLength,
		"Length data entry at offset 20 should hold a digit. Assuming 4",
		func(l *Leader) *int { return &l.LengthOfFieldLength }},
	{LengthOfStartingPositionOffset, 1, DefaultLengthOfStartingPosition,
		"Length starting at offset 21 should hold a digit. Assuming 5",
		func(l *Leader) *int { return &l.LengthOfStartingPosition }},
	{LengthOfImplementationOffset, 1, DefaultLengthOfImplementation,
		"Length implementation at offset 22 should hold a digit. Assuming 0",
		func(l *Leader) *int { return &l.LengthOfImplementation }},
}

// NormalizeLeader decodes the numeric fields of the leader in b, which must
// be LeaderSize bytes long. Fields that do not hold digits get their default
// value, which is also written back into b. The returned fixups describe each
// substitution in order of offset. NormalizeLeader never fails; applying it
// to an already normalized leader changes nothing.
func NormalizeLeader(b []byte) (Leader, []Fixup) {
	var (
		l      Leader
		fixups []Fixup
	)
	for _, f := range leaderFields {
		v, ok := buf.Digits(b, f.off, f.n)
		if !ok {
			v = f.def
			buf.PutDigits(b, f.off, f.def, f.n)
			fixups = append(fixups, Fixup{Offset: f.off, Len: f.n, Value: f.def, Message: f.message})
		}
		*f.dst(&l) = v
	}
	return l, fixups
}

// ParseLeader decodes the leader in b without substituting defaults. It is
// used on the write path, which refuses to emit a record whose indicator,
// identifier or directory entry widths are unreadable. The base address is
// not checked because writers recompute it.
func ParseLeader(b []byte) (Leader, error) {
	if len(b) < LeaderSize {
		return Leader{}, fmt.Errorf("leader: %w (have %d, need %d)", ErrTruncated, len(b), LeaderSize)
	}
	var l Leader
	for _, f := range leaderFields {
		v, ok := buf.Digits(b, f.off, f.n)
		if !ok {
			if f.off == BaseAddressOffset {
				continue
			}
			return Leader{}, fmt.Errorf("leader offset %d: %w", f.off, ErrBadDigits)
		}
		*f.dst(&l) = v
	}
	return l, nil
}

// IdentifierLength returns the identifier length digit at offset 11.
func IdentifierLength(b []byte) (int, error) {
	v, ok := buf.Digits(b, IdentifierLengthOffset, 1)
	if !ok {
		return 0, fmt.Errorf("leader offset %d: %w", IdentifierLengthOffset, ErrBadDigits)
	}
	return v, nil
}

// RecordLength parses the five-digit record length at the start of b.
func RecordLength(b []byte) (int, error) {
	if len(b) < RecordLengthLen {
		return 0, fmt.Errorf("record length: %w (have %d, need %d)", ErrTruncated, len(b), RecordLengthLen)
	}
	v, ok := buf.Digits(b, RecordLengthOffset, RecordLengthLen)
	if !ok {
		return 0, fmt.Errorf("record length %q: %w", b[:RecordLengthLen], ErrBadDigits)
	}
	return v, nil
}

// SubfieldCodeWidth returns the width of a subfield code implied by an
// identifier length other than 2. The result is never negative.
func SubfieldCodeWidth(identifierLength int) int {
	if identifierLength < 1 {
		return 0
	}
	return identifierLength - 1
}
