// Package format houses the low-level layout of ISO 2709 records: the 24-byte
// leader, the directory entries that index each field and the separator
// bytes. The goal is to keep byte-offset arithmetic in one place, independent
// from the record model, so the readers and writers in pkg/marc only deal
// with decoded values.
package format

// Separator bytes defined by ISO 2709 (information separators IS1..IS3).
const (
	// RecordSeparator (IS3) terminates every record.
	RecordSeparator byte = 0x1d

	// FieldSeparator (IS2) terminates the directory and every field.
	FieldSeparator byte = 0x1e

	// IdentifierSeparator (IS1) introduces every subfield of a data field.
	IdentifierSeparator byte = 0x1f
)

// ============================================================================
// Leader layout
// ============================================================================
//
//	Offset  Size  Field
//	0       5     Record length (digits)
//	5       5     Implementation defined (status, type, level, ...)
//	10      1     Indicator length
//	11      1     Identifier length (subfield code width + 1)
//	12      5     Base address of data
//	17      3     Implementation defined
//	20      1     Length of the length-of-field part of a directory entry
//	21      1     Length of the starting-position part of a directory entry
//	22      1     Length of the implementation-defined part
//	23      1     Undefined
const (
	LeaderSize = 24

	RecordLengthOffset = 0
	RecordLengthLen    = 5

	IndicatorLengthOffset  = 10
	IdentifierLengthOffset = 11

	BaseAddressOffset = 12
	BaseAddressLen    = 5

	LengthOfFieldLengthOffset      = 20
	LengthOfStartingPositionOffset = 21
	LengthOfImplementationOffset   = 22

	// MinRecordLength is the shortest record that can carry a leader and a
	// directory terminator.
	MinRecordLength = LeaderSize + 1

	// MaxRecordLength is the largest length expressible in five digits.
	MaxRecordLength = 99999

	// TagLen is the width of the tag part of a directory entry.
	TagLen = 3

	// UnicodeFlagOffset holds the character coding scheme; 'a' means UCS/Unicode.
	UnicodeFlagOffset = 9
)

// Defaults substituted when a leader digit is unreadable.
const (
	DefaultIndicatorLength          = 2
	DefaultIdentifierLength         = 2
	DefaultBaseAddress              = 0
	DefaultLengthOfFieldLength      = 4
	DefaultLengthOfStartingPosition = 5
	DefaultLengthOfImplementation   = 0
)
