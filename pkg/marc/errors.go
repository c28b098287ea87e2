package marc

import "errors"

var (
	// ErrRecordLength indicates the five-digit record length is unreadable or
	// shorter than a leader plus directory terminator.
	ErrRecordLength = errors.New("marc: bad record length")

	// ErrRecordTooLarge indicates the declared record length exceeds the
	// buffer holding it.
	ErrRecordTooLarge = errors.New("marc: record larger than buffer")

	// ErrRecordTooLong indicates an encoded record would not fit the
	// five-digit record length.
	ErrRecordTooLong = errors.New("marc: record too long for ISO 2709")

	// ErrNoLeader indicates a record without a Leader node was written.
	ErrNoLeader = errors.New("marc: record has no leader")

	// ErrInvalidLeader indicates leader digits required for writing are invalid.
	ErrInvalidLeader = errors.New("marc: invalid leader")

	// ErrLeaderLength indicates leader data that is not 24 bytes long.
	ErrLeaderLength = errors.New("marc: leader must be 24 bytes")

	// ErrFieldOverflow indicates a field length or offset does not fit the
	// directory entry widths given by the leader.
	ErrFieldOverflow = errors.New("marc: field does not fit directory entry")

	// ErrNoDataField indicates a subfield was added before any data field.
	ErrNoDataField = errors.New("marc: no data field to add subfield to")

	// ErrXMLStructure indicates an XML document that is not a MARCXML record.
	ErrXMLStructure = errors.New("marc: bad MARC XML structure")

	// ErrUnknownMode indicates an output mode outside the known set.
	ErrUnknownMode = errors.New("marc: unknown output mode")
)
