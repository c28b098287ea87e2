package marc

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joshuapare/marckit/pkg/charset"
)

// Mode selects the serialization produced by Encode and AppendMode.
type Mode int

const (
	// ModeLine renders one line per node, a human readable dump.
	ModeLine Mode = iota

	// ModeMARCXML renders a MARCXML <record> element.
	ModeMARCXML

	// ModeMarcXchange renders a MarcXchange (ISO 25577) <record> element.
	ModeMarcXchange

	// ModeISO2709 renders the binary exchange format.
	ModeISO2709
)

var modeNames = map[Mode]string{
	ModeLine:        "line",
	ModeMARCXML:     "marcxml",
	ModeMarcXchange: "marcxchange",
	ModeISO2709:     "iso2709",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the mode for a name as printed by Mode.String. Matching
// is case-insensitive; "xml" is accepted for ModeMARCXML.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "xml" {
		return ModeMARCXML, nil
	}
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Maximum lengths of the configurable separators.
const (
	MaxSubfieldSeparator = 7
	MaxLineTerminator    = 7
)

// Options configures a Handle.
type Options struct {
	// Mode is the output mode used by Encode, Decode and Write.
	// Default: ModeLine
	Mode Mode

	// Debug enables diagnostic comments when greater than zero: decoded
	// leader numbers, directory offsets and a hex dump of every field added.
	// Default: 0
	Debug int

	// Converter transcodes field content on output and drives the subfield
	// code width guess. The leader is never converted.
	// Default: nil (bytes are copied as-is)
	Converter charset.Converter

	// SubfieldSeparator precedes each subfield in line mode. Truncated to
	// MaxSubfieldSeparator bytes.
	// Default: " $"
	SubfieldSeparator string

	// LineTerminator ends each line in line mode. Truncated to
	// MaxLineTerminator bytes.
	// Default: "\n"
	LineTerminator string

	// LeaderSpec patches every leader as it is added to a record, for
	// example "9='a',17=32". See ParseLeaderSpec.
	// Default: "" (no patching)
	LeaderSpec string

	// RecordFormat and RecordType are written as the format and type
	// attributes of ModeMarcXchange output when not empty.
	RecordFormat string
	RecordType   string

	// Logger receives debug logs for fatal read and write errors.
	// Default: nil (discard)
	Logger *slog.Logger
}

// DefaultOptions returns options for plain line output.
func DefaultOptions() Options {
	return Options{
		Mode:              ModeLine,
		SubfieldSeparator: " $",
		LineTerminator:    "\n",
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
