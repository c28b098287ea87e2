package marc

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joshuapare/marckit/internal/format"
	"github.com/joshuapare/marckit/pkg/charset"
)

// UnknownSize may be passed as the size argument of ReadISO2709 when the
// caller does not know how many bytes of the buffer belong to the record.
const UnknownSize = -1

// hexDumpMax is the number of field bytes shown in a debug dump.
const hexDumpMax = 16

// LeaderSpec is a parsed leader patch list, see ParseLeaderSpec.
type LeaderSpec = format.LeaderSpec

// ErrLeaderSpec is returned for leader specs that do not parse.
var ErrLeaderSpec = format.ErrLeaderSpec

// ParseLeaderSpec parses a comma separated list of pos=value patches. A value
// is either a quoted literal ('abc') written starting at pos, or a decimal
// byte value 0..255.
func ParseLeaderSpec(s string) (*LeaderSpec, error) {
	return format.ParseLeaderSpec(s)
}

// Handle owns a record and the settings that control how it is read and
// written. A Handle is not safe for concurrent use.
type Handle struct {
	rec     *Record
	out     []byte
	scratch []byte

	mode       Mode
	debug      int
	conv       charset.Converter
	subfield   string
	endline    string
	leaderSpec *LeaderSpec
	xchgFormat string
	xchgType   string

	log *slog.Logger
}

// New returns a handle configured by opts. It fails only when
// opts.LeaderSpec does not parse.
func New(opts Options) (*Handle, error) {
	h := &Handle{
		rec:        NewRecord(),
		mode:       opts.Mode,
		debug:      opts.Debug,
		conv:       opts.Converter,
		subfield:   truncate(opts.SubfieldSeparator, MaxSubfieldSeparator),
		endline:    truncate(opts.LineTerminator, MaxLineTerminator),
		xchgFormat: opts.RecordFormat,
		xchgType:   opts.RecordType,
		log:        opts.Logger,
	}
	if h.log == nil {
		h.log = slog.New(slog.DiscardHandler)
	}
	if err := h.SetLeaderSpec(opts.LeaderSpec); err != nil {
		return nil, err
	}
	return h, nil
}

// Record returns the record owned by the handle. Its content is replaced by
// every read.
func (h *Handle) Record() *Record {
	return h.rec
}

// Mode returns the output mode.
func (h *Handle) Mode() Mode {
	return h.mode
}

// SetMode sets the output mode used by Encode, Decode and Write.
func (h *Handle) SetMode(m Mode) {
	h.mode = m
}

// SetDebug sets the diagnostic level. Levels above zero add debug comments.
func (h *Handle) SetDebug(level int) {
	h.debug = level
}

// SetConverter sets the output converter. nil disables conversion.
func (h *Handle) SetConverter(c charset.Converter) {
	h.conv = c
}

// SetSubfieldSeparator sets the line mode subfield separator.
func (h *Handle) SetSubfieldSeparator(s string) {
	h.subfield = truncate(s, MaxSubfieldSeparator)
}

// SetLineTerminator sets the line mode line terminator.
func (h *Handle) SetLineTerminator(s string) {
	h.endline = truncate(s, MaxLineTerminator)
}

// SetLeaderSpec parses s and applies it to every leader added from now on.
// An empty string clears the spec. On error the previous spec is kept.
func (h *Handle) SetLeaderSpec(s string) error {
	if s == "" {
		h.leaderSpec = nil
		return nil
	}
	spec, err := format.ParseLeaderSpec(s)
	if err != nil {
		return err
	}
	h.leaderSpec = spec
	return nil
}

// LeaderSpec returns the active leader spec source, or "".
func (h *Handle) LeaderSpec() string {
	return h.leaderSpec.String()
}

// ModifyLeader overwrites leader bytes starting at off with s. Writes never
// extend past the 24 leader bytes. Does nothing when the record has no leader.
func (h *Handle) ModifyLeader(off int, s string) {
	l := h.rec.Leader()
	if l == nil || off < 0 || off >= format.LeaderSize {
		return
	}
	copy(l.Bytes[off:], s)
}

// Close releases the record storage. The handle may be reused afterwards.
func (h *Handle) Close() {
	h.rec.Release()
	h.out = nil
	h.scratch = nil
}

// comment adds a diagnostic comment to the record.
func (h *Handle) comment(msg string, args ...any) {
	h.rec.Commentf(msg, args...)
}

func (h *Handle) addLeader(b []byte) {
	l, err := h.rec.AddLeader(b)
	if err != nil {
		return
	}
	h.leaderSpec.Apply(l.Bytes[:])
}

func (h *Handle) addControlField(tag string, data []byte) {
	h.rec.AddControlField(tag, data)
	if h.debug > 0 {
		h.dump("controlfield", data)
	}
}

func (h *Handle) addDataField(tag string, indicators []byte) {
	h.rec.AddDataField(tag, indicators)
	if h.debug > 0 {
		h.dump("datafield", indicators)
	}
}

func (h *Handle) addSubfield(codeData []byte) {
	if err := h.rec.AddSubfield(codeData); err != nil {
		return
	}
	if h.debug > 0 {
		h.dump("subfield", codeData)
	}
}

// dump adds a comment with a hex dump of at most hexDumpMax bytes of data.
func (h *Handle) dump(label string, data []byte) {
	var b strings.Builder
	b.WriteString(label)
	b.WriteByte(':')
	for i, c := range data {
		if i == hexDumpMax {
			b.WriteString(" ..")
			break
		}
		fmt.Fprintf(&b, " %02X", c)
	}
	h.rec.AddComment(b.String())
}

// readLeader normalizes a copy of raw, reports the substitutions and adds
// the leader node.
func (h *Handle) readLeader(raw []byte) format.Leader {
	var b [format.LeaderSize]byte
	copy(b[:], raw)
	l, fixups := format.NormalizeLeader(b[:])
	for _, f := range fixups {
		h.comment("%s", f.Message)
	}
	if h.debug > 0 {
		h.comment("Indicator length      %5d", l.IndicatorLength)
		h.comment("Identifier length     %5d", l.IdentifierLength)
		h.comment("Base address          %5d", l.BaseAddress)
		h.comment("Length data entry     %5d", l.LengthOfFieldLength)
		h.comment("Length starting       %5d", l.LengthOfStartingPosition)
		h.comment("Length implementation %5d", l.LengthOfImplementation)
	}
	h.addLeader(b[:])
	return l
}
