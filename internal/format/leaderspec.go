package format

import (
	"fmt"
	"strings"

	"github.com/joshuapare/marckit/internal/buf"
)

// LeaderSpec is a compiled leader patch list of the form
//
//	pos=value,pos=value,...
//
// where value is either a single-quoted literal ('a', 'nam') copied to
// leader[pos:], or a decimal byte value stored at leader[pos]. A spec is
// validated once by ParseLeaderSpec and can then be applied to any number of
// leaders.
type LeaderSpec struct {
	src     string
	patches []leaderPatch
}

type leaderPatch struct {
	pos int
	val []byte
}

// ParseLeaderSpec compiles s. It fails on a non-numeric position, a position
// at or beyond LeaderSize, an unterminated quote, a literal that would run
// past the leader, or a value that is neither quoted nor all digits.
func ParseLeaderSpec(s string) (*LeaderSpec, error) {
	spec := &LeaderSpec{src: s}
	for _, entry := range strings.Split(s, ",") {
		p, err := parseLeaderPatch(entry)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", entry, err)
		}
		spec.patches = append(spec.patches, p)
	}

	// Dry run against a scratch leader.
	var scratch [LeaderSize]byte
	if !spec.apply(scratch[:]) {
		return nil, fmt.Errorf("%q: patch exceeds leader: %w", s, ErrLeaderSpec)
	}
	return spec, nil
}

func parseLeaderPatch(entry string) (leaderPatch, error) {
	eq := strings.IndexByte(entry, '=')
	if eq <= 0 {
		return leaderPatch{}, fmt.Errorf("missing position: %w", ErrLeaderSpec)
	}
	pos, ok := buf.Digits([]byte(entry), 0, eq)
	if !ok {
		return leaderPatch{}, fmt.Errorf("position is not a number: %w", ErrLeaderSpec)
	}
	if pos >= LeaderSize {
		return leaderPatch{}, fmt.Errorf("position %d beyond leader: %w", pos, ErrLeaderSpec)
	}

	val := entry[eq+1:]
	switch {
	case val == "":
		return leaderPatch{}, fmt.Errorf("missing value: %w", ErrLeaderSpec)
	case val[0] == '\'':
		end := strings.IndexByte(val[1:], '\'')
		if end < 0 {
			return leaderPatch{}, fmt.Errorf("unterminated quote: %w", ErrLeaderSpec)
		}
		if 1+end+1 != len(val) {
			return leaderPatch{}, fmt.Errorf("trailing data after literal: %w", ErrLeaderSpec)
		}
		lit := val[1 : 1+end]
		if pos+len(lit) > LeaderSize {
			return leaderPatch{}, fmt.Errorf("literal of %d bytes at %d overflows leader: %w",
				len(lit), pos, ErrLeaderSpec)
		}
		return leaderPatch{pos: pos, val: []byte(lit)}, nil
	default:
		n, ok := buf.Digits([]byte(val), 0, len(val))
		if !ok {
			return leaderPatch{}, fmt.Errorf("value %q is neither quoted nor numeric: %w", val, ErrLeaderSpec)
		}
		if n > 0xff {
			return leaderPatch{}, fmt.Errorf("byte value %d out of range: %w", n, ErrLeaderSpec)
		}
		return leaderPatch{pos: pos, val: []byte{byte(n)}}, nil
	}
}

// Apply patches leader in place. Bytes past LeaderSize or past the end of
// leader are never written.
func (s *LeaderSpec) Apply(leader []byte) {
	if s == nil {
		return
	}
	s.apply(leader)
}

func (s *LeaderSpec) apply(leader []byte) bool {
	if len(leader) > LeaderSize {
		leader = leader[:LeaderSize]
	}
	fits := true
	for _, p := range s.patches {
		dst := buf.Clamp(leader, p.pos, len(p.val))
		if len(dst) < len(p.val) {
			fits = false
		}
		copy(dst, p.val)
	}
	return fits
}

// String returns the source text of the spec.
func (s *LeaderSpec) String() string {
	if s == nil {
		return ""
	}
	return s.src
}
