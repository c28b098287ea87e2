package marc

import (
	"fmt"

	"github.com/joshuapare/marckit/internal/format"
)

// Kind identifies the concrete type of a Node.
type Kind uint8

const (
	KindLeader Kind = iota
	KindControlField
	KindDataField
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindLeader:
		return "leader"
	case KindControlField:
		return "controlfield"
	case KindDataField:
		return "datafield"
	case KindComment:
		return "comment"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Node is one entry of a Record in document order. The implementations are
// *Leader, *ControlField, *DataField and *Comment.
type Node interface {
	Kind() Kind
	node()
}

// Leader holds the 24 leader bytes of a record.
type Leader struct {
	Bytes [format.LeaderSize]byte
}

// ControlField is a field without indicators or subfields, typically 00x.
type ControlField struct {
	Tag  string
	Data []byte
}

// DataField is a field with indicators and subfields.
type DataField struct {
	Tag        string
	Indicators []byte
	Subfields  []Subfield
}

// Subfield holds a subfield code immediately followed by its value. The code
// width is decided when the subfield is written, see CodeWidth.
type Subfield struct {
	CodeData []byte
}

// Comment is a diagnostic produced while reading, or a note added by the
// caller. Writers render comments inline; ISO 2709 drops them.
type Comment struct {
	Text string
}

func (*Leader) Kind() Kind       { return KindLeader }
func (*ControlField) Kind() Kind { return KindControlField }
func (*DataField) Kind() Kind    { return KindDataField }
func (*Comment) Kind() Kind      { return KindComment }

func (*Leader) node()       {}
func (*ControlField) node() {}
func (*DataField) node()    {}
func (*Comment) node()      {}

// Split returns the code and value of the subfield for a code width. The
// width is clamped to the subfield length.
func (s Subfield) Split(width int) (code, value []byte) {
	if width < 0 {
		width = 0
	}
	if width > len(s.CodeData) {
		width = len(s.CodeData)
	}
	return s.CodeData[:width], s.CodeData[width:]
}
