package marc

import (
	"fmt"

	"github.com/joshuapare/marckit/internal/arena"
	"github.com/joshuapare/marckit/internal/format"
)

// Record is the in-memory form of one bibliographic record: an ordered list
// of nodes. Node values and the byte slices they reference are allocated from
// the record's arena and are invalidated by Reset.
type Record struct {
	nodes []Node
	bytes *arena.Arena

	leaders  arena.Slab[Leader]
	controls arena.Slab[ControlField]
	fields   arena.Slab[DataField]
	comments arena.Slab[Comment]

	// subfields of every data field share one pool; each DataField holds a
	// capped window into it.
	subfields []Subfield
	cur       cursor
}

// cursor remembers the data field that receives AddSubfield calls.
type cursor struct {
	field *DataField
	start int
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{bytes: arena.New()}
}

// Reset discards all nodes. Storage is kept for the next record.
func (r *Record) Reset() {
	clear(r.nodes)
	r.nodes = r.nodes[:0]
	r.bytes.Reset()
	r.leaders.Reset()
	r.controls.Reset()
	r.fields.Reset()
	r.comments.Reset()
	clear(r.subfields)
	r.subfields = r.subfields[:0]
	r.cur = cursor{}
}

// Release discards all nodes and the storage behind them.
func (r *Record) Release() {
	r.Reset()
	r.nodes = nil
	r.subfields = nil
	r.bytes.Release()
	r.leaders.Release()
	r.controls.Release()
	r.fields.Release()
	r.comments.Release()
}

// Nodes returns the nodes in document order. The slice is owned by the record.
func (r *Record) Nodes() []Node {
	return r.nodes
}

// Len returns the number of nodes.
func (r *Record) Len() int {
	return len(r.nodes)
}

// Leader returns the first leader node, or nil.
func (r *Record) Leader() *Leader {
	for _, n := range r.nodes {
		if l, ok := n.(*Leader); ok {
			return l
		}
	}
	return nil
}

// Comments returns the text of every comment node in order.
func (r *Record) Comments() []string {
	var out []string
	for _, n := range r.nodes {
		if c, ok := n.(*Comment); ok {
			out = append(out, c.Text)
		}
	}
	return out
}

// AddLeader appends a leader node holding a copy of b, which must be 24 bytes.
func (r *Record) AddLeader(b []byte) (*Leader, error) {
	if len(b) != format.LeaderSize {
		return nil, fmt.Errorf("%w: got %d", ErrLeaderLength, len(b))
	}
	l := r.leaders.New()
	copy(l.Bytes[:], b)
	r.nodes = append(r.nodes, l)
	return l, nil
}

// AddControlField appends a control field holding a copy of data.
func (r *Record) AddControlField(tag string, data []byte) *ControlField {
	f := r.controls.New()
	f.Tag = tag
	f.Data = r.bytes.Copy(data)
	r.nodes = append(r.nodes, f)
	return f
}

// AddDataField appends a data field holding a copy of indicators. Subsequent
// AddSubfield calls attach to it.
func (r *Record) AddDataField(tag string, indicators []byte) *DataField {
	f := r.fields.New()
	f.Tag = tag
	f.Indicators = r.bytes.Copy(indicators)
	r.nodes = append(r.nodes, f)
	r.cur = cursor{field: f, start: len(r.subfields)}
	return f
}

// AddSubfield appends a subfield, code and value together, to the most
// recently added data field.
func (r *Record) AddSubfield(codeData []byte) error {
	if r.cur.field == nil {
		return ErrNoDataField
	}
	r.subfields = append(r.subfields, Subfield{CodeData: r.bytes.Copy(codeData)})
	end := len(r.subfields)
	r.cur.field.Subfields = r.subfields[r.cur.start:end:end]
	return nil
}

// AddComment appends a comment node.
func (r *Record) AddComment(text string) *Comment {
	c := r.comments.New()
	c.Text = text
	r.nodes = append(r.nodes, c)
	return c
}

// Commentf appends a comment node built from a format string.
func (r *Record) Commentf(msg string, args ...any) *Comment {
	return r.AddComment(fmt.Sprintf(msg, args...))
}
