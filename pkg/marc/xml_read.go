package marc

import (
	"fmt"

	"github.com/joshuapare/marckit/internal/format"
	"github.com/joshuapare/marckit/pkg/xmltree"
)

// ReadXML reads a MARCXML or MarcXchange record from a parsed document into
// the handle's record. nodes is a list of sibling nodes whose first element
// must be <record>; text and comments before it are ignored. See
// RecordElements for documents holding a <collection>.
//
// Any structural problem fails the read with an error wrapping
// ErrXMLStructure. The message is also added to the record as a comment.
func (h *Handle) ReadXML(nodes []*xmltree.Node) error {
	h.rec.Reset()
	for _, n := range nodes {
		if n.Kind != xmltree.ElementNode {
			continue
		}
		if n.Name != "record" {
			return h.xmlError("Unknown element '%.80s' in MARC XML reader", n.Name)
		}
		rest, err := h.readXMLLeader(n.Children)
		if err != nil {
			return err
		}
		return h.readXMLFields(rest)
	}
	return h.xmlError("Missing element 'record' in MARC XML record")
}

// ReadXMLRecord reads a single <record> element.
func (h *Handle) ReadXMLRecord(rec *xmltree.Node) error {
	return h.ReadXML([]*xmltree.Node{rec})
}

func (h *Handle) xmlError(msg string, args ...any) error {
	text := fmt.Sprintf(msg, args...)
	h.rec.AddComment(text)
	h.log.Debug("read failed", "op", "xml", "err", text)
	return fmt.Errorf("%w: %s", ErrXMLStructure, text)
}

// readXMLLeader reads the leader from the first element of nodes and returns
// the nodes following it.
func (h *Handle) readXMLLeader(nodes []*xmltree.Node) ([]*xmltree.Node, error) {
	for i, n := range nodes {
		if n.Kind != xmltree.ElementNode {
			continue
		}
		if n.Name != "leader" {
			return nil, h.xmlError("Expected element 'leader', got '%.80s'", n.Name)
		}
		text := n.InnerText()
		if len(text) != format.LeaderSize {
			return nil, h.xmlError("Bad length %d of leader data. Must have length of %d characters",
				len(text), format.LeaderSize)
		}
		h.readLeader([]byte(text))
		return nodes[i+1:], nil
	}
	return nil, h.xmlError("Missing element 'leader'")
}

func (h *Handle) readXMLFields(nodes []*xmltree.Node) error {
	for _, n := range nodes {
		if n.Kind != xmltree.ElementNode {
			continue
		}
		switch n.Name {
		case "controlfield":
			tag, err := h.xmlTag(n, nil)
			if err != nil {
				return err
			}
			h.addControlField(tag, []byte(n.InnerText()))
		case "datafield":
			var ind [9]byte
			tag, err := h.xmlTag(n, func(a xmltree.Attr) bool {
				k, ok := indicatorIndex(a.Name)
				if ok && a.Value != "" {
					ind[k] = a.Value[0]
				}
				return ok
			})
			if err != nil {
				return err
			}
			k := 0
			for k < len(ind) && ind[k] != 0 {
				k++
			}
			h.addDataField(tag, ind[:k])
			if err := h.readXMLSubfields(n.Children); err != nil {
				return err
			}
		default:
			return h.xmlError("Expected element controlfield or datafield, got %.80s", n.Name)
		}
	}
	return nil
}

// xmlTag returns the tag attribute of a field element. Attributes other than
// tag are passed to extra, which reports whether it accepted them; nil
// accepts none.
func (h *Handle) xmlTag(n *xmltree.Node, extra func(xmltree.Attr) bool) (string, error) {
	var (
		tag    string
		hasTag bool
	)
	for _, a := range n.Attrs {
		if a.Name == "tag" {
			tag, hasTag = a.Value, true
			continue
		}
		if extra == nil || !extra(a) {
			return "", h.xmlError("Bad attribute '%.80s' for '%s'", a.Name, n.Name)
		}
	}
	if !hasTag {
		return "", h.xmlError("Missing attribute 'tag' for '%s'", n.Name)
	}
	return tag, nil
}

// indicatorIndex maps ind1..ind9 to 0..8.
func indicatorIndex(name string) (int, bool) {
	if len(name) != 4 || name[:3] != "ind" || name[3] < '1' || name[3] > '9' {
		return 0, false
	}
	return int(name[3] - '1'), true
}

func (h *Handle) readXMLSubfields(nodes []*xmltree.Node) error {
	for _, n := range nodes {
		if n.Kind != xmltree.ElementNode {
			continue
		}
		if n.Name != "subfield" {
			return h.xmlError("Expected element 'subfield', got '%.80s'", n.Name)
		}
		var (
			code    string
			hasCode bool
		)
		for _, a := range n.Attrs {
			if a.Name != "code" {
				return h.xmlError("Bad attribute '%.80s' for 'subfield'", a.Name)
			}
			code, hasCode = a.Value, true
		}
		if !hasCode {
			return h.xmlError("Missing attribute 'code' for 'subfield'")
		}
		if code == "" {
			return h.xmlError("Missing value for 'code' in 'subfield'")
		}
		h.scratch = append(append(h.scratch[:0], code...), n.InnerText()...)
		h.addSubfield(h.scratch)
	}
	return nil
}
