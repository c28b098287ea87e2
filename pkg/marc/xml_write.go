package marc

import (
	"strconv"

	"github.com/joshuapare/marckit/internal/format"
)

// XML namespaces of the record element.
const (
	NamespaceMARCXML     = "http://www.loc.gov/MARC21/slim"
	NamespaceMarcXchange = "http://www.bs.dk/standards/MarcXchange"
)

// maxXchangeAttr bounds the MarcXchange format and type attributes.
const maxXchangeAttr = 80

// AppendMARCXML appends the record as a MARCXML <record> element. Unless a
// leader spec is set, leader offset 9 is set to 'a' first, because MARCXML
// content is Unicode.
func (h *Handle) AppendMARCXML(dst []byte) ([]byte, error) {
	if h.leaderSpec == nil {
		h.ModifyLeader(format.UnicodeFlagOffset, "a")
	}
	return h.appendXML(dst, NamespaceMARCXML, "", "")
}

// AppendMarcXchange appends the record as a MarcXchange <record> element.
// recordFormat and recordType become the format and type attributes when not
// empty.
func (h *Handle) AppendMarcXchange(dst []byte, recordFormat, recordType string) ([]byte, error) {
	return h.appendXML(dst, NamespaceMarcXchange, recordFormat, recordType)
}

func (h *Handle) appendXML(dst []byte, ns, recordFormat, recordType string) ([]byte, error) {
	idLen, err := h.identifierLength()
	if err != nil {
		return dst, err
	}

	dst = append(dst, `<record xmlns="`...)
	dst = appendEscaped(dst, ns)
	dst = append(dst, '"')
	if recordFormat != "" {
		dst = append(dst, ` format="`...)
		dst = appendEscaped(dst, truncate(recordFormat, maxXchangeAttr))
		dst = append(dst, '"')
	}
	if recordType != "" {
		dst = append(dst, ` type="`...)
		dst = appendEscaped(dst, truncate(recordType, maxXchangeAttr))
		dst = append(dst, '"')
	}
	dst = append(dst, ">\n"...)

	for _, n := range h.rec.nodes {
		switch f := n.(type) {
		case *Leader:
			dst = append(dst, "  <leader>"...)
			dst = appendEscaped(dst, f.Bytes[:])
			dst = append(dst, "</leader>\n"...)
		case *ControlField:
			dst = append(dst, `  <controlfield tag="`...)
			dst = appendEscaped(dst, f.Tag)
			dst = append(dst, `">`...)
			dst = h.appendXMLText(dst, f.Data)
			dst = append(dst, "</controlfield>\n"...)
		case *DataField:
			dst = append(dst, `  <datafield tag="`...)
			dst = appendEscaped(dst, f.Tag)
			dst = append(dst, '"')
			for i := range f.Indicators {
				dst = append(dst, " ind"...)
				dst = strconv.AppendInt(dst, int64(i+1), 10)
				dst = append(dst, `="`...)
				dst = h.appendXMLText(dst, f.Indicators[i:i+1])
				dst = append(dst, '"')
			}
			dst = append(dst, ">\n"...)
			for _, sf := range f.Subfields {
				code, value := sf.Split(h.codeWidth(idLen, sf.CodeData))
				dst = append(dst, `    <subfield code="`...)
				dst = h.appendXMLText(dst, code)
				dst = append(dst, `">`...)
				dst = h.appendXMLText(dst, value)
				dst = append(dst, "</subfield>\n"...)
			}
			dst = append(dst, "  </datafield>\n"...)
		case *Comment:
			dst = append(dst, "<!-- "...)
			dst = appendCommentText(dst, f.Text)
			dst = append(dst, " -->\n"...)
		}
	}
	dst = append(dst, "</record>\n"...)
	return dst, nil
}

// appendXMLText converts src and appends it escaped for XML content or
// attribute values.
func (h *Handle) appendXMLText(dst, src []byte) []byte {
	if h.conv == nil {
		return appendEscaped(dst, src)
	}
	h.scratch = h.appendConverted(h.scratch[:0], src)
	return appendEscaped(dst, h.scratch)
}

func appendEscaped[T string | []byte](dst []byte, s T) []byte {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			dst = append(dst, "&amp;"...)
		case '<':
			dst = append(dst, "&lt;"...)
		case '>':
			dst = append(dst, "&gt;"...)
		case '"':
			dst = append(dst, "&quot;"...)
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// appendCommentText appends s with every "--" broken up, which XML forbids
// inside comments.
func appendCommentText(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		dst = append(dst, s[i])
		if s[i] == '-' && (i+1 == len(s) || s[i+1] == '-') {
			dst = append(dst, ' ')
		}
	}
	return dst
}
