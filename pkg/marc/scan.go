package marc

import (
	"errors"
	"fmt"

	"github.com/joshuapare/marckit/internal/format"
	"github.com/joshuapare/marckit/pkg/xmltree"
)

// MaxRecordSize is the largest record ISO 2709 can describe. Scanners using
// ScanRecords need a buffer at least this large:
//
//	sc := bufio.NewScanner(r)
//	sc.Buffer(make([]byte, 0, 64*1024), marc.MaxRecordSize)
//	sc.Split(marc.ScanRecords)
const MaxRecordSize = format.MaxRecordLength

// ErrTruncatedStream is returned by ScanRecords when input ends inside a
// record.
var ErrTruncatedStream = errors.New("marc: input ends inside a record")

// ScanRecords is a bufio.SplitFunc that returns one ISO 2709 record per
// token, using the record length in its leader. Line breaks between records
// are skipped.
func ScanRecords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && (data[start] == '\n' || data[start] == '\r') {
		start++
	}
	rest := data[start:]
	if len(rest) == 0 {
		return start, nil, nil
	}
	if len(rest) < format.RecordLengthLen {
		if atEOF {
			return 0, nil, fmt.Errorf("%w: %d trailing bytes", ErrTruncatedStream, len(rest))
		}
		return start, nil, nil
	}
	n, err := format.RecordLength(rest)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrRecordLength, err)
	}
	if n < format.MinRecordLength {
		return 0, nil, fmt.Errorf("%w: %d < %d", ErrRecordLength, n, format.MinRecordLength)
	}
	if len(rest) < n {
		if atEOF {
			return 0, nil, fmt.Errorf("%w: have %d of %d bytes", ErrTruncatedStream, len(rest), n)
		}
		return start, nil, nil
	}
	return start + n, rest[:n], nil
}

// RecordElements returns the <record> elements of a parsed document: the
// root itself when it is a record, or the element children of a
// <collection>. Each can be passed to Handle.ReadXMLRecord.
func RecordElements(nodes []*xmltree.Node) []*xmltree.Node {
	root := xmltree.Root(nodes)
	if root == nil {
		return nil
	}
	if root.Name == "collection" {
		return root.Elements()
	}
	return []*xmltree.Node{root}
}
