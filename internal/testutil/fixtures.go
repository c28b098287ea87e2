// Package testutil holds record fixtures and file helpers shared by tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Separator bytes as strings, for composing fixtures.
const (
	RS   = "\x1d"
	FS   = "\x1e"
	IDFS = "\x1f"
)

// SampleLeader is the leader of SampleISO before the writer fills in the
// record length and base address.
const SampleLeader = "00000nam  2200000   4500"

// SampleISO is a record with control field 001 "abc" and data field 245,
// indicators "10", subfields $aTitle and $bSub.
const SampleISO = "00069nam  2200049   4500" +
	"001000400000" +
	"245001500004" + FS +
	"abc" + FS +
	"10" + IDFS + "aTitle" + IDFS + "bSub" + FS +
	RS

// SampleCollection is a MARCXML collection of two records, the first one
// holding the same fields as SampleISO.
const SampleCollection = `<collection xmlns="http://www.loc.gov/MARC21/slim">
<record>
  <leader>00000nam a2200000   4500</leader>
  <controlfield tag="001">abc</controlfield>
  <datafield tag="245" ind1="1" ind2="0">
    <subfield code="a">Title</subfield>
    <subfield code="b">Sub</subfield>
  </datafield>
</record>
<record>
  <leader>00000nam a2200000   4500</leader>
  <controlfield tag="001">def</controlfield>
</record>
</collection>
`

// Patch returns a copy of rec with patch written at off.
func Patch(rec string, off int, patch string) string {
	b := []byte(rec)
	copy(b[off:], patch)
	return string(b)
}

// WriteFile writes content to name in a per-test temporary directory and
// returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
