package format

import (
	"errors"
	"testing"
)

var std = Leader{IndicatorLength: 2, IdentifierLength: 2, LengthOfFieldLength: 4, LengthOfStartingPosition: 5}

func TestDecodeDirEntry(t *testing.T) {
	b := []byte("xx245001200034")
	e, ok := DecodeDirEntry(b, 2, std)
	if !ok {
		t.Fatalf("DecodeDirEntry failed")
	}
	if e.Tag != "245" || e.Length != 12 || e.Start != 34 {
		t.Fatalf("unexpected entry %+v", e)
	}
	if _, ok := DecodeDirEntry(b, 3, std); ok {
		t.Fatalf("entry running past the buffer must fail")
	}
	if _, ok := DecodeDirEntry([]byte("24500x200034"), 0, std); ok {
		t.Fatalf("entry with non-digit length must fail")
	}
}

func TestAppendDirEntry(t *testing.T) {
	out, err := AppendDirEntry([]byte("D"), "1", 7, 120, std)
	if err != nil {
		t.Fatalf("AppendDirEntry: %v", err)
	}
	if string(out) != "D1  000700120" {
		t.Fatalf("AppendDirEntry=%q", out)
	}
	out, err = AppendDirEntry([]byte("D"), "245", 10000, 0, std)
	if !errors.Is(err, ErrOverflow) || string(out) != "D" {
		t.Fatalf("expected overflow and untouched dst, got %q %v", out, err)
	}
}

func TestIsControlTag(t *testing.T) {
	for tag, want := range map[string]bool{"001": true, "008": true, "010": false, "245": false, "0": false} {
		if IsControlTag(tag) != want {
			t.Errorf("IsControlTag(%q) != %v", tag, want)
		}
	}
}
