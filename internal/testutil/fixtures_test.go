package testutil

import (
	"os"
	"testing"
)

func TestSampleISOLength(t *testing.T) {
	if len(SampleISO) != 69 {
		t.Fatalf("SampleISO length = %d, leader says 69", len(SampleISO))
	}
}

func TestPatch(t *testing.T) {
	got := Patch("abcdef", 2, "XY")
	if got != "abXYef" {
		t.Fatalf("Patch = %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, "x.mrc", "data")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != "data" {
		t.Fatalf("content = %q", b)
	}
}
