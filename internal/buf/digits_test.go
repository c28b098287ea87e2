package buf

import "testing"

func TestDigits(t *testing.T) {
	tests := []struct {
		in     string
		off, n int
		want   int
		ok     bool
	}{
		{"00123", 0, 5, 123, true},
		{"xx42x", 2, 2, 42, true},
		{"12a45", 0, 5, 0, false},
		{" 1234", 0, 5, 0, false},
		{"123", 1, 5, 0, false},
		{"", 0, 0, 0, false},
		{"18446744073709551621", 0, 20, 0, false},
		{"99999999999999999999999", 0, 23, 0, false},
		{"000000000000000000000042", 0, 24, 42, true},
	}
	for _, tt := range tests {
		got, ok := Digits([]byte(tt.in), tt.off, tt.n)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Digits(%q,%d,%d)=%d,%v want %d,%v", tt.in, tt.off, tt.n, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAppendDigits(t *testing.T) {
	got, ok := AppendDigits([]byte("x"), 42, 5)
	if !ok || string(got) != "x00042" {
		t.Fatalf("AppendDigits=%q,%v", got, ok)
	}
	if _, ok := AppendDigits(nil, 100000, 5); ok {
		t.Fatalf("expected overflow for 6-digit value in width 5")
	}
	if _, ok := AppendDigits(nil, -1, 3); ok {
		t.Fatalf("expected failure for negative value")
	}
	if got, ok := AppendDigits(nil, 0, 1); !ok || string(got) != "0" {
		t.Fatalf("AppendDigits(0,1)=%q,%v", got, ok)
	}
}

func TestPutDigits(t *testing.T) {
	b := []byte("aaaaaaa")
	if !PutDigits(b, 1, 77, 5) || string(b) != "a00077a" {
		t.Fatalf("PutDigits produced %q", b)
	}
	if PutDigits(b, 4, 1, 5) {
		t.Fatalf("PutDigits should fail out of bounds")
	}
}
