package registry

import (
	"bytes"
	"testing"
)

func TestKeyLayout(t *testing.T) {
	if got := KeyRecord("specimen", "SAMPLE_001"); string(got) != "reg/specimen/u/SAMPLE_001" {
		t.Fatalf("record key: %q", got)
	}
	if got := KeyStamp("study", "PBCPZR"); string(got) != "reg/study/s/PBCPZR" {
		t.Fatalf("stamp key: %q", got)
	}
	if got := PrefixRecords("specimen"); string(got) != "reg/specimen/u/" {
		t.Fatalf("prefix: %q", got)
	}
}

func TestRecordKeysSortWithinPrefix(t *testing.T) {
	prefix := PrefixRecords("specimen")
	a := KeyRecord("specimen", "A")
	b := KeyRecord("specimen", "B")
	if !bytes.HasPrefix(a, prefix) || !bytes.HasPrefix(b, prefix) {
		t.Fatalf("keys escape their category prefix")
	}
	if bytes.Compare(a, b) >= 0 {
		t.Fatalf("keys not ordered by domain key")
	}
}

func TestStampKeysOutsideRecordPrefix(t *testing.T) {
	// List scans must never pick up stamps.
	st := KeyStamp("specimen", "SAMPLE_001")
	if bytes.HasPrefix(st, PrefixRecords("specimen")) {
		t.Fatalf("stamp key %q collides with record prefix", st)
	}
}
