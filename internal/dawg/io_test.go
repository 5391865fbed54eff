package dawg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileRoundTrip(t *testing.T) {
	a := buildFixture(t)
	blob, err := a.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "words.dawg")
	if err := os.WriteFile(path, blob, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	mapped, err := LoadFile(path, 2)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	defer mapped.Close()

	if !mapped.Contains("кошка") {
		t.Fatal("mapped automaton missing кошка")
	}
	if vals := mapped.GetValues("кот"); len(vals) != 1 || vals[0][1] != 1 {
		t.Fatalf("mapped GetValues(кот) = %v", vals)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.dawg"), 2); err == nil {
		t.Fatal("LoadFile of a missing path returned no error")
	}
}
