package dupfind_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/idelchi/dupfind/internal/dupfind"
)

// helloSHA256 is the SHA-256 hex digest of "hello".
const helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func writeFile(t *testing.T, dir, name, content string) dupfind.FileRecord {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}

	return dupfind.FileRecord{Path: path, Size: info.Size(), ModTime: info.ModTime()}
}

func TestContentFingerprint(t *testing.T) {
	dir := t.TempDir()
	rec := writeFile(t, dir, "a.txt", "hello")

	extractor := dupfind.NewExtractor(dupfind.ByContent)

	fp, err := extractor.Fingerprint(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(fp) != helloSHA256 {
		t.Fatalf("wrong digest: fp=%s", fp)
	}

	// hashing the same file twice is deterministic
	again, err := extractor.Fingerprint(rec)
	if err != nil || again != fp {
		t.Fatalf("digest not stable: fp=%s, again=%s, e=%v", fp, again, err)
	}
}

func TestContentFingerprintCopies(t *testing.T) {
	dir := t.TempDir()
	original := writeFile(t, dir, "a.txt", "hello")
	copied := writeFile(t, dir, "b.txt", "hello")
	other := writeFile(t, dir, "c.txt", "world")

	extractor := dupfind.NewExtractor(dupfind.ByContent)

	fpA, err := extractor.Fingerprint(original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fpB, err := extractor.Fingerprint(copied)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fpC, err := extractor.Fingerprint(other)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fpA != fpB {
		t.Fatalf("byte-identical copies must match: a=%s, b=%s", fpA, fpB)
	}
	if fpA == fpC {
		t.Fatalf("different content must not match: a=%s, c=%s", fpA, fpC)
	}
}

func TestContentFingerprintMissingFile(t *testing.T) {
	extractor := dupfind.NewExtractor(dupfind.ByContent)

	rec := dupfind.FileRecord{Path: filepath.Join(t.TempDir(), "vanished.txt")}
	if fp, err := extractor.Fingerprint(rec); err == nil {
		t.Fatalf("no error for missing file: fp=%s", fp)
	}
}

func TestSizeFingerprint(t *testing.T) {
	extractor := dupfind.NewExtractor(dupfind.BySize)

	fp, err := extractor.Fingerprint(dupfind.FileRecord{Path: "x", Size: 1234})
	if err != nil || fp != "1234" {
		t.Fatalf("wrong size fingerprint: fp=%s, e=%v", fp, err)
	}
}

func TestNameAndStemFingerprints(t *testing.T) {
	tests := []struct {
		path string
		name dupfind.Fingerprint
		stem dupfind.Fingerprint
	}{
		{filepath.Join("music", "song.mp3"), "song.mp3", "song"},
		{filepath.Join("music", "song.flac"), "song.flac", "song"},
		{"archive.tar.gz", "archive.tar.gz", "archive.tar"},
		{".bashrc", ".bashrc", ".bashrc"},
		{"README", "README", "README"},
	}

	byName := dupfind.NewExtractor(dupfind.ByName)
	byStem := dupfind.NewExtractor(dupfind.ByStem)

	for _, tt := range tests {
		rec := dupfind.FileRecord{Path: tt.path}

		name, err := byName.Fingerprint(rec)
		if err != nil || name != tt.name {
			t.Fatalf("%s: wrong name fingerprint: got=%s, want=%s, e=%v", tt.path, name, tt.name, err)
		}

		stem, err := byStem.Fingerprint(rec)
		if err != nil || stem != tt.stem {
			t.Fatalf("%s: wrong stem fingerprint: got=%s, want=%s, e=%v", tt.path, stem, tt.stem, err)
		}
	}
}

func TestExtractorCriteria(t *testing.T) {
	for _, criterion := range dupfind.AllCriteria() {
		if got := dupfind.NewExtractor(criterion).Criterion(); got != criterion {
			t.Fatalf("extractor reports wrong criterion: got=%s, want=%s", got, criterion)
		}
	}
}
