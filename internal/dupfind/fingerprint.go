package dupfind

import (
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	sha256 "github.com/minio/sha256-simd"
)

// hashChunkSize bounds memory use while hashing: files are streamed through
// the digest in chunks of this size instead of being read whole.
const hashChunkSize = 512 * 1024

// An Extractor derives the equality fingerprint for one detection
// criterion. Implementations are pure functions of the file's content or
// metadata at read time.
type Extractor interface {
	// Criterion returns the detection method this extractor implements.
	Criterion() Criterion

	// Fingerprint derives the equality key for rec. An error marks the
	// file as skipped for this criterion pass; it never aborts the run.
	Fingerprint(rec FileRecord) (Fingerprint, error)
}

// NewExtractor returns the extractor for the given criterion. Content is
// the fallback for unknown values.
func NewExtractor(criterion Criterion) Extractor {
	switch criterion {
	case BySize:
		return sizeExtractor{}
	case ByName:
		return nameExtractor{}
	case ByStem:
		return stemExtractor{}
	default:
		return contentExtractor{}
	}
}

// sizeExtractor fingerprints by byte length. No I/O beyond the stat already
// captured by the walker.
type sizeExtractor struct{}

func (sizeExtractor) Criterion() Criterion { return BySize }

func (sizeExtractor) Fingerprint(rec FileRecord) (Fingerprint, error) {
	return Fingerprint(strconv.FormatInt(rec.Size, 10)), nil
}

// nameExtractor fingerprints by the final path segment, extension included.
type nameExtractor struct{}

func (nameExtractor) Criterion() Criterion { return ByName }

func (nameExtractor) Fingerprint(rec FileRecord) (Fingerprint, error) {
	return Fingerprint(filepath.Base(rec.Path)), nil
}

// stemExtractor fingerprints by the final path segment with its extension
// stripped.
type stemExtractor struct{}

func (stemExtractor) Criterion() Criterion { return ByStem }

func (stemExtractor) Fingerprint(rec FileRecord) (Fingerprint, error) {
	return Fingerprint(stem(filepath.Base(rec.Path))), nil
}

// stem strips the final extension; names without one are used as-is.
func stem(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		// dotfiles like .bashrc have no extension to strip
		return name
	}

	return strings.TrimSuffix(name, ext)
}

// contentExtractor fingerprints by a SHA-256 digest of the full file bytes.
type contentExtractor struct{}

func (contentExtractor) Criterion() Criterion { return ByContent }

func (contentExtractor) Fingerprint(rec FileRecord) (Fingerprint, error) {
	file, err := os.Open(rec.Path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	digest := sha256.New()

	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(digest, file, buf); err != nil {
		return "", err
	}

	return Fingerprint(hex.EncodeToString(digest.Sum(nil))), nil
}
