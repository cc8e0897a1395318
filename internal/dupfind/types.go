package dupfind

import (
	"time"
)

// Criterion identifies one duplicate-detection method.
type Criterion string

// Detection criteria. Filename and stem comparison is case-sensitive on all
// platforms, so "Photo.JPG" and "photo.jpg" never group together.
const (
	// ByContent groups files whose full byte content hashes to the same
	// SHA-256 digest.
	ByContent Criterion = "content"
	// BySize groups files with identical byte length.
	BySize Criterion = "size"
	// ByName groups files with identical filenames, extension included.
	ByName Criterion = "name"
	// ByStem groups files whose filename matches once the final extension
	// is removed.
	ByStem Criterion = "stem"
)

// AllCriteria returns every detection criterion in report order.
func AllCriteria() []Criterion {
	return []Criterion{ByContent, BySize, ByName, ByStem}
}

// SizeUniform reports whether every member of a group under this criterion
// necessarily has the same byte length.
func (c Criterion) SizeUniform() bool {
	return c == ByContent || c == BySize
}

// Fingerprint is the equality key derived from a file under one criterion:
// a hex SHA-256 digest for content, a decimal byte count for size, or the
// filename respectively stem for the name criteria. Fingerprints from
// different criteria are never compared against each other.
type Fingerprint string

// FileRecord is one regular file discovered by the walker. Records are
// immutable once created and live only for the duration of a run.
type FileRecord struct {
	// Path is the file path as discovered under the scan root.
	Path string `json:"path"`
	// Size is the byte length at scan time.
	Size int64 `json:"size"`
	// ModTime is the last-modification timestamp at scan time.
	ModTime time.Time `json:"mod_time"`
}

// DuplicateGroup is a set of two or more files sharing a fingerprint under
// one criterion. Groups of a single file are never emitted.
type DuplicateGroup struct {
	// Criterion is the detection method that produced the group.
	Criterion Criterion `json:"criterion"`
	// Key is the shared fingerprint value.
	Key Fingerprint `json:"key"`
	// Members holds the files in discovery order.
	Members []FileRecord `json:"members"`
	// WastedBytes is the space reclaimable by keeping a single member: for
	// size-uniform criteria (n-1) times the member size, otherwise the sum
	// of all member sizes minus the largest member.
	WastedBytes int64 `json:"wasted_bytes"`
}

// Section holds the complete result of one criterion pass.
type Section struct {
	// Criterion is the detection method for this section.
	Criterion Criterion `json:"criterion"`
	// Groups is ordered by descending WastedBytes; ties keep first-seen
	// order.
	Groups []DuplicateGroup `json:"groups"`
	// DuplicateCount is the number of removable copies, summed as member
	// count minus one over all groups.
	DuplicateCount int `json:"duplicate_count"`
	// WastedBytes is the sum of WastedBytes over all groups.
	WastedBytes int64 `json:"wasted_bytes"`
}

// Diagnostic records a file that was skipped by a recovered error such as
// a permission failure or a file vanishing mid-scan.
type Diagnostic struct {
	// Path is the affected file or directory.
	Path string `json:"path"`
	// Reason is the underlying error text.
	Reason string `json:"reason"`
}

// Report is the output of a full run.
type Report struct {
	// Root is the cleaned scan root.
	Root string `json:"root"`
	// FileCount is the number of files that entered the analysis.
	FileCount int `json:"file_count"`
	// TotalBytes is the cumulative size of the analyzed files.
	TotalBytes int64 `json:"total_bytes"`
	// Sections holds one entry per requested criterion, in request order.
	Sections []Section `json:"sections"`
	// Diagnostics lists files skipped by recovered errors.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	// Elapsed is the total time taken for the run.
	Elapsed time.Duration `json:"elapsed"`
}

// Options configures a duplicate scan and CLI behavior.
type Options struct {
	// Path is the directory to scan.
	Path string
	// Criteria lists the requested detection methods, in report order.
	// Empty defaults to content detection.
	Criteria []Criterion
	// Extensions restricts the scan to files carrying one of these
	// extensions (case-insensitive, leading dot optional). Empty means no
	// filter.
	Extensions []string
	// Recursive controls descent into subdirectories.
	Recursive bool
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Output represents the output format (table or json).
	Output string
	// Version indicates whether to show version and exit.
	Version bool
}
