package dupfind

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/facette/natsort"
	log "github.com/sirupsen/logrus"
)

// extensionSet is a lowercase set of dot-prefixed extensions.
type extensionSet map[string]struct{}

// newExtensionSet normalizes the configured extensions for lookup. A nil
// set admits every file.
func newExtensionSet(extensions []string) extensionSet {
	set := make(extensionSet, len(extensions))

	for _, ext := range extensions {
		ext = strings.TrimSpace(strings.Trim(ext, "'\""))
		if ext == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		set[strings.ToLower(ext)] = struct{}{}
	}

	if len(set) == 0 {
		return nil
	}

	return set
}

// match reports whether path passes the extension filter.
func (s extensionSet) match(path string) bool {
	if s == nil {
		return true
	}

	_, ok := s[strings.ToLower(filepath.Ext(path))]

	return ok
}

// pathDepth returns the depth of a path relative to the root. Direct
// children of the root have depth 1.
func pathDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// fileSet accumulates records from concurrent fastwalk callbacks using a
// mutex, since fastwalk invokes the walk callback from multiple goroutines.
type fileSet struct {
	mu      sync.Mutex
	records map[string]FileRecord
	diags   []Diagnostic
}

func newFileSet() *fileSet {
	return &fileSet{records: make(map[string]FileRecord)}
}

// add stores one discovered file.
func (s *fileSet) add(rec FileRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Path] = rec
}

// skip records a recovered per-file failure as a diagnostic.
func (s *fileSet) skip(path string, err error) {
	log.Warnf("skipping %s: %v", path, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, Diagnostic{Path: path, Reason: err.Error()})
}

// finalize returns the collected records in natural path order. fastwalk
// visits entries in nondeterministic order, so the sort is what makes two
// scans of an unchanged tree come out identical.
func (s *fileSet) finalize() ([]FileRecord, []Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths := make([]string, 0, len(s.records))
	for path := range s.records {
		paths = append(paths, path)
	}

	natsort.Sort(paths)

	records := make([]FileRecord, len(paths))
	for i, path := range paths {
		records[i] = s.records[path]
	}

	sort.Slice(s.diags, func(i, j int) bool {
		return s.diags[i].Path < s.diags[j].Path
	})

	return records, s.diags
}

// scan enumerates the regular files under opt.Path that pass the extension
// and size filters. Symbolic links to directories are never followed;
// symbolic links to files are resolved and recorded with the target's
// metadata. Per-file errors are reported as diagnostics, never as a scan
// failure.
func scan(ctx context.Context, opt Options, extensions extensionSet) ([]FileRecord, []Diagnostic, error) {
	set := newFileSet()

	conf := &fastwalk.Config{
		Follow: false, // don't descend into symlinked directories
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, opt.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			set.skip(path, err)

			return nil
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		// Non-recursive mode keeps direct children of the root only
		if !opt.Recursive {
			depth := pathDepth(path, opt.Path)

			if d.IsDir() && depth >= 1 {
				log.Debugf("skipping directory (non-recursive): %s", path)

				return filepath.SkipDir
			}

			if !d.IsDir() && depth > 1 {
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		if !extensions.match(path) {
			log.Debugf("excluding file (extension filter): %s", path)

			return nil
		}

		info, err := statEntry(path, d)
		if err != nil {
			set.skip(path, err)

			return nil
		}

		if info == nil {
			// not a regular file after resolution (socket, fifo, dangling link)
			return nil
		}

		if info.Size() < opt.MinSize {
			return nil
		}

		set.add(FileRecord{Path: path, Size: info.Size(), ModTime: info.ModTime()})

		return nil
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}

	records, diags := set.finalize()

	return records, diags, nil
}

// statEntry resolves the metadata for one directory entry. Symlinks are
// followed with os.Stat so a link to a regular file counts as the file it
// points to; anything that is not a regular file after resolution returns
// nil without error.
func statEntry(path string, d fs.DirEntry) (os.FileInfo, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.Mode().IsRegular() {
			return nil, nil
		}

		return info, nil
	}

	if !d.Type().IsRegular() {
		return nil, nil
	}

	return d.Info()
}
