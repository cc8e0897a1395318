package dupfind

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// startProgressReporter invokes hook(done, total) on each tick until ctx is
// done.
func startProgressReporter(ctx context.Context, done *atomic.Int64, total int64, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(done.Load(), total)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run scans opt.Path once and performs one grouping pass per requested
// criterion. Grouping state is never shared between criteria. Progress
// updates during content hashing are sent to progressHook if provided.
//
// The run can be cancelled via ctx: in-flight file reads finish and the
// remaining enumeration is discarded. The only fatal error is a missing or
// unreadable root; per-file failures are recovered and surfaced on the
// Report as diagnostics.
func Run(ctx context.Context, opt Options, progressHook func(done, total int64)) (*Report, error) {
	if opt.Path == "" {
		opt.Path = "."
	}

	// Normalize to native format to handle both C:/Path and C:\Path inputs
	opt.Path = filepath.Clean(opt.Path)

	if statInfo, err := os.Stat(opt.Path); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Path)
	}

	criteria := opt.Criteria
	if len(criteria) == 0 {
		criteria = []Criterion{ByContent}
	}

	// Create child context so the progress reporter always stops
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()

	records, diags, err := scan(ctx, opt, newExtensionSet(opt.Extensions))
	if err != nil {
		return nil, err
	}

	log.Debugf("scanned %d files under %s", len(records), opt.Path)

	report := &Report{
		Root:        opt.Path,
		FileCount:   len(records),
		Diagnostics: diags,
	}
	for _, rec := range records {
		report.TotalBytes += rec.Size
	}

	for _, criterion := range criteria {
		section, skipped := groupBy(ctx, criterion, records, progressHook, opt.ProgressInterval)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		report.Sections = append(report.Sections, section)
		report.Diagnostics = append(report.Diagnostics, skipped...)
	}

	report.Elapsed = time.Since(start)

	return report, nil
}

// groupBy runs one criterion pass over records. Metadata criteria
// fingerprint inline; content hashing fans out to a bounded worker pool,
// with results stitched back by index so the grouper sees discovery order.
func groupBy(ctx context.Context, criterion Criterion, records []FileRecord, progressHook func(int64, int64), interval time.Duration) (Section, []Diagnostic) {
	extractor := NewExtractor(criterion)
	group := newGrouper(criterion)

	if criterion != ByContent {
		var diags []Diagnostic

		for _, rec := range records {
			fp, err := extractor.Fingerprint(rec)
			if err != nil {
				// metadata extractors cannot fail today, but the contract allows it
				diags = append(diags, Diagnostic{Path: rec.Path, Reason: err.Error()})

				continue
			}

			group.add(rec, fp)
		}

		return group.finalize(), diags
	}

	fingerprints, diags := hashAll(ctx, extractor, records, progressHook, interval)
	for i, rec := range records {
		if fingerprints[i] == "" {
			continue
		}

		group.add(rec, fingerprints[i])
	}

	return group.finalize(), diags
}

// hashAll fingerprints records concurrently with one worker per available
// CPU. The result slice is indexed like records; files skipped by read
// errors keep an empty fingerprint and produce a diagnostic instead.
func hashAll(ctx context.Context, extractor Extractor, records []FileRecord, progressHook func(int64, int64), interval time.Duration) ([]Fingerprint, []Diagnostic) {
	fingerprints := make([]Fingerprint, len(records))

	var (
		diags []Diagnostic
		done  atomic.Int64
		mu    sync.Mutex
		wg    sync.WaitGroup
	)

	reporterCtx, stopReporter := context.WithCancel(ctx)
	defer stopReporter()

	startProgressReporter(reporterCtx, &done, int64(len(records)), progressHook, interval)

	workers := runtime.GOMAXPROCS(0)
	if workers > len(records) {
		workers = len(records)
	}

	indexes := make(chan int)

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range indexes {
				fp, err := extractor.Fingerprint(records[i])
				if err != nil {
					log.Warnf("skipping %s: %v", records[i].Path, err)

					mu.Lock()
					diags = append(diags, Diagnostic{Path: records[i].Path, Reason: err.Error()})
					mu.Unlock()
				} else {
					fingerprints[i] = fp
				}

				done.Add(1)
			}
		}()
	}

feed:
	for i := range records {
		select {
		case indexes <- i:
		case <-ctx.Done():
			break feed
		}
	}

	close(indexes)
	wg.Wait()

	// diagnostics arrive in completion order; sort for stable output
	sort.Slice(diags, func(i, j int) bool { return diags[i].Path < diags[j].Path })

	return fingerprints, diags
}
