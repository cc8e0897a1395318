package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/idelchi/dupfind/internal/dupfind"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var (
		options     dupfind.Options
		minSizeStr  string
		byContent   bool
		bySize      bool
		byName      bool
		byStem      bool
		all         bool
		noRecursive bool
	)

	allowedOutputs := []string{"table", "json"}

	cmd := &cobra.Command{
		Use:   "dupfind [flags] <directory>",
		Short: "Find duplicate files under a directory",
		Long: heredoc.Doc(`
			dupfind scans a directory tree and groups files that are duplicates
			of one another.

			Four detection methods are available and can be combined:

			  --by-content   identical file content (SHA-256)
			  --by-size      identical file size
			  --by-name      identical filename
			  --by-stem      identical filename without its extension

			Content detection is used when no method is selected. Each requested
			method is reported as its own section. dupfind only reports; it
			never deletes or moves files.
		`),
		Example: heredoc.Doc(`
			dupfind /path/to/directory --by-content
			dupfind /path/to/directory --by-size --by-name
			dupfind /path/to/directory --by-content --types .jpg,.png,.gif
			dupfind /path/to/directory --all --no-recursive
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.Version {
				//nolint:forbidigo // Version output to console
				fmt.Println(c.version)

				return nil
			}

			if options.Debug {
				log.SetLevel(log.DebugLevel)
			}

			if !slices.Contains(allowedOutputs, strings.ToLower(options.Output)) {
				return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
			}

			if len(args) == 0 {
				return errors.New("missing directory to scan")
			}

			options.Path = args[0]
			options.Recursive = !noRecursive

			if all {
				options.Criteria = dupfind.AllCriteria()
			} else {
				for _, selected := range []struct {
					on        bool
					criterion dupfind.Criterion
				}{
					{byContent, dupfind.ByContent},
					{bySize, dupfind.BySize},
					{byName, dupfind.ByName},
					{byStem, dupfind.ByStem},
				} {
					if selected.on {
						options.Criteria = append(options.Criteria, selected.criterion)
					}
				}
			}

			// Parse minSize string to bytes
			if minSizeStr != "" {
				size, err := humanize.ParseBytes(minSizeStr)
				if err != nil {
					return fmt.Errorf("invalid min-size: %w", err)
				}

				options.MinSize = int64(size) //nolint:gosec // Size conversion from humanize is safe
			}

			return logic(options)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&byContent, "by-content", false, "Find duplicates by file content (hash comparison)")
	flags.BoolVar(&bySize, "by-size", false, "Find duplicates by file size")
	flags.BoolVar(&byName, "by-name", false, "Find duplicates by filename")
	flags.BoolVar(&byStem, "by-stem", false, "Find duplicates by filename without extension")
	flags.BoolVar(&all, "all", false, "Run all duplicate detection methods")
	flags.StringSliceVarP(
		&options.Extensions,
		"types",
		"x",
		[]string{},
		"File extensions to include (e.g., .jpg,.png). Empty includes all files",
	)
	flags.BoolVar(&noRecursive, "no-recursive", false, "Don't scan subdirectories recursively")
	flags.StringVar(&minSizeStr, "min-size", "0B", "Minimum file size to consider (e.g., 1KB)")
	flags.StringVarP(&options.Output, "output", "o", "table", "Output format: json or table")
	flags.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	flags.BoolVarP(&options.Version, "version", "v", false, "Show version and exit")
	flags.SortFlags = false

	return cmd.Execute()
}
