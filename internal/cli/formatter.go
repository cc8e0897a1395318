package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/dupfind/internal/dupfind"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2

	timeLayout = "2006-01-02 15:04:05"
)

// sectionTitle maps each criterion to its report heading.
//
//nolint:gochecknoglobals // Display constant
var sectionTitle = map[dupfind.Criterion]string{
	dupfind.ByContent: "DUPLICATES BY CONTENT",
	dupfind.BySize:    "DUPLICATES BY SIZE",
	dupfind.ByName:    "DUPLICATES BY FILENAME",
	dupfind.ByStem:    "DUPLICATES BY FILENAME (without extension)",
}

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *dupfind.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the report in human-readable form: one section per
// requested criterion, member details per group, skipped-file diagnostics,
// and a summary per section.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(report *dupfind.Report, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "Scanned %d files (%s) under '%s'\n",
		report.FileCount, humanize.IBytes(uint64(report.TotalBytes)), report.Root)

	for _, section := range report.Sections {
		title := sectionTitle[section.Criterion]

		if len(section.Groups) == 0 {
			fmt.Fprintf(w, "\n%s: no duplicates found\n", title)

			continue
		}

		fmt.Fprintf(w, "\n%s\n", title)

		for _, group := range section.Groups {
			fmt.Fprintf(w, "\nDuplicate group (%d files):\n", len(group.Members))
			fmt.Fprintf(w, "  Key:\t%s\n", group.Key)
			fmt.Fprintf(w, "  Wasted:\t%s\n", humanize.IBytes(uint64(group.WastedBytes)))

			for i, member := range group.Members {
				fmt.Fprintf(w, "  [%d] %s\n", i+1, member.Path)
				fmt.Fprintf(w, "      Size:\t%s\n", humanize.IBytes(uint64(member.Size)))
				fmt.Fprintf(w, "      Modified:\t%s\n", member.ModTime.Format(timeLayout))

				if mimeType := mime.TypeByExtension(filepath.Ext(member.Path)); mimeType != "" {
					fmt.Fprintf(w, "      Type:\t%s\n", mimeType)
				}
			}
		}

		fmt.Fprintf(w, "\nSummary (%s):\n", section.Criterion)
		fmt.Fprintf(w, "  Duplicate files:\t%d\n", section.DuplicateCount)
		fmt.Fprintf(w, "  Wasted space:\t%s\n", humanize.IBytes(uint64(section.WastedBytes)))
	}

	if len(report.Diagnostics) > 0 {
		fmt.Fprintf(w, "\nSkipped %d files:\n", len(report.Diagnostics))

		for _, diag := range report.Diagnostics {
			fmt.Fprintf(w, "  - %s:\t%s\n", diag.Path, diag.Reason)
		}
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", report.Elapsed)

	return w.Flush()
}
