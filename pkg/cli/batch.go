package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	batchOutDir  string
	batchSuffix  string
	batchCompact bool
)

// BatchResult describes one file processed by `hartool batch`.
type BatchResult struct {
	Input   string `json:"input"`
	Output  string `json:"output"`
	Entries int    `json:"entries"`
	Kept    int    `json:"kept"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <pattern>...",
	Short: "Filter many HAR files at once",
	Long: `Filter every HAR file matched by the given patterns with the same filter
configuration. Patterns support ** for recursive matching.

Filtered files are written into --out-dir under their original name, or next
to the input with --suffix inserted before the extension. Processing stops at
the first error.`,
	Example: `  hartool batch 'captures/**/*.har' --out-dir clean/
  hartool batch a.har b.har --suffix .filtered`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "Directory to write filtered files into")
	batchCmd.Flags().StringVar(&batchSuffix, "suffix", "", "Write filtered files next to the input with this suffix before the extension")
	batchCmd.Flags().BoolVar(&batchCompact, "compact", false, "Write compact JSON")
	batchCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	batchCmd.MarkFlagsMutuallyExclusive("out-dir", "suffix")
	batchCmd.MarkFlagsOneRequired("out-dir", "suffix")
	rootCmd.AddCommand(batchCmd)
}

// expandPatterns returns the files matched by patterns, sorted and without
// duplicates. A pattern without glob metacharacters names a file directly.
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			files = append(files, pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		logger.Debug("expanded pattern", "pattern", pattern, "matches", len(matches))
		files = append(files, matches...)
	}
	slices.Sort(files)
	files = slices.Compact(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInputs, strings.Join(patterns, " "))
	}
	return files, nil
}

// batchOutputPath names the file the filtered copy of input is written to.
func batchOutputPath(input, outDir, suffix string) string {
	if outDir != "" {
		return filepath.Join(outDir, filepath.Base(input))
	}
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}

func runBatch(_ *cobra.Command, args []string) error {
	files, err := expandPatterns(args)
	if err != nil {
		return err
	}
	cfg, cfgPath, err := loadFilterConfig()
	if err != nil {
		return err
	}
	if batchOutDir != "" {
		if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	results := make([]BatchResult, 0, len(files))
	for _, input := range files {
		out := batchOutputPath(input, batchOutDir, batchSuffix)
		if sameFile(input, out) {
			return fmt.Errorf("refusing to overwrite input file %s", input)
		}

		l, err := loadFilteredWith(input, cfg, cfgPath)
		if err != nil {
			return err
		}
		data, err := l.Doc.JSON(!batchCompact)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", input, err)
		}
		if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		logger.Info("filtered HAR file", "input", input, "output", out, "entries", l.Original.Len(), "kept", l.Doc.Len())
		results = append(results, BatchResult{Input: input, Output: out, Entries: l.Original.Len(), Kept: l.Doc.Len()})
	}

	return printResult(results, func() error {
		tw := printer.Table()
		tw.AppendHeader(table.Row{"Input", "Entries", "Kept", "Output"})
		for _, r := range results {
			tw.AppendRow(table.Row{r.Input, r.Entries, r.Kept, r.Output})
		}
		tw.Render()
		printer.Println(printer.Colorize(fmt.Sprintf("Processed %d files", len(results)), successColor))
		return nil
	})
}

func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}
