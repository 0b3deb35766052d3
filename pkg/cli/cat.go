package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	catCompact bool
	catOutput  string
)

var catCmd = &cobra.Command{
	Use:   "cat <file>",
	Short: "Output the (filtered) HAR file as JSON",
	Example: `  hartool cat capture.har
  hartool cat capture.har --compact -o clean.har
  hartool cat capture.har -c filters.yaml -v`,
	Args: cobra.ExactArgs(1),
	RunE: runCat,
}

func init() {
	catCmd.Flags().BoolVar(&catCompact, "compact", false, "Output compact JSON (default: pretty-printed)")
	catCmd.Flags().StringVarP(&catOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(catCmd)
}

func runCat(_ *cobra.Command, args []string) error {
	l, err := loadFiltered(args[0])
	if err != nil {
		return err
	}

	if l.Config.HasRules() && verbosity > 0 {
		before, after := l.Original.Len(), l.Doc.Len()
		printer.Notice("Filtered: %d -> %d entries (removed %d)", before, after, before-after)
	}

	data, err := l.Doc.JSON(!catCompact)
	if err != nil {
		return fmt.Errorf("encoding HAR: %w", err)
	}

	if catOutput != "" {
		if err := os.WriteFile(catOutput, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", catOutput, err)
		}
		printer.Println(printer.Colorize("Written to "+catOutput, successColor))
		return nil
	}
	printer.Println(string(data))
	return nil
}
