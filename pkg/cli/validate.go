package cli

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/hartool/internal/cliconfig"
	"github.com/getmockd/hartool/pkg/config"
	"github.com/getmockd/hartool/pkg/filter"
)

var (
	validateRules      bool
	validateShowResolved bool
)

// ValidateOutput is the result of `hartool validate --json`.
type ValidateOutput struct {
	Config       string          `json:"config"`
	Valid        bool            `json:"valid"`
	Mode         filter.Mode     `json:"mode"`
	IncludeRules int             `json:"includeRules"`
	IgnoreRules  int             `json:"ignoreRules"`
	Errors       []ValidateError `json:"errors,omitempty"`
}

// ValidateError is one rule that failed to compile.
type ValidateError struct {
	Set      string          `json:"set"`
	Category filter.Category `json:"category"`
	Pattern  string          `json:"pattern"`
	Message  string          `json:"message"`
}

// ErrInvalidConfig is returned when validate finds broken rules.
var ErrInvalidConfig = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate [config]",
	Short: "Check a filter configuration without reading any HAR file",
	Long: `Validate a filter configuration file.

Every rule of both sets is compiled, including the set the current mode
ignores, and every failure is reported. Without an argument the configuration
is discovered the same way the other commands do.`,
	Example: `  hartool validate
  hartool validate filters/api.yaml --show-resolved`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateRules, "rules", false, "List every rule with its kind")
	validateCmd.Flags().BoolVar(&validateShowResolved, "show-resolved", false, "Show the configuration after environment expansion")
	validateCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	var (
		cfg  *filter.Config
		path string
		err  error
	)
	if len(args) == 1 {
		cwd, baseDir := workDirs()
		path = cliconfig.ResolvePath(args[0], cwd, baseDir)
		cfg, err = config.LoadFilterConfig(path)
	} else {
		cfg, path, err = loadFilterConfig()
		if err == nil && cfg == nil {
			err = fmt.Errorf("%w: pass a path or create %s", config.ErrNotFound, cliconfig.ConfigFileName)
		}
	}
	if err != nil {
		return err
	}

	out := ValidateOutput{
		Config:       path,
		Mode:         cfg.Mode(),
		IncludeRules: cfg.Include.Len(),
		IgnoreRules:  cfg.Ignore.Len(),
	}
	for _, set := range []struct {
		name  string
		rules *filter.RuleSet
	}{{"include", cfg.Include}, {"ignore", cfg.Ignore}} {
		for _, perr := range set.rules.Check() {
			out.Errors = append(out.Errors, ValidateError{
				Set:      set.name,
				Category: perr.Category,
				Pattern:  perr.Pattern,
				Message:  perr.Cause.Error(),
			})
		}
	}
	out.Valid = len(out.Errors) == 0

	err = printResult(out, func() error {
		if validateRules {
			printRuleTable(cfg)
		}
		if out.Valid {
			printer.Println(printer.Colorize("Configuration is valid.", successColor))
		} else {
			printer.Println("Validation failed:")
			for _, e := range out.Errors {
				printer.Printf("  - %s %s rule %q: %s\n", e.Set, e.Category, e.Pattern, e.Message)
			}
		}
		printer.Printf("Mode: %s (%d include, %d ignore rules)\n", out.Mode, out.IncludeRules, out.IgnoreRules)
		if validateShowResolved {
			data, err := yaml.Marshal(config.File{Filters: cfg})
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			printer.Println()
			printer.Println("Resolved configuration:")
			printer.Printf("%s", data)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !out.Valid {
		return fmt.Errorf("%w with %d error(s)", ErrInvalidConfig, len(out.Errors))
	}
	return nil
}

func printRuleTable(cfg *filter.Config) {
	tw := printer.Table()
	tw.AppendHeader(table.Row{"Set", "Category", "Pattern", "Kind"})
	for _, set := range []struct {
		name  string
		rules *filter.RuleSet
	}{{"include", cfg.Include}, {"ignore", cfg.Ignore}} {
		for _, c := range filter.Categories() {
			for _, raw := range set.rules.Patterns(c) {
				kind := "extension"
				if c != filter.CategoryExtensions {
					kind = "glob"
					if filter.IsRegex(raw) {
						kind = "regex"
					}
				}
				tw.AppendRow(table.Row{set.name, c, raw, kind})
			}
		}
	}
	tw.Render()
}
