package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/hartool/internal/cliconfig"
	"github.com/getmockd/hartool/pkg/cli/templates"
	"github.com/getmockd/hartool/pkg/config"
)

var (
	initForce    bool
	initOutput   string
	initTemplate string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter filter configuration",
	Long: `Write a starter hartool.yaml from one of the built-in templates.

The file is checked before it is written, so a template that does not
compile never reaches disk.`,
	Example: `  # Create hartool.yaml in the current directory
  hartool init

  # List available templates
  hartool init --template list

  # Keep only API traffic, written elsewhere
  hartool init -t api-only -o filters/api.yaml

  # Overwrite an existing file
  hartool init --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", cliconfig.ConfigFileName, "Output filename")
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "default", "Template to use (use 'list' to see available templates)")
	_ = initCmd.RegisterFlagCompletionFunc("template", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return append(templates.List(), "list"), cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	if strings.EqualFold(initTemplate, "list") {
		printer.Printf("%s", templates.FormatList())
		return nil
	}
	if !templates.Exists(initTemplate) {
		return fmt.Errorf("unknown template: %s\n\nRun 'hartool init --template list' to see available templates", initTemplate)
	}

	data, err := templates.Get(initTemplate)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}
	cfg, err := config.ParseFilterConfig(data)
	if err != nil {
		return fmt.Errorf("template %s: %w", initTemplate, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("template %s: %w", initTemplate, err)
	}

	if _, err := os.Stat(initOutput); err == nil && !initForce {
		return fmt.Errorf("file already exists: %s\n\nUse --force to overwrite", initOutput)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if dir := filepath.Dir(initOutput); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(initOutput, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", initOutput, err)
	}

	logger.Info("wrote filter configuration", "path", initOutput, "template", initTemplate, "mode", cfg.Mode())
	printer.Println(printer.Colorize("Created "+initOutput, successColor))
	printer.Printf("Filter mode: %s (%d include, %d ignore rules)\n", cfg.Mode(), cfg.Include.Len(), cfg.Ignore.Len())
	return nil
}
