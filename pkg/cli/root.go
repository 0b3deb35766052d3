package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/getmockd/hartool/internal/cliconfig"
	"github.com/getmockd/hartool/pkg/cli/internal/output"
	"github.com/getmockd/hartool/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	configPath string
	logLevel   string
	logFormat  string
	colorMode  string
	verbosity  int

	// jsonOutput is bound to the --json flag of the commands that have one.
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"

	// Set up by PersistentPreRunE for the running command.
	settings = cliconfig.NewDefault()
	logger   = logging.Nop()
	printer  = output.New(os.Stdout, os.Stderr, output.ColorNever)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hartool",
	Short: "Inspect and filter HTTP Archive (HAR) files",
	Long: `hartool lists, views and filters the entries of HAR files captured by
browsers and proxies.

Filtering rules are read from a YAML file: the --config flag, hartool.yaml in
the current directory, hartool.yaml next to the hartool executable, or the
file named by HARTOOL_FILTER, in that order.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Main()
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to filter config YAML file (default: hartool.yaml)")
	pf.StringVar(&logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level: debug, info, warn or error")
	pf.StringVar(&logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format: text or json")
	pf.StringVar(&colorMode, "color", cliconfig.DefaultColor, "Colorize output: auto, always or never")
	pf.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")
}

// setup resolves settings from defaults, environment and flags, then builds
// the logger and printer used by the command.
func setup(cmd *cobra.Command, _ []string) error {
	settings = cliconfig.NewDefault()
	cliconfig.LoadEnv(settings)

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		settings.Set(cliconfig.KeyLogLevel, logLevel, cliconfig.SourceFlag)
	}
	if flags.Changed("log-format") {
		settings.Set(cliconfig.KeyLogFormat, logFormat, cliconfig.SourceFlag)
	}
	if flags.Changed("color") {
		settings.Set(cliconfig.KeyColor, colorMode, cliconfig.SourceFlag)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(settings.LogLevel)
	format, _ := logging.ParseFormat(settings.LogFormat)
	mode, _ := output.ParseColorMode(settings.Color)

	logger = logging.New(logging.Config{
		Level:  logging.VerbosityLevel(level, verbosity),
		Format: format,
		Output: cmd.ErrOrStderr(),
	})
	printer = output.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	logger.Debug("settings resolved",
		slog.Group("logLevel", "value", settings.LogLevel, "source", settings.Sources[cliconfig.KeyLogLevel]),
		slog.Group("logFormat", "value", settings.LogFormat, "source", settings.Sources[cliconfig.KeyLogFormat]),
		slog.Group("color", "value", settings.Color, "source", settings.Sources[cliconfig.KeyColor]),
	)
	return nil
}

// Main runs hartool with os.Args and returns the process exit code.
func Main() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

// Execute runs hartool and exits. This is called by main.main().
func Execute() {
	os.Exit(Main())
}

func run(args []string, stdout, stderr io.Writer) int {
	if cwd, err := os.Getwd(); err == nil {
		if _, err := cliconfig.LoadDotEnv(filepath.Join(cwd, cliconfig.DotEnvFileName)); err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
	}

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
