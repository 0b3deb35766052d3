// Package logging builds the *slog.Logger used across hartool.
//
// Logs always go to stderr so that stdout carries only command output (HAR
// JSON, tables, entry views) and can be piped:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	logger.Debug("filtered HAR entries", "keptEntries", 3)
//
// Components take a *slog.Logger through an option. When none is given they
// use Nop.
package logging
