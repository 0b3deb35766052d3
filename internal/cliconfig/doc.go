// Package cliconfig resolves where hartool reads its inputs from and which
// runtime settings apply.
//
// Settings are layered with the following precedence (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables (HARTOOL_* prefix, NO_COLOR, FORCE_COLOR)
//  3. Default values
//
// Each setting records the layer it came from in Settings.Sources.
//
// The filter configuration file is found by Resolve over an ordered list of
// candidate Sources; DefaultSources builds the standard list. LoadDotEnv
// applies a .env.local file before any of this happens.
package cliconfig
