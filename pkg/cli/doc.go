// Package cli implements the hartool command line.
//
// Commands:
//   - cat: print the filtered HAR as JSON, or write it to a file
//   - requests (list): one line per entry with method, status, time and URL
//   - view: full details of one entry, or JSONPath results over it
//   - info: log metadata, entry counts and status histogram
//   - batch: filter many HAR files matched by glob patterns
//   - validate: compile every rule of a filter configuration
//   - init: write a starter configuration from an embedded template
//   - help: command help and the embedded topics in package help
//   - version: build information
//
// Every command that reads a HAR file applies the filter configuration found
// by internal/cliconfig discovery: the --config flag, hartool.yaml in the
// working directory, hartool.yaml next to the executable, then the file named
// by HARTOOL_FILTER.
package cli
