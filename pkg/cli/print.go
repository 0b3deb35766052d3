package cli

// printResult outputs a command result.
//
// When --json is active only the JSON encoding of data is written to stdout.
// textFn is called only in text mode.
func printResult(data any, textFn func() error) error {
	if jsonOutput {
		return printer.JSON(data)
	}
	return textFn()
}
