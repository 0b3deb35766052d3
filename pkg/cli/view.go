package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/hartool/pkg/cli/internal/render"
	"github.com/getmockd/hartool/pkg/har"
)

var (
	viewRequestBody  bool
	viewResponseBody bool
	viewQuery        string
)

var viewCmd = &cobra.Command{
	Use:   "view <file> <index>",
	Short: "View full details of a specific request by index",
	Long: `Show the request, response and timings of one entry. The index refers to
the entry list after filtering, as printed by "hartool requests".

--query evaluates a JSONPath expression against the raw entry, e.g.
  hartool view capture.har 3 --query '$.response.headers[?(@.name == "server")].value'`,
	Args: cobra.ExactArgs(2),
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output the raw entry JSON")
	viewCmd.Flags().BoolVar(&viewRequestBody, "request-body", false, "Show request body")
	viewCmd.Flags().BoolVar(&viewResponseBody, "response-body", false, "Show response body")
	viewCmd.Flags().StringVar(&viewQuery, "query", "", "Print the results of a JSONPath expression over the entry")
	rootCmd.AddCommand(viewCmd)
}

func runView(_ *cobra.Command, args []string) error {
	index, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return fmt.Errorf("invalid index %q: must be an integer", args[1])
	}

	l, err := loadFiltered(args[0])
	if err != nil {
		return err
	}
	entry, ok := l.Doc.Entry(index)
	if !ok {
		return &IndexError{Index: index, Count: l.Doc.Len()}
	}

	if viewQuery != "" {
		results, err := entry.Query(viewQuery)
		if err != nil {
			return err
		}
		return printer.JSON(results)
	}

	if jsonOutput {
		return printRawEntry(entry)
	}

	render.Entry(printer.Out, printer, entry, render.Options{
		RequestBody:  viewRequestBody,
		ResponseBody: viewResponseBody,
	})
	return nil
}

// printRawEntry prints the entry exactly as recorded, indented.
func printRawEntry(entry har.Entry) error {
	raw, err := entry.MarshalJSON()
	if err != nil {
		return err
	}
	printer.Println(render.FormatBody(string(raw), "application/json"))
	return nil
}
