package cli

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/getmockd/hartool/pkg/cli/internal/render"
	"github.com/getmockd/hartool/pkg/filter"
)

var requestsExplain bool

// RequestSummary is one entry of `requests --json`.
type RequestSummary struct {
	Index       int     `json:"index"`
	Method      string  `json:"method"`
	URL         string  `json:"url"`
	Status      int     `json:"status"`
	Time        float64 `json:"time"`
	ContentType string  `json:"contentType"`
	Size        int     `json:"size"`
}

// DecisionSummary is one entry of `requests --explain --json`.
type DecisionSummary struct {
	Index    int             `json:"index"`
	URL      string          `json:"url"`
	Keep     bool            `json:"keep"`
	Mode     filter.Mode     `json:"mode"`
	Reason   string          `json:"reason"`
	Category filter.Category `json:"category,omitempty"`
	Pattern  string          `json:"pattern,omitempty"`
}

var requestsCmd = &cobra.Command{
	Use:     "requests <file>",
	Aliases: []string{"list"},
	Short:   "List requests in a HAR file with their indices",
	Long: `List the requests that survive filtering, one per line, with the index that
"hartool view" accepts.

With --explain every original entry is listed together with the filter
decision taken for it.`,
	Args: cobra.ExactArgs(1),
	RunE: runRequests,
}

func init() {
	requestsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	requestsCmd.Flags().BoolVar(&requestsExplain, "explain", false, "Show the filter decision for every entry")
	rootCmd.AddCommand(requestsCmd)
}

func runRequests(_ *cobra.Command, args []string) error {
	if requestsExplain {
		return runExplain(args[0])
	}

	l, err := loadFiltered(args[0])
	if err != nil {
		return err
	}
	entries := l.Doc.Entries()

	summaries := make([]RequestSummary, len(entries))
	for i, e := range entries {
		summaries[i] = RequestSummary{
			Index:       i,
			Method:      e.Method(),
			URL:         e.URL(),
			Status:      e.Status(),
			Time:        e.Time(),
			ContentType: e.ContentType(),
			Size:        e.Size(),
		}
	}

	return printResult(summaries, func() error {
		if len(entries) == 0 {
			printer.Println(printer.Colorize("No entries found in HAR file", warnColor))
			return nil
		}
		width := len(strconv.Itoa(len(entries) - 1))
		for i, e := range entries {
			printer.Println(render.ListLine(printer, i, width, e))
		}
		printer.Println()
		printer.Println(printer.Colorize("Total: "+strconv.Itoa(len(entries))+" entries", successColor))
		return nil
	})
}

func runExplain(path string) error {
	cfg, _, err := loadFilterConfig()
	if err != nil {
		return err
	}
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}
	decisions, err := newEngine().Evaluate(doc, cfg)
	if err != nil {
		return err
	}

	summaries := make([]DecisionSummary, len(decisions))
	kept := 0
	for i, d := range decisions {
		summaries[i] = DecisionSummary{Index: d.Index, URL: d.URL, Keep: d.Keep, Mode: d.Mode, Reason: d.Reason}
		if d.Rule != nil {
			summaries[i].Category = d.Rule.Category
			summaries[i].Pattern = d.Rule.Pattern
		}
		if d.Keep {
			kept++
		}
	}

	return printResult(summaries, func() error {
		tw := printer.Table()
		tw.AppendHeader(table.Row{"#", "Decision", "Reason", "URL"})
		for _, s := range summaries {
			decision := printer.Colorize("keep", successColor)
			if !s.Keep {
				decision = printer.Colorize("drop", mutedColor)
			}
			tw.AppendRow(table.Row{s.Index, decision, s.Reason, render.TruncateURL(s.URL, render.MaxURLLength)})
		}
		tw.Render()
		printer.Printf("Mode: %s, kept %d of %d entries\n", cfg.Mode(), kept, len(decisions))
		return nil
	})
}
