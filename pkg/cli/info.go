package cli

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/getmockd/hartool/pkg/filter"
)

// InfoOutput is the result of `hartool info`.
type InfoOutput struct {
	File            string         `json:"file"`
	Version         string         `json:"version"`
	Creator         string         `json:"creator"`
	Pages           int            `json:"pages"`
	Entries         int            `json:"entries"`
	FilteredEntries int            `json:"filteredEntries"`
	Config          string         `json:"config,omitempty"`
	Mode            filter.Mode    `json:"mode"`
	StatusClasses   map[string]int `json:"statusClasses"`
	TotalSize       int            `json:"totalSize"`
}

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Summarize a HAR file",
	Long: `Print the HAR log metadata, the entry count before and after filtering, a
histogram of response status classes and the total response size of the
entries that survive filtering.

The filter configuration is validated in full, including rules of the set
that is not active.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(infoCmd)
}

// statusClass buckets a status code as "2xx" etc; anything outside 100-599
// is "other".
func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "other"
	}
	return strconv.Itoa(status/100) + "xx"
}

func runInfo(_ *cobra.Command, args []string) error {
	cfg, cfgPath, err := loadFilterConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	l, err := loadFilteredWith(args[0], cfg, cfgPath)
	if err != nil {
		return err
	}

	creator := l.Doc.Creator()
	out := InfoOutput{
		File:            l.Path,
		Version:         l.Doc.Version(),
		Creator:         creator.Name,
		Pages:           l.Doc.PageCount(),
		Entries:         l.Original.Len(),
		FilteredEntries: l.Doc.Len(),
		Config:          l.ConfigPath,
		Mode:            cfg.Mode(),
		StatusClasses:   make(map[string]int),
	}
	if creator.Version != "" {
		out.Creator += " " + creator.Version
	}
	for _, e := range l.Doc.Entries() {
		out.StatusClasses[statusClass(e.Status())]++
		out.TotalSize += e.Size()
	}

	return printResult(out, func() error {
		tw := printer.Table()
		tw.AppendRows([]table.Row{
			{"File", out.File},
			{"HAR version", out.Version},
			{"Creator", out.Creator},
			{"Pages", out.Pages},
			{"Entries", out.Entries},
			{"After filtering", out.FilteredEntries},
			{"Filter mode", out.Mode},
		})
		if out.Config != "" {
			tw.AppendRow(table.Row{"Config", out.Config})
		}
		for _, class := range []string{"1xx", "2xx", "3xx", "4xx", "5xx", "other"} {
			if n := out.StatusClasses[class]; n > 0 {
				tw.AppendRow(table.Row{"Status " + class, n})
			}
		}
		tw.AppendRow(table.Row{"Total size", fmt.Sprintf("%d bytes", out.TotalSize)})
		tw.Render()
		return nil
	})
}
