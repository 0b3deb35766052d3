package cli

import "github.com/jedib0t/go-pretty/v6/text"

const (
	successColor = text.FgGreen
	mutedColor   = text.FgHiBlack
	warnColor    = text.FgYellow
)
