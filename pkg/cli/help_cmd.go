package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/hartool/pkg/cli/help"
)

var helpCmd = &cobra.Command{
	Use:   "help [command | topic]",
	Short: "Help about any command or topic",
	Long: `Help provides help for any command, or a longer explanation of one of the
topics listed below.

Topics:
` + help.ListTopics(),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var out []string
		for _, t := range help.AvailableTopics {
			if strings.HasPrefix(t, toComplete) {
				out = append(out, t)
			}
		}
		for _, c := range rootCmd.Commands() {
			if c.IsAvailableCommand() && strings.HasPrefix(c.Name(), toComplete) {
				out = append(out, c.Name())
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runHelp,
}

func init() {
	rootCmd.SetHelpCommand(helpCmd)
}

// runHelp prints a topic when the first argument names one and falls back to
// command help otherwise.
func runHelp(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && help.IsTopic(args[0]) {
		content, err := help.GetTopic(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	if len(args) == 0 {
		if err := rootCmd.Help(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nHelp Topics:\n%s\nUse \"hartool help <topic>\" to read one.\n", help.ListTopics())
		return nil
	}

	target, _, err := rootCmd.Find(args)
	if target == nil || err != nil {
		return fmt.Errorf("unknown help topic %q\n\nAvailable topics:\n%s", strings.Join(args, " "), help.ListTopics())
	}
	target.InitDefaultHelpFlag()
	return target.Help()
}
