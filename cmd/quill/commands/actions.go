package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/quill/internal/prompts"
)

func actionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List rewrite actions and translation languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Actions:")
			for _, a := range prompts.Actions {
				marker := " "
				if a.ID == cfg.DefaultAction {
					marker = "*"
				}
				fmt.Fprintf(out, " %s %-11s %s\n", marker, a.ID, a.Label)
			}
			fmt.Fprintf(out, "\nLanguages: %s\n", strings.Join(prompts.Languages, ", "))
			return nil
		},
	}
}
