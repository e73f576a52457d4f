package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>...",
		Short: "Find prompts in the buffer and every collection, ignoring case",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := joinText(args)
			results, err := a.prompts.Search(cmd.Context(), term)
			if err != nil {
				return err
			}
			r, err := a.currentRenderer(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.searchResults(term, results))
			return nil
		},
	}
}
