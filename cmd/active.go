package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newActiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "active",
		Short: "Show the active collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printActive(cmd)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <collection|none>",
			Short: "Make a collection active, or clear the selection with none",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if args[0] == "none" {
					if err := a.prompts.SetActiveCollectionIndex(cmd.Context(), nil); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "No active collection")
					return nil
				}
				idx, err := parseIndex("collection", args[0])
				if err != nil {
					return err
				}
				if err := a.prompts.SetActiveCollectionIndex(cmd.Context(), &idx); err != nil {
					return err
				}
				return a.printActive(cmd)
			},
		},
		&cobra.Command{
			Use:   "add <text>...",
			Short: "Append a prompt to the active collection",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.prompts.AddToActiveCollection(cmd.Context(), joinText(args)); err != nil {
					return err
				}
				return a.printActive(cmd)
			},
		},
		&cobra.Command{
			Use:   "paste",
			Short: "Append the clipboard contents to the active collection",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				text, err := pasteText(a.clip)
				if err != nil {
					return err
				}
				if _, err := a.prompts.AddToActiveCollection(cmd.Context(), text); err != nil {
					return err
				}
				return a.printActive(cmd)
			},
		},
	)
	return cmd
}

func (a *app) printActive(cmd *cobra.Command) error {
	_, idx, err := a.prompts.ActiveCollection(cmd.Context())
	if err != nil {
		return err
	}
	return a.printCollection(cmd, idx)
}
