package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBufferCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buffer",
		Short: "List the rolling buffer, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printBuffer(cmd)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <text>...",
			Short: "Add a prompt to the buffer",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.prompts.AddToBuffer(cmd.Context(), joinText(args)); err != nil {
					return err
				}
				return a.printBuffer(cmd)
			},
		},
		&cobra.Command{
			Use:   "paste",
			Short: "Add the clipboard contents to the buffer",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				text, err := pasteText(a.clip)
				if err != nil {
					return err
				}
				if err := a.prompts.AddToBuffer(cmd.Context(), text); err != nil {
					return err
				}
				return a.printBuffer(cmd)
			},
		},
		&cobra.Command{
			Use:   "edit <index> <text>...",
			Short: "Replace a buffer entry; it becomes the most recent",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex("index", args[0])
				if err != nil {
					return err
				}
				if err := a.prompts.EditBuffer(cmd.Context(), idx, joinText(args[1:])); err != nil {
					return err
				}
				return a.printBuffer(cmd)
			},
		},
		&cobra.Command{
			Use:   "delete <index>",
			Short: "Remove a buffer entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex("index", args[0])
				if err != nil {
					return err
				}
				if err := a.prompts.DeleteFromBuffer(cmd.Context(), idx); err != nil {
					return err
				}
				return a.printBuffer(cmd)
			},
		},
		&cobra.Command{
			Use:   "copy <index>",
			Short: "Copy a buffer entry to the clipboard",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex("index", args[0])
				if err != nil {
					return err
				}
				entries, err := a.prompts.BufferDisplay(cmd.Context())
				if err != nil {
					return err
				}
				if idx >= len(entries) {
					return fmt.Errorf("buffer entry %d not found", idx)
				}
				if err := copyText(a.clip, entries[idx], a.cfg.ClipboardRetries); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Copied to clipboard")
				return nil
			},
		},
	)
	return cmd
}

func (a *app) printBuffer(cmd *cobra.Command) error {
	r, err := a.currentRenderer(cmd.Context())
	if err != nil {
		return err
	}
	entries, err := a.prompts.BufferDisplay(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), r.buffer(entries))
	return nil
}
