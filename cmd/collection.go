package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCollectionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"collections", "col"},
		Short:   "List and manage prompt collections",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printCollections(cmd)
		},
	}

	var undo bool
	done := &cobra.Command{
		Use:   "done <collection> <prompt>",
		Short: "Mark a prompt as done (or not done with --undo)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := parseIndexes([]string{"collection", "prompt"}, args)
			if err != nil {
				return err
			}
			if err := a.prompts.SetPromptDone(cmd.Context(), ix[0], ix[1], !undo); err != nil {
				return err
			}
			return a.printCollection(cmd, ix[0])
		},
	}
	done.Flags().BoolVar(&undo, "undo", false, "clear the done flag instead")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <collection>",
			Short: "Show a collection's prompts",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex("collection", args[0])
				if err != nil {
					return err
				}
				return a.printCollection(cmd, idx)
			},
		},
		&cobra.Command{
			Use:   "create <name>...",
			Short: "Create an empty collection",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := a.prompts.CreateCollection(cmd.Context(), joinText(args))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created collection %q\n", c.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <collection> <name>...",
			Short: "Rename a collection",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex("collection", args[0])
				if err != nil {
					return err
				}
				if err := a.prompts.RenameCollection(cmd.Context(), idx, joinText(args[1:])); err != nil {
					return err
				}
				return a.printCollections(cmd)
			},
		},
		&cobra.Command{
			Use:   "delete <collection>",
			Short: "Delete a collection",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex("collection", args[0])
				if err != nil {
					return err
				}
				if err := a.prompts.DeleteCollection(cmd.Context(), idx); err != nil {
					return err
				}
				return a.printCollections(cmd)
			},
		},
		&cobra.Command{
			Use:   "add <collection> <text>...",
			Short: "Append a prompt to a collection",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex("collection", args[0])
				if err != nil {
					return err
				}
				if err := a.prompts.AddPromptToCollection(cmd.Context(), idx, joinText(args[1:])); err != nil {
					return err
				}
				return a.printCollection(cmd, idx)
			},
		},
		&cobra.Command{
			Use:   "save <name> <text>...",
			Short: "Add a prompt to the collection with this name, creating and activating it if needed",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, created, err := a.prompts.SaveToCollection(cmd.Context(), joinText(args[1:]), args[0])
				if err != nil {
					return err
				}
				if created {
					c, err := a.prompts.Collection(cmd.Context(), idx)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Created collection %q\n", c.Name)
				}
				return a.printCollection(cmd, idx)
			},
		},
		&cobra.Command{
			Use:   "edit <collection> <prompt> <text>...",
			Short: "Replace a prompt's text",
			Args:  cobra.MinimumNArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				ix, err := parseIndexes([]string{"collection", "prompt"}, args)
				if err != nil {
					return err
				}
				if err := a.prompts.EditCollectionPrompt(cmd.Context(), ix[0], ix[1], joinText(args[2:])); err != nil {
					return err
				}
				return a.printCollection(cmd, ix[0])
			},
		},
		&cobra.Command{
			Use:   "remove <collection> <prompt>",
			Short: "Remove a prompt from a collection",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ix, err := parseIndexes([]string{"collection", "prompt"}, args)
				if err != nil {
					return err
				}
				if err := a.prompts.DeletePromptFromCollection(cmd.Context(), ix[0], ix[1]); err != nil {
					return err
				}
				return a.printCollection(cmd, ix[0])
			},
		},
		&cobra.Command{
			Use:   "move <collection> <from> <to>",
			Short: "Move a prompt to a new position",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				ix, err := parseIndexes([]string{"collection", "from", "to"}, args)
				if err != nil {
					return err
				}
				if err := a.prompts.ReorderPrompt(cmd.Context(), ix[0], ix[1], ix[2]); err != nil {
					return err
				}
				return a.printCollection(cmd, ix[0])
			},
		},
		&cobra.Command{
			Use:   "reset <collection>",
			Short: "Clear every done flag in a collection",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex("collection", args[0])
				if err != nil {
					return err
				}
				if err := a.prompts.ResetCollectionDoneFlags(cmd.Context(), idx); err != nil {
					return err
				}
				return a.printCollection(cmd, idx)
			},
		},
		&cobra.Command{
			Use:   "copy <collection> <prompt>",
			Short: "Copy a collection prompt to the clipboard",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ix, err := parseIndexes([]string{"collection", "prompt"}, args)
				if err != nil {
					return err
				}
				c, err := a.prompts.Collection(cmd.Context(), ix[0])
				if err != nil {
					return err
				}
				if ix[1] >= len(c.Prompts) {
					return fmt.Errorf("prompt %d not found in collection %d", ix[1], ix[0])
				}
				if err := copyText(a.clip, c.Prompts[ix[1]].Text, a.cfg.ClipboardRetries); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Copied to clipboard")
				return nil
			},
		},
		done,
	)
	return cmd
}

func (a *app) printCollections(cmd *cobra.Command) error {
	ctx := cmd.Context()
	r, err := a.currentRenderer(ctx)
	if err != nil {
		return err
	}
	cols, err := a.prompts.Collections(ctx)
	if err != nil {
		return err
	}
	var active *int
	if idx, ok, err := a.prompts.ActiveCollectionIndex(ctx); err != nil {
		return err
	} else if ok {
		active = &idx
	}
	fmt.Fprintln(cmd.OutOrStdout(), r.collections(cols, active))
	return nil
}

func (a *app) printCollection(cmd *cobra.Command, idx int) error {
	ctx := cmd.Context()
	r, err := a.currentRenderer(ctx)
	if err != nil {
		return err
	}
	c, err := a.prompts.Collection(ctx, idx)
	if err != nil {
		return err
	}
	active, ok, err := a.prompts.ActiveCollectionIndex(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), r.collection(c, idx, ok && active == idx))
	return nil
}
