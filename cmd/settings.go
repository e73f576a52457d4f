package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"prompt-collector/prompt"
)

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the color theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, explicit, err := a.prompts.Theme(cmd.Context())
			if err != nil {
				return err
			}
			if !explicit {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (system)\n", a.systemTheme())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:       "set <light|dark>",
			Short:     "Save a theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(prompt.ThemeLight), string(prompt.ThemeDark)},
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.prompts.SetTheme(cmd.Context(), prompt.Theme(args[0])); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch to the other theme and save it",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				next, err := a.prompts.ToggleTheme(cmd.Context(), a.systemDark())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), next)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget the saved theme and follow the system again",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.prompts.ClearTheme(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (system)\n", a.systemTheme())
				return nil
			},
		},
	)
	return cmd
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [buffer|collection] [on|off]",
		Short: "Show or set whether the buffer and collection views are expanded",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			toggles, err := a.prompts.Toggles(ctx)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "buffer %s\ncollection %s\n", onOff(toggles.Buffer), onOff(toggles.Collection))
				return nil
			}

			var current bool
			var set func(bool) error
			switch args[0] {
			case "buffer":
				current = toggles.Buffer
				set = func(v bool) error { return a.prompts.SetBufferToggleState(ctx, v) }
			case "collection":
				current = toggles.Collection
				set = func(v bool) error { return a.prompts.SetCollectionToggleState(ctx, v) }
			default:
				return fmt.Errorf("unknown view %q (want buffer or collection)", args[0])
			}

			next := !current
			if len(args) == 2 {
				switch args[1] {
				case "on":
					next = true
				case "off":
					next = false
				default:
					return fmt.Errorf("want on or off, got %q", args[1])
				}
			}
			if err := set(next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", args[0], onOff(next))
			return nil
		},
	}
}
