// Package cmd is the prompt-collector command line.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the root command against the system clipboard.
func Execute() {
	root, a := newRootCmd(systemClipboard{})
	if err := execute(root, a); err != nil {
		os.Exit(1)
	}
}

// execute runs root and then releases the store, whether or not the command
// failed. cobra skips post-run hooks after an error.
func execute(root *cobra.Command, a *app) error {
	err := root.Execute()
	if cerr := a.close(); cerr != nil {
		log.Printf("close store: %v", cerr)
		if err == nil {
			err = cerr
		}
	}
	return err
}

func newRootCmd(clip Clipboard) (*cobra.Command, *app) {
	a := &app{clip: clip}

	root := &cobra.Command{
		Use:   "prompt-collector",
		Short: "Keep a rolling buffer of recent prompts and named prompt collections",
		Long: `prompt-collector stores the last ten prompts you used in a rolling buffer and
lets you organize prompts into named collections. Run "serve" to expose the
store over HTTP with a live change feed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printState(cmd, false)
		},
	}
	root.PersistentFlags().BoolVar(&a.editMode, "edit", false, "show full prompt texts with their indexes")

	root.AddCommand(
		newServeCmd(a),
		newStateCmd(a),
		newBufferCmd(a),
		newCollectionCmd(a),
		newActiveCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newSearchCmd(a),
		newThemeCmd(a),
		newToggleCmd(a),
	)
	return root, a
}

func newStateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the buffer, collections and preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printState(cmd, true)
		},
	}
}

func (a *app) printState(cmd *cobra.Command, withSettings bool) error {
	st, err := a.prompts.State(cmd.Context())
	if err != nil {
		return err
	}
	if !st.ThemeExplicit {
		st.Theme = a.systemTheme()
	}
	r := a.renderer(st.Theme)
	out := cmd.OutOrStdout()
	if st.Toggles.Buffer {
		fmt.Fprintln(out, r.buffer(displayOrder(st.Buffer)))
	}
	if st.Toggles.Collection {
		fmt.Fprintln(out, r.collections(st.Collections, st.ActiveIndex))
	}
	if withSettings {
		fmt.Fprintln(out, r.settings(st))
	}
	return nil
}

func displayOrder(buffer []string) []string {
	out := make([]string, len(buffer))
	for i, text := range buffer {
		out[len(buffer)-1-i] = text
	}
	return out
}
