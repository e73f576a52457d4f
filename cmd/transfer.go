package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"prompt-collector/prompt"
)

func newImportCmd(a *app) *cobra.Command {
	var conflict string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a collection exported as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			c, idx, err := a.prompts.ImportCollection(cmd.Context(), data, prompt.ConflictPolicy(conflict))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q as collection %d with %d prompts\n", c.Name, idx, len(c.Prompts))
			return nil
		},
	}
	cmd.Flags().StringVar(&conflict, "conflict", string(prompt.ConflictRename),
		"what to do when the name is taken: rename, overwrite or reject")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "export [collection]",
		Short: "Export a collection, or every collection with --all",
		Long: `Export writes a collection as JSON (importable again) or as plain text.
Without --out a single collection is written to stdout. With --all every
collection is written to its own file in the --out directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := prompt.Format(format)
			if all {
				return exportAll(cmd, a, f, out)
			}
			if len(args) != 1 {
				return fmt.Errorf("export needs a collection index or --all")
			}
			idx, err := parseIndex("collection", args[0])
			if err != nil {
				return err
			}
			c, err := a.prompts.Collection(cmd.Context(), idx)
			if err != nil {
				return err
			}
			data, err := prompt.Export(c, f)
			if err != nil {
				return err
			}
			if out == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(prompt.FormatJSON), "json or txt")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, or directory with --all")
	cmd.Flags().BoolVar(&all, "all", false, "export every collection")
	return cmd
}

func exportAll(cmd *cobra.Command, a *app, format prompt.Format, dir string) error {
	if dir == "" {
		dir = "."
	}
	files, err := a.prompts.ExportAll(cmd.Context(), format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}
