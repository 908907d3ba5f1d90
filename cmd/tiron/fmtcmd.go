package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tiron-sh/tiron/internal/fmtdiff"
	"github.com/tiron-sh/tiron/internal/parser"
)

func newFmtCmd() *cobra.Command {
	var diffOnly bool

	cmd := &cobra.Command{
		Use:   "fmt [targets...]",
		Short: "reformat .tr files in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := expandFmtTargets(args)
			if err != nil {
				return err
			}

			for _, path := range targets {
				if err := fmtOne(cmd.OutOrStdout(), path, diffOnly); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&diffOnly, "diff", false, "print a unified diff instead of rewriting the file")

	return cmd
}

// expandFmtTargets walks any directory argument for its .tr files and
// passes bare file arguments through unchanged; an empty argument
// list defaults to the current directory.
func expandFmtTargets(args []string) ([]string, error) {
	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	var targets []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("fmt: %w", err)
		}
		if !info.IsDir() {
			targets = append(targets, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == ".tr" {
				targets = append(targets, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("fmt: %w", err)
		}
	}
	return targets, nil
}

func fmtOne(out io.Writer, path string, diffOnly bool) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fmt: can't read %s: %w", path, err)
	}

	body, err := parser.Parse(string(original))
	if err != nil {
		return fmt.Errorf("fmt: can't parse %s: %w", path, err)
	}
	formatted := []byte(parser.Format(body))

	if diffOnly {
		if d := fmtdiff.Render(path, original, formatted); d != "" {
			fmt.Fprint(out, d)
		}
		return nil
	}

	if string(original) == string(formatted) {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("fmt: can't stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, formatted, info.Mode()); err != nil {
		return fmt.Errorf("fmt: can't write %s: %w", path, err)
	}
	fmt.Fprintln(out, path)
	return nil
}
