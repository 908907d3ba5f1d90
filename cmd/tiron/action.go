package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tiron-sh/tiron/internal/action"
)

func newActionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "action [name]",
		Short: "print documentation for one action, or list all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := action.NewDefaultCatalog()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				return listActions(out, catalog)
			}
			return describeAction(out, catalog, args[0])
		},
	}
}

func listActions(out io.Writer, catalog action.Catalog) error {
	names := catalog.Names()
	sort.Strings(names)
	for _, name := range names {
		a, _ := catalog.Lookup(name)
		fmt.Fprintf(out, "%-10s %s\n", name, a.Doc().Description)
	}
	return nil
}

func describeAction(out io.Writer, catalog action.Catalog, name string) error {
	a, ok := catalog.Lookup(name)
	if !ok {
		return fmt.Errorf("action: no such action %q", name)
	}

	doc := a.Doc()
	fmt.Fprintf(out, "%s: %s\n\n", name, doc.Description)
	for _, p := range doc.Params {
		required := "optional"
		if p.Required {
			required = "required"
		}

		types := make([]string, len(p.Types))
		for i, t := range p.Types {
			types[i] = t.String()
		}
		fmt.Fprintf(out, "  %s (%s, %s)\n", p.Name, required, joinTypes(types))
		if p.Description != "" {
			fmt.Fprintf(out, "      %s\n", p.Description)
		}
	}
	return nil
}

func joinTypes(types []string) string {
	out := ""
	for i, t := range types {
		if i > 0 {
			out += " or "
		}
		out += t
	}
	return out
}
