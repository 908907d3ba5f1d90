package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tiron-sh/tiron/internal/runbook"
)

func newCheckCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [runbooks...]",
		Short: "parse and validate runbooks without executing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range runbookPaths(args) {
				if _, err := runbook.Load(path); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
}
