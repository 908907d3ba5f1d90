package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiron-sh/tiron/internal/buildinfo"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the build version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "tiron "+buildinfo.Version)
			return nil
		},
	}
}
