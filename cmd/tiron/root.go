package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootFlags are the persistent flags every subcommand shares.
type rootFlags struct {
	debug   bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "tiron",
		Short:         "tiron dispatches declarative runbooks against remote hosts over SSH",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.debug {
				return os.Setenv("TIRON_DEBUG", "1")
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "add -v to every ssh invocation (same as TIRON_DEBUG=1)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "raise logger level to debug")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newFmtCmd())
	cmd.AddCommand(newActionCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (f *rootFlags) logLevel() string {
	if f.verbose {
		return "debug"
	}
	return "info"
}
