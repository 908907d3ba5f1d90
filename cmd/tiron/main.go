// Command tiron is the controller CLI: it loads runbooks, resolves
// their inventories, dispatches the node agent to each host, and
// renders progress while the run executes.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
