package main

import "path/filepath"

// runbookPaths resolves the `run`/`check` positional arguments into
// concrete file paths: bare names (no extension) are treated as
// `.tr` runbooks in the current directory, and an empty argument list
// defaults to a single runbook named "main".
func runbookPaths(args []string) []string {
	names := args
	if len(names) == 0 {
		names = []string{"main"}
	}

	paths := make([]string, len(names))
	for i, name := range names {
		if filepath.Ext(name) == "" {
			name += ".tr"
		}
		paths[i] = name
	}
	return paths
}
