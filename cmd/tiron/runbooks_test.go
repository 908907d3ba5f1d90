package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunbookPathsDefaultsToMain(t *testing.T) {
	require.Equal(t, []string{"main.tr"}, runbookPaths(nil))
}

func TestRunbookPathsAppendsExtensionToBareNames(t *testing.T) {
	require.Equal(t, []string{"site.tr", "other.tr"}, runbookPaths([]string{"site", "other"}))
}

func TestRunbookPathsLeavesExplicitExtensionAlone(t *testing.T) {
	require.Equal(t, []string{"site.tron"}, runbookPaths([]string{"site.tron"}))
}
