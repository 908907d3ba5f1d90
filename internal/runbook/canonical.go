package runbook

import "path/filepath"

// canonicalPath resolves symlinks and collapses ".." segments so the
// same file is never imported twice under two different spellings.
// Falls back to the cleaned, absolute form when symlinks can't be
// resolved, e.g. because the path does not exist.
func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return filepath.Clean(abs), nil
}
