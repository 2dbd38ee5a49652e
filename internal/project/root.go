package project

import (
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// FindManifest walks up from startDir to locate symdisplay.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, errors.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, errors.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// ResolveManifest returns arg when it names a file, the manifest inside arg
// when it names a directory, and otherwise searches upward from the working
// directory.
func ResolveManifest(arg string) (string, error) {
	if arg != "" {
		info, err := os.Stat(arg)
		if err != nil {
			return "", errors.Errorf("%s: %w", arg, err)
		}
		if !info.IsDir() {
			return arg, nil
		}
		candidate := filepath.Join(arg, ManifestName)
		if _, err := os.Stat(candidate); err != nil {
			return "", errors.Errorf("%s: %w", candidate, err)
		}
		return candidate, nil
	}
	path, ok, err := FindManifest(".")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.Errorf("no %s found in the working directory or its parents", ManifestName)
	}
	return path, nil
}
