// Package security confines caller-supplied paths to the configured
// document directory. Every path arriving through an MCP tool argument or
// a CLI flag passes through here before any file is opened.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator rejects paths that escape the document directory, whether
// through ".." segments or through symlinks pointing outside it.
type PathValidator struct {
	configuredDirectory string
}

// NewPathValidator builds a validator rooted at the given directory. The
// directory does not have to exist yet; confinement checks are skipped
// until it does, so a placeholder configured at startup stays usable.
func NewPathValidator(configuredDirectory string) (*PathValidator, error) {
	if configuredDirectory == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}
	return &PathValidator{configuredDirectory: configuredDirectory}, nil
}

// GetConfiguredDirectory returns the directory this validator is rooted at.
func (v *PathValidator) GetConfiguredDirectory() string {
	return v.configuredDirectory
}

// rootExists reports whether the configured directory is present on disk.
// While it is absent there is nothing meaningful to confine against.
func (v *PathValidator) rootExists() bool {
	_, err := os.Stat(v.configuredDirectory)
	return !os.IsNotExist(err)
}

// ValidatePath checks that path stays inside the configured directory.
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if !v.rootExists() {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	isWithin, err := v.IsPathWithinDirectory(absPath)
	if err != nil {
		return fmt.Errorf("checking path: %w", err)
	}
	if !isWithin {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}
	return nil
}

// IsPathWithinDirectory reports whether path resolves into the configured
// directory. Both the literal path and its symlink resolution must land
// inside; a symlinked file that points elsewhere fails the check even when
// the link itself sits in the directory.
func (v *PathValidator) IsPathWithinDirectory(path string) (bool, error) {
	if !v.rootExists() {
		return true, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("resolving path: %w", err)
	}
	absDir, err := filepath.Abs(v.configuredDirectory)
	if err != nil {
		return false, fmt.Errorf("resolving configured directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(absDir)

	realPath := cleanPath
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			realPath = resolved
		}
	}
	realDir := cleanDir
	if resolved, err := filepath.EvalSymlinks(cleanDir); err == nil {
		realDir = resolved
	}

	// The directory itself may be reached through a symlink, so a candidate
	// counts as inside when either spelling of it lands under either
	// spelling of the directory.
	within := func(p string) bool {
		return p == cleanDir || p == realDir ||
			strings.HasPrefix(p, cleanDir+string(filepath.Separator)) ||
			strings.HasPrefix(p, realDir+string(filepath.Separator))
	}
	return within(cleanPath) && within(realPath), nil
}

// ValidateDirectory checks that dirPath is a directory inside the
// configured directory. A path that does not exist yet passes, since
// output directories are commonly created on first use.
func (v *PathValidator) ValidateDirectory(dirPath string) error {
	if err := v.ValidatePath(dirPath); err != nil {
		return err
	}
	if !v.rootExists() {
		return nil
	}

	info, err := os.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dirPath)
	}
	return nil
}
