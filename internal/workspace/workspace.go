package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v6"
)

// IsAppDir reports whether dir directly contains one of the marker entries (e.g. "ios" or xcflavor.toml)
func IsAppDir(dir string, markers ...string) bool {
	for _, marker := range markers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// FindRoot returns the directory the ios/ paths in the settings are relative to. start (made
// absolute) is the root when it contains one of markers. Otherwise the root of the git worktree
// containing start is used, and start itself when it is not inside a worktree.
func FindRoot(start string, markers ...string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	if IsAppDir(abs, markers...) {
		return abs, nil
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return abs, nil
	} else if err != nil {
		return "", fmt.Errorf("could not open repository at %s: %w", abs, err)
	}

	w, err := repo.Worktree()
	if errors.Is(err, git.ErrIsBareRepository) {
		return abs, nil
	} else if err != nil {
		return "", fmt.Errorf("could not get worktree: %w", err)
	}

	return w.Filesystem.Root(), nil
}
