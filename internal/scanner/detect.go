package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jackchuka/gitsweep/internal/model"
)

// detectGitDir reports whether path holds a .git directory. A .git file
// (linked worktree, submodule checkout) is not treated as a repository root.
func detectGitDir(path string) (*model.Repository, error) {
	info, err := os.Stat(filepath.Join(path, model.MarkerDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	if !info.IsDir() {
		return nil, nil
	}

	return &model.Repository{Path: path}, nil
}

// checkRoot validates the scan root and returns its absolute form with
// symlinks resolved. WalkDir does not follow a symlinked root.
func checkRoot(root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s does not exist", ErrInvalidRoot, abs)
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, abs)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	return resolved, nil
}
