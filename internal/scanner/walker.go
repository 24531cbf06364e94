package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/jackchuka/gitsweep/internal/config"
	"github.com/jackchuka/gitsweep/internal/model"
)

type Walker struct {
	cfg *config.Config
}

func NewWalker(cfg *config.Config) *Walker {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Walker{cfg: cfg}
}

// Locate walks root down to maxDepth levels and returns every directory that
// holds a .git directory. Level 0 is root itself. Walk order is lexical, so
// results are stable for a given tree. Nested repositories are reported too.
func (w *Walker) Locate(ctx context.Context, root string, maxDepth int) (*ScanResult, error) {
	start := time.Now()

	root, err := checkRoot(root)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable or vanished entry: record it and keep going
			result.addError(path, err)
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !d.IsDir() {
			return nil
		}

		if d.Name() == model.MarkerDir && path != root {
			return fs.SkipDir
		}

		if depthOf(root, path) > maxDepth {
			return fs.SkipDir
		}

		// A repository is reported even when its directory name matches an
		// ignore pattern; the pattern only stops the walk below it.
		repo, err := detectGitDir(path)
		if err != nil {
			result.addError(path, err)
		} else if repo != nil {
			result.Repos = append(result.Repos, *repo)
		}

		if path != root && w.cfg.ShouldIgnore(path) {
			return fs.SkipDir
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

func depthOf(root, path string) int {
	relPath, _ := filepath.Rel(root, path)
	depth := 0
	if relPath != "." {
		for _, c := range relPath {
			if c == filepath.Separator {
				depth++
			}
		}
		depth++ // Add 1 for the final component
	}
	return depth
}
