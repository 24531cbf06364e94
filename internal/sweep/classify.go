package sweep

import (
	"context"
	"fmt"

	"github.com/jackchuka/gitsweep/internal/model"
)

// StatusChecker reports whether a repository holds untracked files.
type StatusChecker interface {
	HasUntracked(ctx context.Context, repoPath string) (bool, error)
}

type Classifier struct {
	Checker StatusChecker
}

// Classify decides whether repo may be cleaned. With force set the checker is
// not consulted at all. A failing check is returned as an error, never as
// Eligible.
func (c *Classifier) Classify(ctx context.Context, repo model.Repository, force bool) (model.Verdict, error) {
	if force {
		return model.Eligible, nil
	}

	untracked, err := c.Checker.HasUntracked(ctx, repo.Path)
	if err != nil {
		return model.SkippedUntracked, fmt.Errorf("%w: %s: %w", ErrStatusCheck, repo.Path, err)
	}
	if untracked {
		return model.SkippedUntracked, nil
	}
	return model.Eligible, nil
}
