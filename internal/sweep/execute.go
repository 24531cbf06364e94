package sweep

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/jackchuka/gitsweep/internal/model"
)

// Cleaner removes untracked and ignored files from a repository.
type Cleaner interface {
	Clean(ctx context.Context, repoPath string) error
}

// Sizer measures the bytes held under a directory.
type Sizer interface {
	Size(ctx context.Context, path string) (int64, error)
}

type Executor struct {
	Cleaner Cleaner
	Sizer   Sizer
	Logger  *log.Logger
}

// Clean runs the cleaner on repo unless simulate is set. With measure set the
// repository is sized before and after; a failed measurement leaves
// Reclaimed as NotComputed but does not fail the clean.
func (e *Executor) Clean(ctx context.Context, repo model.Repository, simulate, measure bool) (model.CleanOutcome, error) {
	out := model.CleanOutcome{Repo: repo, Reclaimed: model.NotComputed}

	if simulate {
		out.Simulated = true
		return out, nil
	}

	var before int64
	measured := measure
	if measure {
		var err error
		if before, err = e.Sizer.Size(ctx, repo.Path); err != nil {
			e.logger().Warn("size before clean", "repo", repo.Path, "error", fmt.Errorf("%w: %w", ErrSizeMeasurement, err))
			measured = false
		}
	}

	if err := e.Cleaner.Clean(ctx, repo.Path); err != nil {
		return out, fmt.Errorf("%w: %s: %w", ErrCleanup, repo.Path, err)
	}

	if !measured {
		return out, nil
	}

	after, err := e.Sizer.Size(ctx, repo.Path)
	if err != nil {
		e.logger().Warn("size after clean", "repo", repo.Path, "error", fmt.Errorf("%w: %w", ErrSizeMeasurement, err))
		return out, nil
	}

	reclaimed := before - after
	if reclaimed < 0 {
		e.logger().Warn("repository grew while cleaning", "repo", repo.Path, "before", before, "after", after)
		out.Anomaly = true
		reclaimed = 0
	}
	out.Reclaimed = model.Bytes(reclaimed)
	return out, nil
}

func (e *Executor) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}
