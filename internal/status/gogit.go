package status

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
)

// GoGitReader answers the untracked-files question in process with go-git,
// avoiding one git subprocess per repository. It cannot clean: go-git has no
// equivalent of `git clean -x`.
type GoGitReader struct {
	timeout time.Duration
}

func NewGoGitReader(timeout time.Duration) *GoGitReader {
	if timeout <= 0 {
		timeout = DefaultStatusTimeout
	}
	return &GoGitReader{timeout: timeout}
}

func (r *GoGitReader) HasUntracked(ctx context.Context, repoPath string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		untracked bool
		err       error
	}
	// go-git's Status takes no context; run it aside so the timeout holds.
	done := make(chan result, 1)
	go func() {
		untracked, err := r.hasUntracked(repoPath)
		done <- result{untracked, err}
	}()

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("go-git status %s: %w", repoPath, ctx.Err())
	case res := <-done:
		return res.untracked, res.err
	}
}

func (r *GoGitReader) hasUntracked(repoPath string) (bool, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return false, fmt.Errorf("go-git open %s: %w", repoPath, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("go-git worktree %s: %w", repoPath, err)
	}

	st, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("go-git status %s: %w", repoPath, err)
	}

	for _, fs := range st {
		if fs.Worktree == git.Untracked {
			return true, nil
		}
	}
	return false, nil
}
