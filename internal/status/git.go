package status

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultStatusTimeout = 30 * time.Second
	DefaultCleanTimeout  = 10 * time.Minute
)

// GitReader runs the git binary against a repository path. The path is
// passed through exec.Cmd.Dir; the process working directory never changes.
type GitReader struct {
	statusTimeout time.Duration
	cleanTimeout  time.Duration
}

func NewGitReader(statusTimeout, cleanTimeout time.Duration) *GitReader {
	if statusTimeout <= 0 {
		statusTimeout = DefaultStatusTimeout
	}
	if cleanTimeout <= 0 {
		cleanTimeout = DefaultCleanTimeout
	}
	return &GitReader{
		statusTimeout: statusTimeout,
		cleanTimeout:  cleanTimeout,
	}
}

func (r *GitReader) GetStatus(ctx context.Context, repoPath string) (*RepoStatus, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, r.statusTimeout)
	defer cancel()

	output, err := r.runGit(cmdCtx, repoPath, "status", "--porcelain=v2", "--untracked-files=normal")
	if err != nil {
		return nil, err
	}

	return parsePorcelainV2(output)
}

// HasUntracked reports whether the working tree holds files git neither
// tracks nor ignores.
func (r *GitReader) HasUntracked(ctx context.Context, repoPath string) (bool, error) {
	status, err := r.GetStatus(ctx, repoPath)
	if err != nil {
		return false, err
	}
	return status.HasUntracked(), nil
}

// Clean removes untracked and ignored files and directories without prompting.
func (r *GitReader) Clean(ctx context.Context, repoPath string) error {
	cmdCtx, cancel := context.WithTimeout(ctx, r.cleanTimeout)
	defer cancel()

	_, err := r.runGit(cmdCtx, repoPath, "clean", "-f", "-d", "-x")
	return err
}

func (r *GitReader) runGit(ctx context.Context, repoPath string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoPath
	// Pin git to this repository. Without GIT_DIR a broken .git makes git
	// search parent directories and act on an enclosing repository.
	cmd.Env = append(os.Environ(),
		"GIT_DIR="+filepath.Join(repoPath, ".git"),
		"GIT_WORK_TREE="+repoPath,
		"GIT_OPTIONAL_LOCKS=0",
		"GIT_TERMINAL_PROMPT=0",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
