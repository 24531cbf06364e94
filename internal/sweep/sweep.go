// Package sweep runs the discover, classify and clean pipeline over every
// git repository below a root directory.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jackchuka/gitsweep/internal/model"
	"github.com/jackchuka/gitsweep/internal/progress"
	"github.com/jackchuka/gitsweep/internal/scanner"
)

// Options configure one run. They are not modified by the pipeline.
type Options struct {
	Root        string // Absolute path
	Depth       int
	Force       bool // Skip the untracked-files check
	Simulate    bool // Never call the cleaner
	MeasureSize bool
	Workers     int

	// Confirm, when set, is asked before each repository is cleaned. It is
	// not consulted in simulate mode and forces a single worker.
	Confirm func(repo model.Repository) bool
}

func (o Options) Validate() error {
	if o.Depth < 0 {
		return fmt.Errorf("search depth must not be negative, got %d", o.Depth)
	}
	if !filepath.IsAbs(o.Root) {
		return fmt.Errorf("%w: %q is not absolute", ErrInvalidRoot, o.Root)
	}
	info, err := os.Stat(o.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrInvalidRoot, o.Root)
		}
		return fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, o.Root)
	}
	return nil
}

type Sweeper struct {
	Locator    scanner.Locator
	Classifier *Classifier
	Executor   *Executor
	Sink       progress.Sink
	Logger     *log.Logger
	Now        func() time.Time
}

func New(locator scanner.Locator, checker StatusChecker, cleaner Cleaner, sizer Sizer, logger *log.Logger) *Sweeper {
	if logger == nil {
		logger = log.Default()
	}
	return &Sweeper{
		Locator:    locator,
		Classifier: &Classifier{Checker: checker},
		Executor:   &Executor{Cleaner: cleaner, Sizer: sizer, Logger: logger},
		Sink:       progress.Nop,
		Logger:     logger,
		Now:        time.Now,
	}
}

type classified struct {
	done    bool
	verdict model.Verdict
	err     error
}

type cleaned struct {
	done     bool
	declined bool
	outcome  model.CleanOutcome
	err      error
}

// Run executes the pipeline. An invalid root aborts with no summary. Every
// other failure is confined to its repository and reported in the summary.
// On cancellation the summary is still returned, unreached repositories are
// skipped as cancelled, and the context error is returned alongside.
func (s *Sweeper) Run(ctx context.Context, opts Options) (*model.Summary, error) {
	start := s.Now()

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	// Report the same resolved root the walker uses for repository paths
	if resolved, err := filepath.EvalSymlinks(opts.Root); err == nil {
		opts.Root = resolved
	}

	workers := max(opts.Workers, 1)
	confirm := opts.Confirm != nil && !opts.Simulate
	if confirm {
		workers = 1
	}

	found, err := s.Locator.Locate(ctx, opts.Root, opts.Depth)
	if err != nil {
		return nil, err
	}
	for _, e := range found.Errors {
		s.Logger.Warn("unreadable path", "path", e.Path, "error", e.Error)
	}
	s.Logger.Debug("scan finished", "root", opts.Root, "repos", len(found.Repos), "took", found.Duration)

	b := NewBuilder(opts, start)
	b.Found(found.Repos)
	b.Unreadable(found.ErrorPaths())

	verdicts, runErr := progress.Each(ctx, found.Repos,
		progress.Options{Label: "checking", Sink: s.Sink, Workers: workers},
		func(ctx context.Context, repo model.Repository) classified {
			v, err := s.Classifier.Classify(ctx, repo, opts.Force)
			return classified{done: true, verdict: v, err: err}
		})

	var eligible []model.Repository
	for i, repo := range found.Repos {
		v := verdicts[i]
		if v.done && v.err == nil {
			s.Logger.Debug("classified", "repo", repo.Path, "verdict", v.verdict.String())
		}
		switch {
		case !v.done:
			b.Skip(repo.Path, model.ReasonCancelled)
		case v.err != nil:
			s.Logger.Error("status check failed", "repo", repo.Path, "error", v.err)
			b.Fail(repo.Path, model.PhaseStatus, v.err)
		case v.verdict == model.SkippedUntracked:
			s.Logger.Info("skipping: untracked files", "repo", repo.Path)
			b.Skip(repo.Path, model.ReasonUntracked)
		default:
			eligible = append(eligible, repo)
		}
	}

	if runErr != nil {
		for _, repo := range eligible {
			b.Skip(repo.Path, model.ReasonCancelled)
		}
		return b.Build(s.Now()), runErr
	}

	label := "cleaning"
	if opts.Simulate {
		label = "simulating"
	}

	outcomes, runErr := progress.Each(ctx, eligible,
		progress.Options{Label: label, Sink: s.Sink, Workers: workers},
		func(ctx context.Context, repo model.Repository) cleaned {
			if confirm && !opts.Confirm(repo) {
				return cleaned{done: true, declined: true}
			}
			out, err := s.Executor.Clean(ctx, repo, opts.Simulate, opts.MeasureSize)
			return cleaned{done: true, outcome: out, err: err}
		})

	for i, repo := range eligible {
		c := outcomes[i]
		switch {
		case !c.done:
			b.Skip(repo.Path, model.ReasonCancelled)
		case c.declined:
			b.Skip(repo.Path, model.ReasonDeclined)
		case c.err != nil:
			s.Logger.Error("clean failed", "repo", repo.Path, "error", c.err)
			b.Fail(repo.Path, model.PhaseClean, c.err)
		default:
			if c.outcome.Simulated {
				s.Logger.Info("would clean", "repo", repo.Path)
			} else {
				s.Logger.Info("cleaned", "repo", repo.Path, "bytes", int64(c.outcome.Reclaimed))
			}
			b.Cleaned(c.outcome)
		}
	}

	return b.Build(s.Now()), runErr
}
