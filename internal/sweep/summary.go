package sweep

import (
	"slices"
	"time"

	"github.com/jackchuka/gitsweep/internal/model"
)

// Builder accumulates per-repository results for one run. It is fed
// sequentially by the pipeline after each phase; Build produces the
// immutable Summary.
type Builder struct {
	opts  Options
	start time.Time

	order      map[string]int // discovery index by path
	unreadable []string
	cleaned    []string
	skipped    []model.SkippedRepo
	failed     []model.FailedRepo

	reclaimed model.Bytes
	anomalies int
}

func NewBuilder(opts Options, start time.Time) *Builder {
	b := &Builder{
		opts:      opts,
		start:     start,
		order:     make(map[string]int),
		reclaimed: model.NotComputed,
	}
	if opts.MeasureSize && !opts.Simulate {
		b.reclaimed = 0
	}
	return b
}

func (b *Builder) Found(repos []model.Repository) {
	for _, r := range repos {
		if _, ok := b.order[r.Path]; !ok {
			b.order[r.Path] = len(b.order)
		}
	}
}

func (b *Builder) Unreadable(paths []string) {
	b.unreadable = append(b.unreadable, paths...)
}

func (b *Builder) Skip(path, reason string) {
	b.skipped = append(b.skipped, model.SkippedRepo{Path: path, Reason: reason})
}

func (b *Builder) Fail(path, phase string, err error) {
	b.failed = append(b.failed, model.FailedRepo{Path: path, Phase: phase, Error: err.Error()})
}

// Cleaned records a finished cleanup. One unmeasured outcome turns the
// aggregate into NotComputed.
func (b *Builder) Cleaned(out model.CleanOutcome) {
	b.cleaned = append(b.cleaned, out.Repo.Path)
	if out.Anomaly {
		b.anomalies++
	}
	switch {
	case !b.reclaimed.Computed():
	case !out.Reclaimed.Computed():
		b.reclaimed = model.NotComputed
	default:
		b.reclaimed += out.Reclaimed
	}
}

// Build returns the summary with every path list in discovery order.
func (b *Builder) Build(end time.Time) *model.Summary {
	cleaned := slices.Clone(b.cleaned)
	slices.SortStableFunc(cleaned, func(x, y string) int { return b.order[x] - b.order[y] })

	skipped := slices.Clone(b.skipped)
	slices.SortStableFunc(skipped, func(x, y model.SkippedRepo) int { return b.order[x.Path] - b.order[y.Path] })

	failed := slices.Clone(b.failed)
	slices.SortStableFunc(failed, func(x, y model.FailedRepo) int { return b.order[x.Path] - b.order[y.Path] })

	return &model.Summary{
		Root:       b.opts.Root,
		Depth:      b.opts.Depth,
		Forced:     b.opts.Force,
		Simulated:  b.opts.Simulate,
		Found:      len(b.order),
		Cleaned:    nonNil(cleaned),
		Skipped:    nonNil(skipped),
		Failed:     nonNil(failed),
		Unreadable: nonNil(slices.Clone(b.unreadable)),
		Reclaimed:  b.reclaimed,
		Anomalies:  b.anomalies,
		StartedAt:  b.start,
		Duration:   end.Sub(b.start),
	}
}

// nonNil keeps empty lists as [] rather than null in JSON output.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
