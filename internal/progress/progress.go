// Package progress runs a function over a bounded list of items and reports
// "i of N" after every item to a pluggable sink.
package progress

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Update is sent to a Sink after each item completes. Index counts completed
// items starting at 1, so under a worker pool it is monotonic even though
// items finish out of order.
type Update struct {
	Label string
	Index int
	Total int
	Item  string
}

func (u Update) Fraction() float64 {
	if u.Total == 0 {
		return 0
	}
	return float64(u.Index) / float64(u.Total)
}

type Sink interface {
	Report(u Update)
}

type SinkFunc func(u Update)

func (f SinkFunc) Report(u Update) { f(u) }

// Nop discards updates.
var Nop Sink = SinkFunc(func(Update) {})

// LogSink reports each update as an info line.
func LogSink(logger *log.Logger) Sink {
	return SinkFunc(func(u Update) {
		logger.Info(u.Label, "progress", fmt.Sprintf("%d/%d", u.Index, u.Total), "repo", u.Item)
	})
}

type Options struct {
	Label   string
	Sink    Sink
	Workers int // <= 1 runs items one after another
}

// Each calls fn for every item and returns the results in input order.
// Cancellation is checked before an item starts, never while fn runs. When
// ctx is cancelled, items that never started keep the zero R and Each
// returns ctx.Err(). Sink calls are serialized.
func Each[T, R any](ctx context.Context, items []T, opts Options, fn func(context.Context, T) R) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}

	sink := opts.Sink
	if sink == nil {
		sink = Nop
	}
	total := len(items)
	results := make([]R, total)

	if opts.Workers <= 1 {
		for i, item := range items {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			results[i] = fn(ctx, item)
			sink.Report(Update{Label: opts.Label, Index: i + 1, Total: total, Item: fmt.Sprint(item)})
		}
		return results, nil
	}

	var (
		mu        sync.Mutex
		completed int
		g         errgroup.Group
	)
	g.SetLimit(opts.Workers)

	for i, item := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			r := fn(ctx, item)

			mu.Lock()
			defer mu.Unlock()
			results[i] = r
			completed++
			sink.Report(Update{Label: opts.Label, Index: completed, Total: total, Item: fmt.Sprint(item)})
			return nil
		})
	}
	_ = g.Wait()

	if completed < total {
		return results, ctx.Err()
	}
	return results, nil
}
