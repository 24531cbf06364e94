package progress

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type recorder struct {
	mu      sync.Mutex
	updates []Update
}

func (r *recorder) Report(u Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

func TestEach_Sequential(t *testing.T) {
	rec := &recorder{}
	items := []string{"a", "b", "c"}

	var seen []string
	results, err := Each(context.Background(), items, Options{Label: "checking", Sink: rec},
		func(_ context.Context, s string) int {
			seen = append(seen, s)
			return len(s) * 10
		})
	if err != nil {
		t.Fatalf("Each() error = %v", err)
	}

	if strings.Join(seen, ",") != "a,b,c" {
		t.Errorf("visit order = %v, want a,b,c", seen)
	}
	if len(results) != 3 || results[0] != 10 || results[2] != 10 {
		t.Errorf("results = %v", results)
	}

	if len(rec.updates) != 3 {
		t.Fatalf("got %d updates, want 3", len(rec.updates))
	}
	for i, u := range rec.updates {
		want := Update{Label: "checking", Index: i + 1, Total: 3, Item: items[i]}
		if u != want {
			t.Errorf("update[%d] = %+v, want %+v", i, u, want)
		}
	}
}

func TestEach_Empty(t *testing.T) {
	called := false
	sink := SinkFunc(func(Update) { called = true })

	results, err := Each(context.Background(), []int{}, Options{Sink: sink},
		func(context.Context, int) int {
			called = true
			return 0
		})
	if err != nil {
		t.Fatalf("Each() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}
	if called {
		t.Error("neither worker nor sink should run for empty input")
	}
}

func TestEach_NilSink(t *testing.T) {
	results, err := Each(context.Background(), []int{1, 2}, Options{},
		func(_ context.Context, n int) int { return n * 2 })
	if err != nil {
		t.Fatalf("Each() error = %v", err)
	}
	if results[1] != 4 {
		t.Errorf("results = %v", results)
	}
}

func TestEach_CancelBetweenItems(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int
	results, err := Each(ctx, []int{1, 2, 3, 4}, Options{},
		func(_ context.Context, n int) int {
			calls++
			if n == 2 {
				cancel()
			}
			return n
		})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Each() error = %v, want context.Canceled", err)
	}
	// The item running when cancel fired still completes
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	want := []int{1, 2, 0, 0}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("results = %v, want %v", results, want)
			break
		}
	}
}

func TestEach_ParallelKeepsInputOrder(t *testing.T) {
	rec := &recorder{}
	items := []int{5, 1, 4, 2, 3}

	var inFlight, maxInFlight atomic.Int32
	results, err := Each(context.Background(), items, Options{Label: "cleaning", Sink: rec, Workers: 2},
		func(_ context.Context, n int) int {
			cur := inFlight.Add(1)
			for {
				old := maxInFlight.Load()
				if cur <= old || maxInFlight.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(time.Duration(n) * time.Millisecond)
			inFlight.Add(-1)
			return n * n
		})
	if err != nil {
		t.Fatalf("Each() error = %v", err)
	}

	for i, n := range items {
		if results[i] != n*n {
			t.Errorf("results[%d] = %d, want %d", i, results[i], n*n)
		}
	}

	if maxInFlight.Load() > 2 {
		t.Errorf("max in flight = %d, want <= 2", maxInFlight.Load())
	}

	if len(rec.updates) != len(items) {
		t.Fatalf("got %d updates, want %d", len(rec.updates), len(items))
	}
	for i, u := range rec.updates {
		if u.Index != i+1 || u.Total != len(items) {
			t.Errorf("update[%d] = %+v, want index %d of %d", i, u, i+1, len(items))
		}
	}
}

func TestEach_ParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	_, err := Each(ctx, []int{1, 2, 3}, Options{Workers: 3},
		func(context.Context, int) int {
			calls.Add(1)
			return 1
		})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Each() error = %v, want context.Canceled", err)
	}
	if calls.Load() != 0 {
		t.Errorf("calls = %d, want 0", calls.Load())
	}
}

func TestUpdate_Fraction(t *testing.T) {
	if got := (Update{Index: 1, Total: 4}).Fraction(); got != 0.25 {
		t.Errorf("Fraction() = %v, want 0.25", got)
	}
	if got := (Update{}).Fraction(); got != 0 {
		t.Errorf("Fraction() = %v, want 0", got)
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})

	LogSink(logger).Report(Update{Label: "checking", Index: 2, Total: 7, Item: "/code/repo"})

	out := buf.String()
	for _, want := range []string{"checking", "progress=2/7", "repo=/code/repo"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}
