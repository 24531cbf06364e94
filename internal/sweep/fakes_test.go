package sweep

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jackchuka/gitsweep/internal/config"
	"github.com/jackchuka/gitsweep/internal/scanner"
)

// fakeRepos stands in for git and the disk. Every method is safe for
// concurrent use.
type fakeRepos struct {
	mu sync.Mutex

	untracked map[string]bool
	statusErr map[string]error
	cleanErr  map[string]error
	sizeErr   map[string]error

	size      map[string]int64 // current size
	sizeAfter map[string]int64 // size once cleaned

	checked []string
	cleaned []string

	onCheck func(path string)
}

func newFakeRepos() *fakeRepos {
	return &fakeRepos{
		untracked: map[string]bool{},
		statusErr: map[string]error{},
		cleanErr:  map[string]error{},
		sizeErr:   map[string]error{},
		size:      map[string]int64{},
		sizeAfter: map[string]int64{},
	}
}

func (f *fakeRepos) HasUntracked(_ context.Context, path string) (bool, error) {
	f.mu.Lock()
	f.checked = append(f.checked, path)
	hook := f.onCheck
	untracked, err := f.untracked[path], f.statusErr[path]
	f.mu.Unlock()

	if hook != nil {
		hook(path)
	}
	return untracked, err
}

func (f *fakeRepos) Clean(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.cleanErr[path]; err != nil {
		return err
	}
	f.cleaned = append(f.cleaned, path)
	if after, ok := f.sizeAfter[path]; ok {
		f.size[path] = after
	}
	return nil
}

func (f *fakeRepos) Size(_ context.Context, path string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.sizeErr[path]; err != nil {
		return 0, err
	}
	return f.size[path], nil
}

func (f *fakeRepos) cleanCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cleaned...)
}

func (f *fakeRepos) checkCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.checked...)
}

var errBoom = errors.New("boom")

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// newTestSweeper wires a real walker to the fake collaborators with a fixed
// clock that advances one second per reading.
func newTestSweeper(f *fakeRepos) *Sweeper {
	s := New(scanner.NewWalker(config.NewConfig()), f, f, f, discardLogger())
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.Now = func() time.Time {
		t := clock
		clock = clock.Add(time.Second)
		return t
	}
	return s
}

// tempDir returns a fresh directory with symlinks resolved, matching the
// paths the walker reports.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func mkRepo(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(path, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func defaultOptions(root string) Options {
	return Options{Root: root, Depth: 3, MeasureSize: true, Workers: 1}
}
