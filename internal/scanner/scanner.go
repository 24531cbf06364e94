package scanner

import (
	"context"
	"errors"
	"time"

	"github.com/jackchuka/gitsweep/internal/model"
)

// ErrInvalidRoot is returned when the scan root is missing or not a directory.
var ErrInvalidRoot = errors.New("invalid root path")

type Locator interface {
	Locate(ctx context.Context, root string, maxDepth int) (*ScanResult, error)
}

type ScanResult struct {
	Repos    []model.Repository
	Errors   []ScanError
	Duration time.Duration
}

// ErrorPaths lists the paths that could not be read during the scan.
func (r *ScanResult) ErrorPaths() []string {
	paths := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		paths[i] = e.Path
	}
	return paths
}

// addError records a traversal error once per path; WalkDir may report the
// same unreadable directory twice.
func (r *ScanResult) addError(path string, err error) {
	if n := len(r.Errors); n > 0 && r.Errors[n-1].Path == path {
		return
	}
	r.Errors = append(r.Errors, ScanError{Path: path, Error: err})
}

type ScanError struct {
	Path  string
	Error error
}
