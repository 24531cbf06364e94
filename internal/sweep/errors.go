package sweep

import (
	"errors"

	"github.com/jackchuka/gitsweep/internal/scanner"
)

var (
	// ErrInvalidRoot aborts a run before any traversal.
	ErrInvalidRoot = scanner.ErrInvalidRoot

	// Per-repository failures. None of these stop the run.
	ErrStatusCheck     = errors.New("status check failed")
	ErrCleanup         = errors.New("cleanup failed")
	ErrSizeMeasurement = errors.New("size measurement failed")
)
