package sweep

import (
	"context"
	"errors"
	"testing"

	"github.com/jackchuka/gitsweep/internal/model"
)

func TestExecutor_Clean(t *testing.T) {
	const path = "/code/repo"
	repo := model.Repository{Path: path}

	tests := []struct {
		name          string
		before, after int64
		simulate      bool
		measure       bool
		sizeErr       error
		cleanErr      error
		wantReclaimed model.Bytes
		wantAnomaly   bool
		wantCleaned   bool
		wantErr       error
	}{
		{"measured", 5000, 1000, false, true, nil, nil, 4000, false, true, nil},
		{"nothing to remove", 1000, 1000, false, true, nil, nil, 0, false, true, nil},
		{"grew while cleaning", 1000, 1500, false, true, nil, nil, 0, true, true, nil},
		{"not measured", 5000, 1000, false, false, nil, nil, model.NotComputed, false, true, nil},
		{"simulated", 5000, 1000, true, true, nil, nil, model.NotComputed, false, false, nil},
		{"size failure still cleans", 5000, 1000, false, true, errBoom, nil, model.NotComputed, false, true, nil},
		{"clean failure", 5000, 1000, false, true, nil, errBoom, model.NotComputed, false, false, ErrCleanup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeRepos()
			f.size[path] = tt.before
			f.sizeAfter[path] = tt.after
			f.sizeErr[path] = tt.sizeErr
			f.cleanErr[path] = tt.cleanErr

			e := &Executor{Cleaner: f, Sizer: f, Logger: discardLogger()}
			out, err := e.Clean(context.Background(), repo, tt.simulate, tt.measure)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Clean() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}

			if out.Reclaimed != tt.wantReclaimed {
				t.Errorf("Reclaimed = %d, want %d", out.Reclaimed, tt.wantReclaimed)
			}
			if out.Anomaly != tt.wantAnomaly {
				t.Errorf("Anomaly = %v, want %v", out.Anomaly, tt.wantAnomaly)
			}
			if out.Simulated != tt.simulate {
				t.Errorf("Simulated = %v, want %v", out.Simulated, tt.simulate)
			}
			if cleaned := len(f.cleanCalls()) == 1; cleaned != tt.wantCleaned {
				t.Errorf("cleaner called = %v, want %v", cleaned, tt.wantCleaned)
			}
		})
	}
}

func TestExecutor_NilLoggerUsesDefault(t *testing.T) {
	f := newFakeRepos()
	f.size["/r"], f.sizeAfter["/r"] = 10, 20

	e := &Executor{Cleaner: f, Sizer: f}
	out, err := e.Clean(context.Background(), model.Repository{Path: "/r"}, false, true)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if !out.Anomaly {
		t.Error("Anomaly should be set when the repo grows")
	}
}
