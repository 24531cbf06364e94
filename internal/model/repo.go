package model

import (
	"encoding/json"
	"path/filepath"
	"time"
)

// MarkerDir is the directory that marks a repository root.
const MarkerDir = ".git"

type Repository struct {
	Path string // Absolute path to repo root
}

func (r Repository) String() string {
	return r.Path
}

func (r Repository) DisplayName() string {
	return filepath.Base(r.Path)
}

type Verdict int

const (
	Eligible Verdict = iota
	SkippedUntracked
)

func (v Verdict) String() string {
	switch v {
	case Eligible:
		return "eligible"
	case SkippedUntracked:
		return "untracked files"
	default:
		return "unknown"
	}
}

// Bytes is a byte count that may be unmeasured. Zero is a real answer;
// NotComputed means no measurement was taken.
type Bytes int64

const NotComputed Bytes = -1

func (b Bytes) Computed() bool {
	return b >= 0
}

func (b Bytes) MarshalYAML() (any, error) {
	if !b.Computed() {
		return nil, nil
	}
	return int64(b), nil
}

func (b Bytes) MarshalJSON() ([]byte, error) {
	if !b.Computed() {
		return []byte("null"), nil
	}
	return json.Marshal(int64(b))
}

type CleanOutcome struct {
	Repo      Repository
	Reclaimed Bytes
	Simulated bool // No destructive call was made
	Anomaly   bool // Size grew during cleaning; Reclaimed was clamped to 0
}

// Skip reasons
const (
	ReasonUntracked = "untracked files"
	ReasonDeclined  = "declined"
	ReasonCancelled = "cancelled"
)

// Failure phases
const (
	PhaseStatus = "status"
	PhaseClean  = "clean"
)

type SkippedRepo struct {
	Path   string `yaml:"path" json:"path"`
	Reason string `yaml:"reason" json:"reason"`
}

type FailedRepo struct {
	Path  string `yaml:"path" json:"path"`
	Phase string `yaml:"phase" json:"phase"`
	Error string `yaml:"error" json:"error"`
}

// Summary is the result of one sweep. It is built once at the end of a run.
type Summary struct {
	Root      string `yaml:"root" json:"root"`
	Depth     int    `yaml:"depth" json:"depth"`
	Forced    bool   `yaml:"forced" json:"forced"`
	Simulated bool   `yaml:"simulated" json:"simulated"`

	Found      int           `yaml:"repositories_found" json:"repositories_found"`
	Cleaned    []string      `yaml:"cleaned" json:"cleaned"`
	Skipped    []SkippedRepo `yaml:"skipped" json:"skipped"`
	Failed     []FailedRepo  `yaml:"failed" json:"failed"`
	Unreadable []string      `yaml:"unreadable" json:"unreadable"`

	Reclaimed Bytes `yaml:"bytes_reclaimed" json:"bytes_reclaimed"`
	Anomalies int   `yaml:"anomalies" json:"anomalies"`

	StartedAt time.Time     `yaml:"started_at" json:"started_at"`
	Duration  time.Duration `yaml:"duration" json:"duration"`
}

func (s *Summary) SkippedPaths() []string {
	paths := make([]string, len(s.Skipped))
	for i, sk := range s.Skipped {
		paths[i] = sk.Path
	}
	return paths
}

func (s *Summary) FailedPaths() []string {
	paths := make([]string, len(s.Failed))
	for i, f := range s.Failed {
		paths[i] = f.Path
	}
	return paths
}

// Accounted reports how many repositories landed in a bucket.
func (s *Summary) Accounted() int {
	return len(s.Cleaned) + len(s.Skipped) + len(s.Failed)
}

func (s *Summary) HasFailures() bool {
	return len(s.Failed) > 0
}
