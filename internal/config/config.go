package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Status backends
const (
	BackendGit   = "git"
	BackendGoGit = "go-git"
)

type Config struct {
	// Scanning
	Root           string   `yaml:"root"`
	IgnorePatterns []string `yaml:"ignore_patterns"`
	MaxDepth       int      `yaml:"max_depth"`

	// Cleaning
	MeasureSize   bool          `yaml:"measure_size"`
	Jobs          int           `yaml:"jobs"`
	Backend       string        `yaml:"backend"`
	StatusTimeout time.Duration `yaml:"status_timeout"`
	CleanTimeout  time.Duration `yaml:"clean_timeout"`
}

func NewConfig() *Config {
	return &Config{
		IgnorePatterns: []string{
			"**/node_modules/**",
			"**/.cache/**",
			"**/.npm/**",
			"**/.pnpm/**",
			"**/__pycache__/**",
			"**/.venv/**",
			"**/venv/**",
			"**/.tox/**",
		},
		MaxDepth:      3,
		MeasureSize:   true,
		Jobs:          1,
		Backend:       BackendGit,
		StatusTimeout: 30 * time.Second,
		CleanTimeout:  10 * time.Minute,
	}
}

func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	switch c.Backend {
	case BackendGit, BackendGoGit:
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendGit, BackendGoGit)
	}
	if c.StatusTimeout <= 0 || c.CleanTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

func (c *Config) ShouldIgnore(path string) bool {
	for _, pattern := range c.IgnorePatterns {
		matched, err := filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
		// Try matching against each path segment for ** patterns
		if containsDoublestar(pattern) {
			if matchDoublestar(pattern, path) {
				return true
			}
		}
	}
	return false
}

func containsDoublestar(pattern string) bool {
	for i := 0; i < len(pattern)-1; i++ {
		if pattern[i] == '*' && pattern[i+1] == '*' {
			return true
		}
	}
	return false
}

// matchDoublestar handles "**/name/**" patterns: the path is ignored when it
// is the named directory or sits directly inside it.
func matchDoublestar(pattern, path string) bool {
	if len(pattern) < 7 || pattern[:3] != "**/" || pattern[len(pattern)-3:] != "/**" {
		return false
	}
	middle := pattern[3 : len(pattern)-3]
	return filepath.Base(filepath.Dir(path)) == middle ||
		filepath.Base(path) == middle
}
