package status

import (
	"strings"
)

// RepoStatus is what the sweeper reads from `git status --porcelain=v2`.
type RepoStatus struct {
	Untracked int // Files git neither tracks nor ignores
}

func (s *RepoStatus) HasUntracked() bool {
	return s.Untracked > 0
}

// parsePorcelainV2 counts "? " entries. Ignored ("! ") entries only appear
// with --ignored and never count as untracked; tracked changes are not
// relevant to cleaning.
func parsePorcelainV2(output string) (*RepoStatus, error) {
	status := &RepoStatus{}

	for line := range strings.SplitSeq(output, "\n") {
		if strings.HasPrefix(line, "? ") {
			status.Untracked++
		}
	}

	return status, nil
}
