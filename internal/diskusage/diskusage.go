// Package diskusage measures how many bytes a directory tree occupies.
package diskusage

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
)

// Sizer sums regular file sizes below a directory. Symlinks are not
// followed or counted, and directories named in SkipDirs are not entered.
type Sizer struct {
	SkipDirs []string
}

func NewSizer(skipDirs ...string) *Sizer {
	return &Sizer{SkipDirs: skipDirs}
}

// Size returns the total size of root. Entries that vanish during the walk
// are ignored; any other error aborts the measurement.
func (s *Sizer) Size(ctx context.Context, root string) (int64, error) {
	var total int64

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && slices.Contains(s.SkipDirs, d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		// Symlinks, sockets and devices hold no reclaimable bytes
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		total += info.Size()
		return nil
	})

	return total, err
}
