package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jackchuka/gitsweep/internal/model"
)

// newPrompter asks on out and reads the answer from in. Anything but y or
// yes, including end of input, declines.
func newPrompter(in io.Reader, out io.Writer) func(model.Repository) bool {
	scanner := bufio.NewScanner(in)
	return func(repo model.Repository) bool {
		fmt.Fprintf(out, "clean %s (%s)? [y/N] ", repo.DisplayName(), repo.Path)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true
		}
		return false
	}
}
