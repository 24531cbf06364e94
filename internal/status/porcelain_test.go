package status

import (
	"testing"
)

func TestParsePorcelainV2(t *testing.T) {
	tests := []struct {
		name          string
		output        string
		wantUntracked int
	}{
		{
			name: "untracked files and dirs",
			output: `1 M. N... 100644 100644 100644 abc123 def456 src/main.go
1 .M N... 100644 100644 100644 abc123 abc123 README.md
? untracked.txt
? build/
`,
			wantUntracked: 2,
		},
		{
			name: "ignored entries are not untracked",
			output: `! node_modules/
! dist/
`,
			wantUntracked: 0,
		},
		{
			name:          "tracked changes only",
			output:        "1 .M N... 100644 100644 100644 abc123 abc123 README.md\nu UU N... 100644 100644 100644 100644 a b c conflict.go\n",
			wantUntracked: 0,
		},
		{
			name:          "branch headers are ignored",
			output:        "# branch.oid (initial)\n# branch.head main\n? new.txt\n",
			wantUntracked: 1,
		},
		{
			name:          "empty",
			output:        "",
			wantUntracked: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := parsePorcelainV2(tt.output)
			if err != nil {
				t.Fatalf("parsePorcelainV2() error = %v", err)
			}
			if status.Untracked != tt.wantUntracked {
				t.Errorf("Untracked = %d, want %d", status.Untracked, tt.wantUntracked)
			}
			if status.HasUntracked() != (tt.wantUntracked > 0) {
				t.Errorf("HasUntracked() = %v", status.HasUntracked())
			}
		})
	}
}
