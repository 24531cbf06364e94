package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jackchuka/gitsweep/internal/progress"
)

func TestModel_ShowsProgress(t *testing.T) {
	m := NewModel(nil)
	m.Update(updateMsg(progress.Update{Label: "cleaning", Index: 2, Total: 5, Item: "/code/repo"}))

	view := m.View()
	for _, want := range []string{"cleaning", "2", "/5", "/code/repo"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q: %q", want, view)
		}
	}
}

func TestModel_TruncatesLongPaths(t *testing.T) {
	m := NewModel(nil)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	m.Update(updateMsg(progress.Update{Label: "checking", Index: 1, Total: 1, Item: "/" + strings.Repeat("deep/", 40) + "repo"}))

	view := strings.TrimSuffix(m.View(), "\n")
	if !strings.Contains(view, "…") {
		t.Errorf("long path should be truncated: %q", view)
	}
	if strings.HasSuffix(view, "repo") {
		t.Errorf("tail of the path should be cut: %q", view)
	}
}

func TestModel_CancelKey(t *testing.T) {
	calls := 0
	m := NewModel(func() { calls++ })

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	if calls != 1 {
		t.Errorf("cancel called %d times, want 1", calls)
	}
	if !strings.Contains(m.View(), "stopping") {
		t.Errorf("View() should say it is stopping: %q", m.View())
	}
}

func TestModel_OtherKeysIgnored(t *testing.T) {
	calls := 0
	m := NewModel(func() { calls++ })
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if calls != 0 {
		t.Error("only the cancel keys should cancel")
	}
}

func TestModel_QuitClearsView(t *testing.T) {
	m := NewModel(nil)
	_, cmd := m.Update(quitMsg{})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if m.View() != "" {
		t.Errorf("View() after quit = %q, want empty", m.View())
	}
}

func TestModel_BeforeFirstUpdate(t *testing.T) {
	m := NewModel(nil)
	if !strings.Contains(m.View(), "scanning") {
		t.Errorf("View() = %q, want scanning label", m.View())
	}
}
