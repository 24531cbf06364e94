// Package tui draws sweep progress as a live bar in the terminal.
package tui

import (
	"context"
	"io"
	"strings"
	"sync"

	bar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jackchuka/gitsweep/internal/progress"
)

type updateMsg progress.Update

type Model struct {
	keys    keyMap
	bar     bar.Model
	spinner spinner.Model
	cancel  context.CancelFunc

	width int

	current    progress.Update
	cancelling bool
	quitting   bool
}

// NewModel returns the progress view. cancel is called when the user asks
// to stop.
func NewModel(cancel context.CancelFunc) *Model {
	b := bar.New(
		bar.WithGradient(string(colorCyan), string(colorCleanGreen)),
		bar.WithoutPercentage(),
		bar.WithWidth(30),
	)
	b.EmptyColor = string(colorBarEmpty)

	s := spinner.New(spinner.WithSpinner(spinner.Spinner{Frames: spinnerFrames, FPS: spinner.Dot.FPS}))
	s.Style = styleSpinner

	return &Model{
		keys:    newKeyMap(),
		bar:     b,
		spinner: s,
		cancel:  cancel,
		width:   80,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Progress runs the bubbletea program that renders a Model. It is a
// progress.Sink, and an io.Writer that prints lines above the bar so log
// output does not tear the display.
type Progress struct {
	program *tea.Program
	done    chan struct{}
	err     error
	once    sync.Once
}

// NewProgress builds the program. A nil in disables keyboard handling.
func NewProgress(out io.Writer, in io.Reader, cancel context.CancelFunc) *Progress {
	return &Progress{
		program: tea.NewProgram(NewModel(cancel), tea.WithOutput(out), tea.WithInput(in)),
		done:    make(chan struct{}),
	}
}

func (p *Progress) Start() {
	go func() {
		defer close(p.done)
		_, p.err = p.program.Run()
	}()
}

func (p *Progress) Report(u progress.Update) {
	p.program.Send(updateMsg(u))
}

func (p *Progress) Write(b []byte) (int, error) {
	p.program.Println(strings.TrimRight(string(b), "\n"))
	return len(b), nil
}

// Stop clears the bar and waits for the program to exit.
func (p *Progress) Stop() error {
	p.once.Do(func() {
		p.program.Send(quitMsg{})
		<-p.done
	})
	return p.err
}

type quitMsg struct{}
