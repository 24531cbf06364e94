package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jackchuka/gitsweep/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up gitsweep config interactively",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

type initStep int

const (
	stepWelcome   initStep = iota
	stepOverwrite          // only if config exists
	stepRoot
	stepDepth
	stepConfirm
	stepDone
)

var (
	styleInitTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("73"))
	styleInitSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("71"))
	styleInitWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	styleInitDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

type initModel struct {
	step         initStep
	input        textinput.Model
	root         string
	rootWarning  string
	depth        int
	depthError   string
	configPath   string
	configExists bool
	err          error
	cancelled    bool
}

func newInitModel(configPath string, configExists bool) *initModel {
	ti := textinput.New()
	ti.Placeholder = "~/code"
	ti.CharLimit = 256
	ti.Width = 50

	return &initModel{
		step:         stepWelcome,
		input:        ti,
		depth:        config.NewConfig().MaxDepth,
		configPath:   configPath,
		configExists: configExists,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := cfgFile
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	_, err := os.Stat(configPath)

	p := tea.NewProgram(newInitModel(configPath, err == nil))
	result, err := p.Run()
	if err != nil {
		return err
	}

	if final, ok := result.(*initModel); ok && final.err != nil {
		return final.err
	}

	return nil
}

func (m *initModel) Init() tea.Cmd {
	return nil
}

func (m *initModel) focusInput(placeholder string) tea.Cmd {
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.Focus()
	return textinput.Blink
}

func (m *initModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()

		// Global quit
		if key == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}

		switch m.step {
		case stepWelcome:
			if key == "enter" {
				if m.configExists {
					m.step = stepOverwrite
				} else {
					m.step = stepRoot
					return m, m.focusInput("~/code")
				}
			}
			if key == "q" || key == "esc" {
				m.cancelled = true
				return m, tea.Quit
			}

		case stepOverwrite:
			if key == "y" || key == "Y" {
				m.step = stepRoot
				return m, m.focusInput("~/code")
			}
			m.cancelled = true
			return m, tea.Quit

		case stepRoot:
			if key == "enter" {
				val := strings.TrimSpace(m.input.Value())
				if val == "" {
					val = m.input.Placeholder
				}
				m.root = val
				m.rootWarning = ""
				if expanded, exists := expandAndCheck(val); !exists {
					m.rootWarning = fmt.Sprintf("  %s does not exist yet", expanded)
				}
				m.step = stepDepth
				return m, m.focusInput(strconv.Itoa(m.depth))
			}
			if key == "esc" {
				m.cancelled = true
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case stepDepth:
			if key == "enter" {
				val := strings.TrimSpace(m.input.Value())
				if val != "" {
					depth, err := strconv.Atoi(val)
					if err != nil || depth < 0 {
						m.depthError = "  Depth must be a whole number, 0 or more"
						m.input.Reset()
						return m, nil
					}
					m.depth = depth
				}
				m.depthError = ""
				m.step = stepConfirm
				return m, nil
			}
			if key == "esc" {
				m.step = stepRoot
				return m, m.focusInput("~/code")
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case stepConfirm:
			if key == "enter" {
				cfg := config.NewConfig()
				cfg.Root = m.root
				cfg.MaxDepth = m.depth
				if err := config.Save(cfg, m.configPath); err != nil {
					m.err = err
				}
				m.step = stepDone
				return m, tea.Quit
			}
			if key == "esc" {
				m.step = stepDepth
				return m, m.focusInput(strconv.Itoa(m.depth))
			}

		case stepDone:
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *initModel) View() string {
	var b strings.Builder

	switch m.step {
	case stepWelcome:
		b.WriteString(styleInitTitle.Render("Welcome to gitsweep!"))
		b.WriteString("\n\n")
		b.WriteString("Config will be saved to ")
		b.WriteString(styleInitDim.Render(m.configPath))
		b.WriteString("\n\n")
		b.WriteString(styleInitDim.Render("Press Enter to continue, Esc to cancel"))
		b.WriteString("\n")

	case stepOverwrite:
		b.WriteString(styleInitWarn.Render("Config already exists"))
		b.WriteString(" at ")
		b.WriteString(styleInitDim.Render(m.configPath))
		b.WriteString("\n\n")
		b.WriteString("Overwrite? ")
		b.WriteString(styleInitDim.Render("[y/N]"))
		b.WriteString("\n")

	case stepRoot:
		b.WriteString(styleInitTitle.Render("Root directory"))
		b.WriteString("\n\n")
		b.WriteString("Directory to sweep when no path is given:\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")

	case stepDepth:
		b.WriteString(styleInitSuccess.Render("  + " + m.root))
		b.WriteString("\n")
		if m.rootWarning != "" {
			b.WriteString(styleInitWarn.Render(m.rootWarning))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styleInitTitle.Render("Search depth"))
		b.WriteString("\n\n")
		b.WriteString("How many directory levels below the root to search:\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.depthError != "" {
			b.WriteString(styleInitWarn.Render(m.depthError))
			b.WriteString("\n")
		}

	case stepConfirm:
		b.WriteString(styleInitTitle.Render("Ready to write config"))
		b.WriteString(":\n\n")
		fmt.Fprintf(&b, "  root:  %s\n", m.root)
		fmt.Fprintf(&b, "  depth: %d\n", m.depth)
		b.WriteString("\n")
		b.WriteString(styleInitDim.Render("[Enter] Write config  [Esc] Go back"))
		b.WriteString("\n")

	case stepDone:
		if m.err != nil {
			b.WriteString(styleInitWarn.Render("Error: " + m.err.Error()))
			b.WriteString("\n")
		} else {
			b.WriteString(styleInitSuccess.Render("Config saved to " + m.configPath))
			b.WriteString("\n\n")
			b.WriteString("Run ")
			b.WriteString(styleInitTitle.Render("gitsweep --dry-run"))
			b.WriteString(" to see what would be cleaned.\n")
		}
	}

	return b.String()
}

func expandAndCheck(path string) (expanded string, exists bool) {
	expanded = config.ExpandHome(path)
	_, err := os.Stat(expanded)
	return expanded, err == nil
}
