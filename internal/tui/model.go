// internal/tui/model.go
// Package tui renders the leaderboard in a terminal, either as an interactive
// Bubble Tea program or as a plain listing.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/ccboard/internal/view"
)

// loadedMsg is sent once the view has finished its single load.
type loadedMsg struct{}

// model is the Bubble Tea model for the leaderboard screen.
type model struct {
	ctx           context.Context
	view          *view.View
	loaded        bool
	spinner       spinner.Model
	viewport      viewport.Model
	width, height int
}

func newModel(ctx context.Context, v *view.View) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))

	return &model{
		ctx:      ctx,
		view:     v,
		spinner:  s,
		viewport: viewport.New(80, 20),
	}
}

// loadCmd performs the mount-time fetch off the UI loop.
func loadCmd(ctx context.Context, v *view.View) tea.Cmd {
	return func() tea.Msg {
		v.Load(ctx)
		return loadedMsg{}
	}
}

// Init starts the spinner and the load.
func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCmd(m.ctx, m.view))
}

// Update handles key presses, resizes, the load result and spinner ticks.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case loadedMsg:
		m.loaded = true
		m.viewport.SetContent(renderRows(m.view.Rows(), m.contentWidth()))
		return m, nil

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m *model) resize() {
	headerHeight := lipgloss.Height(renderHeader(m.view.Options())) + 1
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = max(m.height-headerHeight-1, 3)
	if m.loaded {
		m.viewport.SetContent(renderRows(m.view.Rows(), m.contentWidth()))
	}
}

// View renders the header followed by either the spinner or the rows.
func (m *model) View() string {
	var b strings.Builder
	b.WriteString(renderHeader(m.view.Options()))
	b.WriteString("\n")
	if !m.loaded {
		b.WriteString(fmt.Sprintf("%s Loading leaderboard...", m.spinner.View()))
		return b.String()
	}
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("↑/↓ scroll • q quit"))
	return b.String()
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, v *view.View) error {
	p := tea.NewProgram(newModel(ctx, v), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run leaderboard UI: %w", err)
	}
	return nil
}
