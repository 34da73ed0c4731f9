package training

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trainingdto "ritual/internal/modules/training/dto"
	"ritual/internal/platform/calendar"
	"ritual/internal/ui/theme"
	"ritual/internal/ui/views/summaries"
)

const historyRows = 10

type TrainingPort interface {
	Stats(ctx context.Context) (trainingdto.StatsOutput, error)
	History(ctx context.Context) ([]trainingdto.SessionOutput, error)
}

type LoadedMsg struct {
	Stats   trainingdto.StatsOutput
	History []trainingdto.SessionOutput
	Err     error
}

type Model struct {
	port    TrainingPort
	detail  viewport.Model
	stats   trainingdto.StatsOutput
	history []trainingdto.SessionOutput
	err     error
	width   int
	height  int
}

func New(port TrainingPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)
	return Model{port: port, detail: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = max(m.width-4, 1)
		m.detail.Height = max(m.height-4, 1)
		m.detail.SetContent(m.render())
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.stats = msg.Stats
			m.history = msg.History
		}
		m.detail.SetContent(m.render())
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(m.width-2, 1)).
		Height(max(m.height-2, 1)).
		Render(m.detail.View())
}

// Active reports whether the last load saw a running block.
func (m Model) Active() (bool, int64) {
	return m.stats.TrainingActive, m.stats.TrainingEnd
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{}
		}
		ctx := context.Background()
		stats, err := m.port.Stats(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		history, err := m.port.History(ctx)
		return LoadedMsg{Stats: stats, History: history, Err: err}
	}
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Hot.Render("load training: " + m.err.Error())
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Training") + "\n\n")
	if m.stats.TrainingActive {
		end := time.UnixMilli(m.stats.TrainingEnd).In(calendar.Zone()).Format("15:04")
		sb.WriteString(theme.Hot.Render("● block running until "+end) + "\n\n")
	} else {
		sb.WriteString(theme.Muted.Render("no block running") + "\n\n")
	}
	sb.WriteString(fmt.Sprintf(" %-22s %d\n", theme.Muted.Render("blocks this week"), m.stats.BlocksCompletedWeek))
	sb.WriteString(fmt.Sprintf(" %-22s %s\n", theme.Muted.Render("best block"), summaries.FormatDuration(m.stats.BestBlockMs)))
	sb.WriteString(fmt.Sprintf(" %-22s %.0f%%\n", theme.Muted.Render("success rate"), m.stats.SuccessPct*100))

	if len(m.history) == 0 {
		return sb.String()
	}
	sb.WriteString("\n" + theme.Title.Render("Recent blocks") + "\n")
	start := max(len(m.history)-historyRows, 0)
	for i := len(m.history) - 1; i >= start; i-- {
		s := m.history[i]
		mark := theme.Hot.Render("✗")
		if s.Success {
			mark = theme.Calm.Render("✓")
		}
		when := time.UnixMilli(s.Start).In(calendar.Zone()).Format("2006-01-02 15:04")
		sb.WriteString(fmt.Sprintf("  %s  %s  %s\n", mark, when, summaries.FormatDuration(s.DurationMs)))
	}
	return sb.String()
}
