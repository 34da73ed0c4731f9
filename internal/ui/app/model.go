package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	settingsdto "ritual/internal/modules/settings/dto"
	summarydto "ritual/internal/modules/summary/dto"
	trainingdto "ritual/internal/modules/training/dto"
	"ritual/internal/platform/calendar"
	"ritual/internal/ui/components"
	"ritual/internal/ui/theme"
	summariesview "ritual/internal/ui/views/summaries"
	trainingview "ritual/internal/ui/views/training"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type summaryPort interface {
	Range(ctx context.Context, startMs, endMs int64) ([]summarydto.DaySummaryOutput, error)
	Export(ctx context.Context, dayKey string) (summarydto.ExportOutput, error)
}

type trainingPort interface {
	Start(ctx context.Context, minutes int) (trainingdto.TimerOutput, error)
	Break(ctx context.Context, ts int64) (trainingdto.TimerOutput, error)
	Stats(ctx context.Context) (trainingdto.StatsOutput, error)
	History(ctx context.Context) ([]trainingdto.SessionOutput, error)
}

type settingsPort interface {
	Show(ctx context.Context) (settingsdto.SettingsOutput, error)
	Set(ctx context.Context, pairs []string) (settingsdto.SettingsOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabSummaries tabID = iota
	tabTraining
	tabCount
)

var tabLabels = [tabCount]string{"Summaries", "Training"}

// ─── async messages ───────────────────────────────────────────────────────────

type trainingChangedMsg struct {
	action string
	timer  trainingdto.TimerOutput
	err    error
}

type exportedMsg struct {
	out summarydto.ExportOutput
	err error
}

type settingsMsg struct {
	out settingsdto.SettingsOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Refresh key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recompute")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Refresh, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the dashboard root. It routes tabs and the palette; rendering is
// left to the sub-views.
type Model struct {
	summary  summaryPort
	training trainingPort
	settings settingsPort

	summaryView  summariesview.Model
	trainingView trainingview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(summary summaryPort, training trainingPort, settings settingsPort) Model {
	return Model{
		summary:      summary,
		training:     training,
		settings:     settings,
		summaryView:  summariesview.New(summary, time.Now),
		trainingView: trainingview.New(training),
		activeTab:    tabSummaries,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.summaryView.Init(), m.trainingView.Init())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case summariesview.LoadedMsg:
		if msg.Err != nil {
			m.status = "summaries: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("recomputed %d days", len(msg.Days))
		}
		var cmd tea.Cmd
		m.summaryView, cmd = m.summaryView.Update(msg)
		return m, cmd

	case trainingview.LoadedMsg:
		var cmd tea.Cmd
		m.trainingView, cmd = m.trainingView.Update(msg)
		return m, cmd

	case trainingChangedMsg:
		if msg.err != nil {
			m.status = msg.action + ": " + msg.err.Error()
			return m, nil
		}
		m.status = msg.action + " ok"
		if msg.timer.Active {
			m.status = fmt.Sprintf("%s: block until %s", msg.action, clockTime(msg.timer.EndMs))
		}
		return m, m.trainingView.Reload()

	case exportedMsg:
		if msg.err != nil {
			m.status = "export: " + msg.err.Error()
		} else {
			m.status = "exported " + msg.out.DayKey + " to " + msg.out.Path
		}
		return m, nil

	case settingsMsg:
		if msg.err != nil {
			m.status = "settings: " + msg.err.Error()
		} else {
			m.status = renderSettings(msg.out)
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "r":
			m.status = "recomputing…"
			return m, m.reloadCmd()
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabSummaries:
		m.summaryView, tabCmd = m.summaryView.Update(msg)
	case tabTraining:
		m.trainingView, tabCmd = m.trainingView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabTraining:
		content = m.trainingView.View()
	default:
		content = m.summaryView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "ritual  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if active, end := m.trainingView.Active(); active {
		left = theme.Hot.Render("● training until "+clockTime(end)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  r:recompute  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "refresh":
		m.status = "recomputing…"
		return m, m.reloadCmd()

	case "training:start":
		minutes := 0
		if len(parts) >= 2 {
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				m.status = "usage: training:start [minutes]"
				return m, nil
			}
			minutes = n
		}
		m.activeTab = tabTraining
		return m, m.trainingCmd("training:start", func(ctx context.Context) (trainingdto.TimerOutput, error) {
			return m.training.Start(ctx, minutes)
		})

	case "training:break":
		m.activeTab = tabTraining
		return m, m.trainingCmd("training:break", func(ctx context.Context) (trainingdto.TimerOutput, error) {
			return m.training.Break(ctx, 0)
		})

	case "summary:export":
		day := ""
		if len(parts) >= 2 {
			day = parts[1]
		} else if selected, ok := m.summaryView.SelectedDay(); ok {
			day = selected
		}
		if day == "" {
			m.status = "usage: summary:export [day]"
			return m, nil
		}
		return m, m.exportCmd(day)

	case "settings:show":
		return m, m.settingsCmd(nil)

	case "settings:set":
		if len(parts) < 2 {
			m.status = "usage: settings:set <key>=<true|false>"
			return m, nil
		}
		return m, m.settingsCmd(parts[1:])

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.summaryView, _ = m.summaryView.Update(sz)
	m.trainingView, _ = m.trainingView.Update(sz)
}

func (m Model) reloadCmd() tea.Cmd {
	return tea.Batch(m.summaryView.Reload(), m.trainingView.Reload())
}

func (m Model) trainingCmd(action string, run func(ctx context.Context) (trainingdto.TimerOutput, error)) tea.Cmd {
	return func() tea.Msg {
		if m.training == nil {
			return trainingChangedMsg{action: action, err: fmt.Errorf("training not configured")}
		}
		timer, err := run(context.Background())
		return trainingChangedMsg{action: action, timer: timer, err: err}
	}
}

func (m Model) exportCmd(day string) tea.Cmd {
	return func() tea.Msg {
		if m.summary == nil {
			return exportedMsg{err: fmt.Errorf("summaries not configured")}
		}
		out, err := m.summary.Export(context.Background(), day)
		return exportedMsg{out: out, err: err}
	}
}

func (m Model) settingsCmd(pairs []string) tea.Cmd {
	return func() tea.Msg {
		if m.settings == nil {
			return settingsMsg{err: fmt.Errorf("settings not configured")}
		}
		ctx := context.Background()
		if len(pairs) == 0 {
			out, err := m.settings.Show(ctx)
			return settingsMsg{out: out, err: err}
		}
		out, err := m.settings.Set(ctx, pairs)
		return settingsMsg{out: out, err: err}
	}
}

func renderSettings(out settingsdto.SettingsOutput) string {
	return fmt.Sprintf("impulsiveAlerts=%t reactiveAlerts=%t trainingEnabled=%t instagramDetection=%t",
		out.ImpulsiveAlerts, out.ReactiveAlerts, out.TrainingEnabled, out.InstagramDetection)
}

func clockTime(ms int64) string {
	return time.UnixMilli(ms).In(calendar.Zone()).Format("15:04")
}
