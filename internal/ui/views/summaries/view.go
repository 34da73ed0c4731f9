package summaries

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	summarydto "ritual/internal/modules/summary/dto"
	"ritual/internal/platform/calendar"
	"ritual/internal/ui/theme"
)

const Days = 7

type SummaryPort interface {
	Range(ctx context.Context, startMs, endMs int64) ([]summarydto.DaySummaryOutput, error)
}

type LoadedMsg struct {
	Days []summarydto.DaySummaryOutput
	Err  error
}

type dayItem struct {
	day summarydto.DaySummaryOutput
}

func (i dayItem) Title() string { return i.day.DayKey }
func (i dayItem) Description() string {
	return fmt.Sprintf("%d unlocks  %s used", i.day.UnlockCount, FormatDuration(i.day.TotalUsageMs))
}
func (i dayItem) FilterValue() string { return i.day.DayKey }

type Model struct {
	port    SummaryPort
	now     func() time.Time
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	days    []summarydto.DaySummaryOutput
	loading bool
	err     error
	width   int
	height  int
}

func New(port SummaryPort, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Green).BorderForeground(theme.Green)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Green)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Last 7 days"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Calm

	return Model{
		port:    port,
		now:     now,
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			m.detail.SetContent(theme.Hot.Render("load summaries: " + msg.Err.Error()))
			return m, nil
		}
		m.days = newestFirst(msg.Days)
		items := make([]list.Item, len(m.days))
		for i, d := range m.days {
			items[i] = dayItem{day: d}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.list.Select(0)
		m.detail.SetContent(m.renderSelected())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		before := m.list.Index()
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != before {
			m.detail.SetContent(m.renderSelected())
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Computing summaries…")
	}

	listW := m.width * 30 / 100
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(detailW-2, 1)).
		Height(max(m.height-2, 1)).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload recomputes the last seven local days.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{}
		}
		start, end := calendar.LastDays(m.now().UnixMilli(), Days)
		days, err := m.port.Range(context.Background(), start, end)
		return LoadedMsg{Days: days, Err: err}
	}
}

// SelectedDay returns the key of the highlighted day.
func (m Model) SelectedDay() (string, bool) {
	item, ok := m.list.SelectedItem().(dayItem)
	if !ok {
		return "", false
	}
	return item.day.DayKey, true
}

func (m *Model) resize() {
	listW := m.width * 30 / 100
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = max(detailW-4, 1)
	m.detail.Height = max(m.height-4, 1)
}

func (m Model) renderSelected() string {
	item, ok := m.list.SelectedItem().(dayItem)
	if !ok {
		return theme.Muted.Render("No days recorded yet")
	}
	return RenderDay(item.day)
}

func newestFirst(days []summarydto.DaySummaryOutput) []summarydto.DaySummaryOutput {
	out := append([]summarydto.DaySummaryOutput(nil), days...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DayStartMs > out[j].DayStartMs })
	return out
}

// RenderDay formats one summary for the detail pane.
func RenderDay(d summarydto.DaySummaryOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.DayKey) + "\n\n")

	row := func(label, value string) {
		sb.WriteString(fmt.Sprintf(" %-22s %s\n", theme.Muted.Render(label), value))
	}
	row("unlocks", fmt.Sprintf("%d", d.UnlockCount))
	row("avg gap", FormatDuration(d.AvgGapMs))
	row("best streak", FormatDuration(d.BestStreakMs))
	share := func(category string, n int, pct float64) string {
		return theme.Category(category).Render(fmt.Sprintf("%d (%.0f%%)", n, pct*100))
	}
	row("impulsive", share("impulsive", d.ImpulsiveCount, d.ImpulsivePct))
	row("impulsive conscious", share("impulsive_conscious", d.ImpulsiveConsciousCount, d.ImpulsiveConsciousPct))
	row("reactive", share("reactive", d.ReactiveCount, d.ReactivePct))
	row("clean blocks 30/60/90", fmt.Sprintf("%d / %d / %d", d.CleanBlocks30, d.CleanBlocks60, d.CleanBlocks90))
	row("screen time", FormatDuration(d.TotalUsageMs))

	installed := theme.Muted.Render("not installed")
	if d.InstagramInstalled {
		installed = theme.Hot.Render("installed")
	}
	sb.WriteString("\n" + theme.Title.Render("Instagram") + "\n")
	row("state", installed)
	row("opened first", fmt.Sprintf("%d", d.InstagramFirstAppCount))
	if d.AvgDelayToInstagramMs != nil {
		row("avg delay", FormatDuration(*d.AvgDelayToInstagramMs))
	}
	row("reinstalls week/total", fmt.Sprintf("%d / %d", d.InstagramReinstallsWeek, d.InstagramReinstallsTotal))

	if len(d.ReactiveTopApps) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Reactive sources") + "\n")
		for _, e := range topCounts(d.ReactiveTopApps, 5) {
			sb.WriteString(fmt.Sprintf("  %-40s %d\n", e.key, e.value))
		}
	}
	if len(d.TopAppsMs) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Top apps") + "\n")
		for _, e := range topCounts(d.TopAppsMs, 5) {
			sb.WriteString(fmt.Sprintf("  %-40s %s\n", e.key, FormatDuration(e.value)))
		}
	}
	sb.WriteString("\n" + theme.Title.Render("By hour") + "\n")
	sb.WriteString(Sparkline(d.HourlyMs) + "\n")
	return sb.String()
}

type entry[V int | int64] struct {
	key   string
	value V
}

func topCounts[V int | int64](m map[string]V, limit int) []entry[V] {
	out := make([]entry[V], 0, len(m))
	for k, v := range m {
		out = append(out, entry[V]{key: k, value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].value != out[j].value {
			return out[i].value > out[j].value
		}
		return out[i].key < out[j].key
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders 24 hourly buckets, scaled to the busiest hour.
func Sparkline(hourly [24]int64) string {
	var peak int64
	for _, v := range hourly {
		peak = max(peak, v)
	}
	var sb strings.Builder
	for _, v := range hourly {
		if peak == 0 || v == 0 {
			sb.WriteRune(' ')
			continue
		}
		idx := int(v * int64(len(sparks)-1) / peak)
		sb.WriteRune(sparks[idx])
	}
	return sb.String()
}

// FormatDuration renders milliseconds as a compact h/m/s string.
func FormatDuration(ms int64) string {
	if ms <= 0 {
		return "0s"
	}
	d := time.Duration(ms) * time.Millisecond
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
