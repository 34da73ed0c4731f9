package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ritual/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted on esc.
type PaletteCancelMsg struct{}

// Command is one palette entry. Usage is shown next to the name.
type Command struct {
	Name  string
	Usage string
	Help  string
}

func (c Command) String() string {
	if c.Usage == "" {
		return c.Name
	}
	return c.Name + " " + c.Usage
}

// Commands is the dashboard vocabulary; app.Model.executePalette handles each name.
var Commands = []Command{
	{Name: "refresh", Help: "recompute summaries and training stats"},
	{Name: "training:start", Usage: "[minutes]", Help: "start a focus block (default 30)"},
	{Name: "training:break", Help: "break the running block now"},
	{Name: "summary:export", Usage: "[day]", Help: "write the day note to the vault"},
	{Name: "settings:show", Help: "print the four toggles"},
	{Name: "settings:set", Usage: "<key>=<true|false>", Help: "flip one toggle"},
}

const (
	maxSuggestions = 5
	maxHistory     = 20
)

var (
	barStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)
	usageStyle = lipgloss.NewStyle().Foreground(theme.Sapphire)
)

// Palette is the ":" command bar. Tab completes the first suggestion and
// up/down walk previously submitted lines.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	cursor  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "training:start 45"
	ti.CharLimit = 128
	ti.Prompt = ": "
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows an empty bar and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.cursor = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.TrimSpace(p.input.Value())
			p.close()
			p.remember(line)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case "tab":
			if s := Suggestions(p.input.Value(), 1); len(s) == 1 && !strings.Contains(p.input.Value(), " ") {
				p.input.SetValue(s[0].Name + " ")
				p.input.CursorEnd()
			}
			return p, nil
		case "up":
			if p.cursor > 0 {
				p.cursor--
				p.input.SetValue(p.history[p.cursor])
				p.input.CursorEnd()
			}
			return p, nil
		case "down":
			if p.cursor < len(p.history) {
				p.cursor++
				value := ""
				if p.cursor < len(p.history) {
					value = p.history[p.cursor]
				}
				p.input.SetValue(value)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) remember(line string) {
	if line == "" {
		return
	}
	if n := len(p.history); n > 0 && p.history[n-1] == line {
		return
	}
	p.history = append(p.history, line)
	if len(p.history) > maxHistory {
		p.history = p.history[len(p.history)-maxHistory:]
	}
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(p.input.View() + "\n")
	if matches := Suggestions(p.input.Value(), maxSuggestions); len(matches) > 0 {
		sb.WriteString("\n")
		for _, c := range matches {
			line := "  " + c.Name
			if c.Usage != "" {
				line += " " + usageStyle.Render(c.Usage)
			}
			sb.WriteString(line + "  " + theme.Muted.Render(c.Help) + "\n")
		}
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return barStyle.Width(w - 2).Render(sb.String())
}

// Suggestions returns up to limit commands whose name starts with the typed
// command word. Arguments after the first space are ignored.
func Suggestions(input string, limit int) []Command {
	word, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(input)), " ")
	var out []Command
	for _, c := range Commands {
		if len(out) == limit {
			break
		}
		if strings.HasPrefix(c.Name, word) {
			out = append(out, c)
		}
	}
	return out
}
