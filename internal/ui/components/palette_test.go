package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"ritual/internal/ui/components"
)

func names(cmds []components.Command) []string {
	var out []string
	for _, c := range cmds {
		out = append(out, c.Name)
	}
	return out
}

func TestSuggestions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		limit int
		want  []string
	}{
		{"train", 5, []string{"training:start", "training:break"}},
		{"SETTINGS:S", 5, []string{"settings:show", "settings:set"}},
		{"training:start 45", 5, []string{"training:start"}},
		{"", 2, []string{"refresh", "training:start"}},
		{"nope", 5, nil},
	}
	for _, tt := range tests {
		got := names(components.Suggestions(tt.input, tt.limit))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("Suggestions(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestCommandString(t *testing.T) {
	t.Parallel()
	if got := (components.Command{Name: "refresh"}).String(); got != "refresh" {
		t.Fatalf("got %q", got)
	}
	if got := (components.Command{Name: "summary:export", Usage: "[day]"}).String(); got != "summary:export [day]" {
		t.Fatalf("got %q", got)
	}
}

func typeInto(p components.Palette, s string) components.Palette {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func submit(t *testing.T, p components.Palette) (components.Palette, string) {
	t.Helper()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter produced no command")
	}
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok {
		t.Fatalf("expected submit message")
	}
	return p, msg.Input
}

func TestPaletteCompletesAndRemembers(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()

	p = typeInto(p, "summ")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p = typeInto(p, "2026-03-10")

	p, line := submit(t, p)
	if line != "summary:export 2026-03-10" {
		t.Fatalf("submitted %q", line)
	}
	if p.Visible() {
		t.Fatalf("palette should close after submit")
	}

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	_, line = submit(t, p)
	if line != "summary:export 2026-03-10" {
		t.Fatalf("history recall gave %q", line)
	}
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeInto(p, "refresh")
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("esc should hide the palette")
	}
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel message")
	}
}
