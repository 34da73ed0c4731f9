package app

import (
	"context"
	"strings"
	"testing"

	settingsdto "ritual/internal/modules/settings/dto"
	summarydto "ritual/internal/modules/summary/dto"
	trainingdto "ritual/internal/modules/training/dto"
)

type fakeSummary struct{ exported string }

func (f *fakeSummary) Range(context.Context, int64, int64) ([]summarydto.DaySummaryOutput, error) {
	return nil, nil
}

func (f *fakeSummary) Export(_ context.Context, day string) (summarydto.ExportOutput, error) {
	f.exported = day
	return summarydto.ExportOutput{DayKey: day, Path: "/vault/" + day + ".md"}, nil
}

type fakeTraining struct{ minutes int }

func (f *fakeTraining) Start(_ context.Context, minutes int) (trainingdto.TimerOutput, error) {
	f.minutes = minutes
	return trainingdto.TimerOutput{Active: true, StartMs: 0, EndMs: int64(minutes) * 60_000}, nil
}

func (f *fakeTraining) Break(context.Context, int64) (trainingdto.TimerOutput, error) {
	return trainingdto.TimerOutput{}, nil
}

func (f *fakeTraining) Stats(context.Context) (trainingdto.StatsOutput, error) {
	return trainingdto.StatsOutput{}, nil
}

func (f *fakeTraining) History(context.Context) ([]trainingdto.SessionOutput, error) {
	return nil, nil
}

type fakeSettings struct{ pairs []string }

func (f *fakeSettings) Show(context.Context) (settingsdto.SettingsOutput, error) {
	return settingsdto.SettingsOutput{ImpulsiveAlerts: true}, nil
}

func (f *fakeSettings) Set(_ context.Context, pairs []string) (settingsdto.SettingsOutput, error) {
	f.pairs = pairs
	return settingsdto.SettingsOutput{}, nil
}

func run(t *testing.T, m Model, input string) Model {
	t.Helper()
	next, cmd := m.executePalette(input)
	m = next.(Model)
	if cmd != nil {
		next, _ = m.Update(cmd())
		m = next.(Model)
	}
	return m
}

func TestPaletteStartsTraining(t *testing.T) {
	t.Parallel()
	training := &fakeTraining{}
	m := NewModel(&fakeSummary{}, training, &fakeSettings{})

	m = run(t, m, "training:start 45")
	if training.minutes != 45 {
		t.Fatalf("started with %d minutes", training.minutes)
	}
	if m.activeTab != tabTraining || !strings.HasPrefix(m.status, "training:start: block until") {
		t.Fatalf("tab=%d status=%q", m.activeTab, m.status)
	}

	m = run(t, m, "training:start soon")
	if !strings.HasPrefix(m.status, "usage:") {
		t.Fatalf("bad minutes should print usage, got %q", m.status)
	}
}

func TestPaletteExportAndSettings(t *testing.T) {
	t.Parallel()
	summary := &fakeSummary{}
	settings := &fakeSettings{}
	m := NewModel(summary, &fakeTraining{}, settings)

	m = run(t, m, "summary:export")
	if summary.exported != "" || !strings.HasPrefix(m.status, "usage:") {
		t.Fatalf("export without a selected day should not run, status %q", m.status)
	}

	m = run(t, m, "summary:export 2026-03-10")
	if summary.exported != "2026-03-10" || m.status != "exported 2026-03-10 to /vault/2026-03-10.md" {
		t.Fatalf("status %q", m.status)
	}

	m = run(t, m, "settings:set reactiveAlerts=false")
	if len(settings.pairs) != 1 || settings.pairs[0] != "reactiveAlerts=false" {
		t.Fatalf("pairs %v", settings.pairs)
	}

	m = run(t, m, "settings:show")
	if !strings.Contains(m.status, "impulsiveAlerts=true") {
		t.Fatalf("status %q", m.status)
	}

	m = run(t, m, "teleport")
	if m.status != "unknown command: teleport" {
		t.Fatalf("status %q", m.status)
	}
}
