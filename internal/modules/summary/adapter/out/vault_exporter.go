package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"ritual/internal/modules/summary/domain"
	summaryout "ritual/internal/modules/summary/port/out"
	"ritual/internal/platform/calendar"
	"ritual/internal/platform/markdown"
)

const (
	blockOwner = "ritual"
	blockName  = "summary"
)

// VaultExporter writes one Markdown note per day. Text outside the managed
// block and unknown frontmatter keys survive re-exports.
type VaultExporter struct {
	vaultPath string
}

func NewVaultExporter(vaultPath string) summaryout.Exporter {
	return &VaultExporter{vaultPath: vaultPath}
}

func (e *VaultExporter) Export(_ context.Context, s domain.DaySummary) (string, error) {
	start := time.UnixMilli(s.DayStartMs).In(calendar.Zone())
	dir := filepath.Join(e.vaultPath, "digital-control", start.Format("2006"), start.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create summary dir: %w", err)
	}
	path := filepath.Join(dir, s.DayKey+".md")

	note := markdown.Note{
		Meta: map[string]any{},
		Body: fmt.Sprintf("# Digital control %s\n", s.DayKey),
	}
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		note, err = markdown.Parse(string(existing))
		if err != nil {
			return "", fmt.Errorf("read summary note %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return "", fmt.Errorf("read summary note: %w", err)
	}

	note.Merge(frontmatter(s))
	note.SetBlock(blockOwner, blockName, renderStats(s))
	rendered, err := note.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write summary note: %w", err)
	}
	return path, nil
}

func frontmatter(s domain.DaySummary) map[string]any {
	meta := map[string]any{
		"schema_version":        domain.SchemaVersion,
		"day":                   s.DayKey,
		"unlocks":               s.UnlockCount,
		"impulsive_pct":         s.ImpulsivePct,
		"reactive_pct":          s.ReactivePct,
		"clean_blocks_30":       s.CleanBlocks30,
		"clean_blocks_60":       s.CleanBlocks60,
		"clean_blocks_90":       s.CleanBlocks90,
		"instagram_installed":   s.InstagramInstalled,
		"instagram_reinstalls":  s.InstagramReinstallsWeek,
		"total_usage_minutes":   s.TotalUsageMs / 60_000,
		"best_streak_minutes":   s.BestStreakMs / 60_000,
		"avg_gap_minutes":       s.AvgGapMs / 60_000,
		"instagram_first_count": s.InstagramFirstAppCount,
	}
	return meta
}

func renderStats(s domain.DaySummary) string {
	lines := []string{
		"## Unlocks",
		"",
		fmt.Sprintf("- Total: %d", s.UnlockCount),
		fmt.Sprintf("- Impulsive: %d (%.0f%%), conscious %d", s.ImpulsiveCount, s.ImpulsivePct*100, s.ImpulsiveConsciousCount),
		fmt.Sprintf("- Reactive: %d (%.0f%%)", s.ReactiveCount, s.ReactivePct*100),
		fmt.Sprintf("- Longest gap: %s", minutes(s.BestStreakMs)),
		fmt.Sprintf("- Clean blocks: %d / %d / %d (30/60/90 min)", s.CleanBlocks30, s.CleanBlocks60, s.CleanBlocks90),
	}
	if len(s.ReactiveTopApps) > 0 {
		lines = append(lines, "", "## Reactive sources", "")
		for _, app := range sortedKeys(s.ReactiveTopApps) {
			lines = append(lines, fmt.Sprintf("- %s: %d", app, s.ReactiveTopApps[app]))
		}
	}
	lines = append(lines, "", "## Instagram", "",
		fmt.Sprintf("- Installed: %t", s.InstagramInstalled),
		fmt.Sprintf("- First app after unlock: %d", s.InstagramFirstAppCount),
		fmt.Sprintf("- Reinstalls: %d this week, %d total", s.InstagramReinstallsWeek, s.InstagramReinstallsTotal),
	)
	if s.AvgDelayToInstagramMs != nil {
		lines = append(lines, fmt.Sprintf("- Average delay to open: %.1fs", float64(*s.AvgDelayToInstagramMs)/1000))
	}
	lines = append(lines, "", "## Usage", "", fmt.Sprintf("- Foreground: %s", minutes(s.TotalUsageMs)))
	for _, app := range topApps(s.TopAppsMs, 5) {
		lines = append(lines, fmt.Sprintf("- %s: %s", app, minutes(s.TopAppsMs[app])))
	}
	return strings.Join(lines, "\n")
}

func minutes(ms int64) string {
	return fmt.Sprintf("%d min", ms/60_000)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func topApps(byApp map[string]int64, limit int) []string {
	apps := make([]string, 0, len(byApp))
	for app := range byApp {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool {
		if byApp[apps[i]] != byApp[apps[j]] {
			return byApp[apps[i]] > byApp[apps[j]]
		}
		return apps[i] < apps[j]
	})
	if len(apps) > limit {
		apps = apps[:limit]
	}
	return apps
}
