package dto

type RangeInput struct {
	StartMs int64
	EndMs   int64
}

// DaySummaryOutput mirrors the domain summary field for field.
type DaySummaryOutput struct {
	DayKey                   string           `json:"dayKey"`
	DayStartMs               int64            `json:"dayStartMs"`
	UnlockCount              int              `json:"unlockCount"`
	AvgGapMs                 int64            `json:"avgGapMs"`
	BestStreakMs             int64            `json:"bestStreakMs"`
	ImpulsiveCount           int              `json:"impulsiveCount"`
	ImpulsivePct             float64          `json:"impulsivePct"`
	ImpulsiveConsciousCount  int              `json:"impulsiveConsciousCount"`
	ImpulsiveConsciousPct    float64          `json:"impulsiveConsciousPct"`
	ReactiveCount            int              `json:"reactiveCount"`
	ReactivePct              float64          `json:"reactivePct"`
	ReactiveTopApps          map[string]int   `json:"reactiveTopApps"`
	CleanBlocks30            int              `json:"cleanBlocks30"`
	CleanBlocks60            int              `json:"cleanBlocks60"`
	CleanBlocks90            int              `json:"cleanBlocks90"`
	InstagramFirstAppCount   int              `json:"instagramFirstAppCount"`
	InstagramInstalled       bool             `json:"instagramInstalled"`
	InstagramReinstallsTotal int              `json:"instagramReinstallsTotal"`
	InstagramReinstallsWeek  int              `json:"instagramReinstallsWeek"`
	AvgDelayToInstagramMs    *int64           `json:"avgDelayToInstagramMs"`
	TotalUsageMs             int64            `json:"totalUsageMs"`
	HourlyMs                 [24]int64        `json:"hourlyMs"`
	TopAppsMs                map[string]int64 `json:"topAppsMs"`
}

type ExportInput struct {
	DayKey string
}

type ExportOutput struct {
	DayKey string `json:"dayKey"`
	Path   string `json:"path"`
}
