package dto

type RecordInput struct {
	Package string
	Kind    string
	TS      int64
}

type DayUsageOutput struct {
	TotalMs  int64            `json:"totalMs"`
	ByApp    map[string]int64 `json:"byApp"`
	HourlyMs []int64          `json:"hourlyMs"`
}

type ForegroundOutput struct {
	Found   bool   `json:"found"`
	Package string `json:"package,omitempty"`
	DelayMs int64  `json:"delayMs,omitempty"`
}
