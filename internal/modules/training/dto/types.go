package dto

type StartInput struct {
	Minutes int `json:"minutes"`
}

type BreakInput struct {
	TS int64 `json:"ts"`
}

type TimerOutput struct {
	Active  bool  `json:"active"`
	Broken  bool  `json:"broken"`
	StartMs int64 `json:"startMs"`
	EndMs   int64 `json:"endMs"`
}

type SessionOutput struct {
	Start      int64 `json:"start"`
	End        int64 `json:"end"`
	Success    bool  `json:"success"`
	DurationMs int64 `json:"durationMs"`
}

type FinalizeOutput struct {
	Timer    TimerOutput    `json:"timer"`
	Recorded *SessionOutput `json:"recorded,omitempty"`
}

type StatsOutput struct {
	BlocksCompletedWeek int     `json:"blocksCompletedWeek"`
	BestBlockMs         int64   `json:"bestBlockMs"`
	SuccessPct          float64 `json:"successPct"`
	TrainingActive      bool    `json:"trainingActive"`
	TrainingEnd         int64   `json:"trainingEnd"`
}
