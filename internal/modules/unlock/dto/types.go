package dto

type EventOutput struct {
	TS                 int64  `json:"ts"`
	SincePrevMs        int64  `json:"sincePrevMs"`
	SessionMs          int64  `json:"sessionMs"`
	Impulsive          bool   `json:"impulsive"`
	ImpulsiveConscious bool   `json:"impulsiveConscious"`
	Reactive           bool   `json:"reactive"`
	ReactiveSourceApp  string `json:"reactiveSourceApp,omitempty"`
	FirstApp           string `json:"firstApp,omitempty"`
	FirstAppDelayMs    *int64 `json:"firstAppDelayMs,omitempty"`
}

type PendingOutput struct {
	Active       bool  `json:"active"`
	StartMs      int64 `json:"startMs,omitempty"`
	SincePrevMs  int64 `json:"sincePrevMs,omitempty"`
	LastUnlockMs int64 `json:"lastUnlockMs,omitempty"`
}

type SignalOutput struct {
	Finalized *EventOutput  `json:"finalized,omitempty"`
	Pending   PendingOutput `json:"pending"`
}

type NotificationInput struct {
	Package string
	TS      int64
}
