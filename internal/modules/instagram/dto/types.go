package dto

type PackageChangeInput struct {
	Package   string
	Installed bool
	Replacing bool
	TS        int64
}

type EventOutput struct {
	TS             int64   `json:"ts"`
	Type           string  `json:"type"`
	ReasonCaptured bool    `json:"reasonCaptured"`
	Reason         string  `json:"reason,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type RelapseReasonInput struct {
	TS     int64   `json:"ts"`
	Reason string  `json:"reason"`
	Notes  *string `json:"notes,omitempty"`
}

type RelapseReasonOutput struct {
	Matched int `json:"matched"`
}
