package dto

type SignalInput struct {
	Kind      string `json:"kind"`
	Package   string `json:"package,omitempty"`
	TS        int64  `json:"ts,omitempty"`
	Replacing bool   `json:"replacing,omitempty"`
}

type DispatchOutput struct {
	Kind    string `json:"kind"`
	TS      int64  `json:"ts"`
	Handled bool   `json:"handled"`
}

type IngestOutput struct {
	Processed int `json:"processed"`
	Handled   int `json:"handled"`
}
