package dto

type SettingsOutput struct {
	ImpulsiveAlerts    bool `json:"impulsiveAlerts"`
	ReactiveAlerts     bool `json:"reactiveAlerts"`
	TrainingEnabled    bool `json:"trainingEnabled"`
	InstagramDetection bool `json:"instagramDetection"`
}

type UpdateInput struct {
	Values map[string]any
}
