package domain

import "sort"

const (
	KeyImpulsiveAlerts    = "impulsiveAlerts"
	KeyReactiveAlerts     = "reactiveAlerts"
	KeyTrainingEnabled    = "trainingEnabled"
	KeyInstagramDetection = "instagramDetection"
)

// Settings are the user toggles. Every toggle defaults to true.
type Settings struct {
	ImpulsiveAlerts    bool
	ReactiveAlerts     bool
	TrainingEnabled    bool
	InstagramDetection bool
}

func Keys() []string {
	return []string{KeyImpulsiveAlerts, KeyReactiveAlerts, KeyTrainingEnabled, KeyInstagramDetection}
}

func Defaults() Settings {
	return Settings{ImpulsiveAlerts: true, ReactiveAlerts: true, TrainingEnabled: true, InstagramDetection: true}
}

// FromMap reads persisted toggles; absent keys keep their default.
func FromMap(values map[string]bool) Settings {
	s := Defaults()
	for key, v := range values {
		s.set(key, v)
	}
	return s
}

func (s Settings) ToMap() map[string]bool {
	return map[string]bool{
		KeyImpulsiveAlerts:    s.ImpulsiveAlerts,
		KeyReactiveAlerts:     s.ReactiveAlerts,
		KeyTrainingEnabled:    s.TrainingEnabled,
		KeyInstagramDetection: s.InstagramDetection,
	}
}

// Apply copies recognized boolean values from payload. Unknown keys and
// values of any other type are skipped; the skipped keys are returned sorted.
func (s Settings) Apply(payload map[string]any) (Settings, []string) {
	ignored := []string{}
	for key, raw := range payload {
		v, ok := raw.(bool)
		if !ok || !s.set(key, v) {
			ignored = append(ignored, key)
		}
	}
	sort.Strings(ignored)
	return s, ignored
}

func (s *Settings) set(key string, v bool) bool {
	switch key {
	case KeyImpulsiveAlerts:
		s.ImpulsiveAlerts = v
	case KeyReactiveAlerts:
		s.ReactiveAlerts = v
	case KeyTrainingEnabled:
		s.TrainingEnabled = v
	case KeyInstagramDetection:
		s.InstagramDetection = v
	default:
		return false
	}
	return true
}
