package domain

import "fmt"

type Kind string

const (
	KindUnlocked           Kind = "unlocked"
	KindLocked             Kind = "locked"
	KindPackageInstalled   Kind = "package_installed"
	KindPackageRemoved     Kind = "package_removed"
	KindNotificationPosted Kind = "notification_posted"
	KindForeground         Kind = "foreground"
	KindBackground         Kind = "background"
	KindActivityResumed    Kind = "activity_resumed"
	KindActivityPaused     Kind = "activity_paused"
)

// Signal is one raw event from the device.
type Signal struct {
	Kind      Kind   `json:"kind"`
	Package   string `json:"package,omitempty"`
	TS        int64  `json:"ts"`
	Replacing bool   `json:"replacing,omitempty"`
}

func (k Kind) NeedsPackage() bool {
	switch k {
	case KindUnlocked, KindLocked:
		return false
	default:
		return true
	}
}

func (k Kind) Known() bool {
	switch k {
	case KindUnlocked, KindLocked, KindPackageInstalled, KindPackageRemoved, KindNotificationPosted,
		KindForeground, KindBackground, KindActivityResumed, KindActivityPaused:
		return true
	}
	return false
}

// TransitionKind maps app visibility signals onto usage transition kinds.
func (k Kind) TransitionKind() (string, bool) {
	switch k {
	case KindForeground:
		return "moved_to_foreground", true
	case KindBackground:
		return "moved_to_background", true
	case KindActivityResumed:
		return "activity_resumed", true
	case KindActivityPaused:
		return "activity_paused", true
	}
	return "", false
}

func (s Signal) Validate() error {
	if !s.Kind.Known() {
		return fmt.Errorf("unknown signal kind %q", s.Kind)
	}
	if s.Kind.NeedsPackage() && s.Package == "" {
		return fmt.Errorf("signal %s requires a package", s.Kind)
	}
	if s.TS < 0 {
		return fmt.Errorf("signal timestamp must not be negative")
	}
	return nil
}
