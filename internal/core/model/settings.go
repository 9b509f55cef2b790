package model

import "time"

// Settings defines editable user preferences.
type Settings struct {
	SitMinutes      int
	StandMinutes    int
	WalkMinutes     int
	IncludeStanding bool
	IncludeWalking  bool

	IdleResetEnabled bool
	IdleResetMinutes int
	LaunchAtLogin    bool
}

// DefaultSettings returns default settings for MoveReminder.
func DefaultSettings() Settings {
	cycle := DefaultCycleConfig()
	return Settings{
		SitMinutes:       cycle.SitMinutes,
		StandMinutes:     cycle.StandMinutes,
		WalkMinutes:      cycle.WalkMinutes,
		IncludeStanding:  cycle.IncludeStanding,
		IncludeWalking:   cycle.IncludeWalking,
		IdleResetEnabled: true,
		IdleResetMinutes: 5,
		LaunchAtLogin:    false,
	}
}

// CycleConfig converts settings to the timer's cycle.
func (settings Settings) CycleConfig() CycleConfig {
	return CycleConfig{
		SitMinutes:      settings.SitMinutes,
		StandMinutes:    settings.StandMinutes,
		WalkMinutes:     settings.WalkMinutes,
		IncludeStanding: settings.IncludeStanding,
		IncludeWalking:  settings.IncludeWalking,
	}.Normalized()
}

// IdleResetAfter is the inactivity threshold, or zero when idle reset is off.
func (settings Settings) IdleResetAfter() time.Duration {
	if !settings.IdleResetEnabled {
		return 0
	}
	return time.Duration(ClampMinutes(settings.IdleResetMinutes)) * time.Minute
}

// WithCycle returns a copy of settings holding cycle.
func (settings Settings) WithCycle(cycle CycleConfig) Settings {
	cycle = cycle.Normalized()
	settings.SitMinutes = cycle.SitMinutes
	settings.StandMinutes = cycle.StandMinutes
	settings.WalkMinutes = cycle.WalkMinutes
	settings.IncludeStanding = cycle.IncludeStanding
	settings.IncludeWalking = cycle.IncludeWalking
	return settings
}
