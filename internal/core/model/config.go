package model

// CycleConfig defines the sit/stand/walk rotation.
type CycleConfig struct {
	SitMinutes      int
	StandMinutes    int
	WalkMinutes     int
	IncludeStanding bool
	IncludeWalking  bool
}

// DefaultCycleConfig returns the out-of-the-box rotation.
func DefaultCycleConfig() CycleConfig {
	return CycleConfig{
		SitMinutes:      45,
		StandMinutes:    10,
		WalkMinutes:     5,
		IncludeStanding: true,
		IncludeWalking:  false,
	}
}

// Normalized clamps every duration to at least one minute.
func (config CycleConfig) Normalized() CycleConfig {
	config.SitMinutes = ClampMinutes(config.SitMinutes)
	config.StandMinutes = ClampMinutes(config.StandMinutes)
	config.WalkMinutes = ClampMinutes(config.WalkMinutes)
	return config
}

// ClampMinutes returns minutes, or 1 when minutes is not positive.
func ClampMinutes(minutes int) int {
	if minutes < 1 {
		return 1
	}
	return minutes
}
