package tui

import "time"

const (
	// ProfileTickerInterval defines how often to refresh remote service metadata
	ProfileTickerInterval = 5 * time.Minute

	// SpinnerTickInterval defines how often the splash/status spinner advances
	SpinnerTickInterval = 80 * time.Millisecond
)
