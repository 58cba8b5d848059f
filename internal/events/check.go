package events

import "time"

// CheckStart is emitted before validating a composed schema.
type CheckStart struct {
	Name string
}

// CheckFinish is emitted after validation completes. Err is nil when the
// schema is valid.
type CheckFinish struct {
	Name     string
	Err      error
	Duration time.Duration
}
