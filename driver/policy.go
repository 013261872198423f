package driver

import "time"

// Policy speeds the game up as the score grows
type Policy struct {
	Base time.Duration // interval at score 0
	Min  time.Duration // floor
	Step time.Duration // reduction per point
}

// minInterval keeps a zero Policy usable with time.Ticker
const minInterval = time.Millisecond

// Interval returns the tick interval for score, never below Min
func (p Policy) Interval(score int) time.Duration {
	iv := p.Base - time.Duration(score)*p.Step
	if iv < p.Min {
		iv = p.Min
	}
	if iv < minInterval {
		iv = minInterval
	}
	return iv
}
