package statistic

import "github.com/benbjohnson/clock"

func NewClock() clock.Clock {
	return clock.New()
}
