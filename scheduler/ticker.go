package scheduler

import "time"

// Ticker is the source of frame triggers in the MutedTimer mode. The
// time.Ticker type is wrapped by NewTicker() to satisfy the interface.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a new Ticker with the specified period.
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time {
	return t.t.C
}

func (t timeTicker) Stop() {
	t.t.Stop()
}

// NewTicker is the default TickerFactory.
func NewTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}
