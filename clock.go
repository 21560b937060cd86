package senios

import "time"

// Tick period targeting 30 frames per second.
const DefaultTickInterval = 33 * time.Millisecond

// A Clock is the periodic trigger that drives frame decoding while a
// [Controller] is playing. Only the controller starts and stops it.
type Clock interface {
	Start()
	Stop()
	Running() bool

	// Channel receiving ticks while running.
	C() <-chan time.Time
}

var _ Clock = (*TickerClock)(nil)

// TickerClock is a [Clock] backed by a single [time.Ticker].
//
// Since Go 1.23 a stopped or reset ticker never delivers a tick that
// belongs to an earlier period, so stopping and immediately restarting
// the clock can't produce two overlapping ticks. Decode time exceeding
// the interval is not compensated for; late ticks are dropped by the
// ticker itself.
type TickerClock struct {
	ticker   *time.Ticker
	interval time.Duration
	running  bool
}

// Creates a stopped clock. Non-positive intervals default to
// [DefaultTickInterval].
func NewTickerClock(interval time.Duration) *TickerClock {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ticker := time.NewTicker(interval)
	ticker.Stop()
	return &TickerClock{ticker: ticker, interval: interval}
}

func (c *TickerClock) Start() {
	if c.running {
		return
	}
	c.ticker.Reset(c.interval)
	c.running = true
}

func (c *TickerClock) Stop() {
	if !c.running {
		return
	}
	c.ticker.Stop()
	c.running = false
}

func (c *TickerClock) Running() bool { return c.running }

func (c *TickerClock) C() <-chan time.Time { return c.ticker.C }

// Returns the configured tick period.
func (c *TickerClock) Interval() time.Duration { return c.interval }
