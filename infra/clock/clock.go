package clock

import (
	"sync"
	"time"

	"github.com/radhian/sip-engine/utils"
)

// DefaultStart is the first simulated day.
var DefaultStart = utils.Date(2024, time.January, 1)

// Clock is the simulated business date that drives due-date evaluation.
type Clock struct {
	mu    sync.RWMutex
	today time.Time
}

func New(start time.Time) *Clock {
	if start.IsZero() {
		start = DefaultStart
	}
	return &Clock{today: utils.TruncateToDay(start)}
}

func (c *Clock) Today() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.today
}

func (c *Clock) Set(date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = utils.TruncateToDay(date)
}

func (c *Clock) AdvanceDays(n int) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = c.today.AddDate(0, 0, n)
	return c.today
}

func (c *Clock) AdvanceWeeks(n int) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = utils.AddWeeks(c.today, n)
	return c.today
}

func (c *Clock) AdvanceMonths(n int) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = utils.AddMonths(c.today, n)
	return c.today
}
