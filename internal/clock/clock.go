package clock

import (
	"context"
	"sync"
	"time"

	"github.com/octave-ivi/octave/internal/settings"
)

const (
	format24Hour = "15:04"
	format12Hour = "03:04 PM"
)

// Clock publishes the formatted wall clock time once per second,
// following the visibility and format settings.
type Clock struct {
	store *settings.Store

	mu   sync.Mutex
	text string

	listenerMu sync.RWMutex
	listeners  []func(string)
}

func NewClock(store *settings.Store) *Clock {
	c := &Clock{store: store}
	// format or visibility changes take effect immediately, not on the
	// next tick
	store.Subscribe(settings.KeyClockFormat24Hour, c.refresh)
	store.Subscribe(settings.KeyShowClock, c.refresh)
	return c
}

func (c *Clock) OnChange(fn func(string)) {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Text returns the current formatted time, empty while the clock is
// hidden.
func (c *Clock) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

func (c *Clock) format(now time.Time) string {
	if !c.store.ShowClock() {
		return ""
	}
	if c.store.ClockFormat24Hour() {
		return now.Format(format24Hour)
	}
	return now.Format(format12Hour)
}

func (c *Clock) refresh() {
	text := c.format(time.Now())

	c.mu.Lock()
	changed := c.text != text
	c.text = text
	c.mu.Unlock()
	if !changed {
		return
	}

	c.listenerMu.RLock()
	subscribed := append([]func(string){}, c.listeners...)
	c.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(text)
	}
}

// Run ticks the clock until ctx is cancelled.
func (c *Clock) Run(ctx context.Context) error {
	c.refresh()

	tick := time.NewTicker(time.Second)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			c.refresh()
		}
	}
}
