// Package notify polls the backend for the unread-notification count.
// The poller is bound to a context instead of running as an unmanaged
// timer: cancel the context and it stops.
package notify

import (
	"context"
	"time"

	logrus "github.com/sirupsen/logrus"
)

// DefaultInterval matches the browser client's 30-second cadence.
const DefaultInterval = 30 * time.Second

// Counter fetches the current unread count.
type Counter interface {
	UnreadCount(ctx context.Context) (int, error)
}

// Poller periodically reports the unread count. A fetch error skips the
// tick; the next tick tries again, which is the only retry there is.
type Poller struct {
	Counter  Counter
	Interval time.Duration

	// OnCount runs on every successful fetch whose count differs from
	// the previous one.
	OnCount func(count int)
}

// Run polls until ctx is cancelled. The first fetch happens immediately.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	last := -1
	tick := func() {
		count, err := p.Counter.UnreadCount(ctx)
		if err != nil {
			logrus.Debugf("unread count fetch failed: %v", err)
			return
		}
		if count != last {
			last = count
			if p.OnCount != nil {
				p.OnCount(count)
			}
		}
	}

	tick()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}
