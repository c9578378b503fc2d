package renderer

import (
	"context"
	"time"
)

// Poller refreshes the controller on a fixed interval until ctx is done.
type Poller struct {
	Controller *Controller
	Interval   time.Duration
}

func (p Poller) Run(ctx context.Context) {
	if p.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Controller.Refresh(ctx)
		}
	}
}
