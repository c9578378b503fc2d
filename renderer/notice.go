package renderer

import (
	"sync"
	"time"
)

const DefaultNoticeDuration = 3 * time.Second

// Notifier shows one notice at a time. A new notice replaces the displayed
// one and restarts the countdown.
type Notifier struct {
	surface  Surface
	duration time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

func NewNotifier(surface Surface, duration time.Duration) *Notifier {
	if duration <= 0 {
		duration = DefaultNoticeDuration
	}

	return &Notifier{
		surface:  surface,
		duration: duration,
	}
}

func (n *Notifier) Show(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen

	n.surface.ShowNotice(notice)
	n.timer = time.AfterFunc(n.duration, func() {
		n.expire(gen)
	})
}

// expire clears the notice unless a newer one was shown after the timer fired.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if gen != n.gen {
		return
	}
	n.timer = nil
	n.surface.ClearNotice()
}

// Stop cancels a pending clear.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
}
