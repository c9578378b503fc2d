package renderer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollerRefreshesUntilCancelled(t *testing.T) {
	api := okAPI()
	c, _ := newTestController(api)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Poller{Controller: c, Interval: 10 * time.Millisecond}.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return api.infoCalls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}

func TestPollerDisabled(t *testing.T) {
	api := okAPI()
	c, _ := newTestController(api)

	Poller{Controller: c}.Run(context.Background())

	assert.Zero(t, api.infoCalls.Load())
}
