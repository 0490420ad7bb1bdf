package janitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/skydeck-app/skydeck/internal/cache"
)

func TestJanitorSweepsExpiredEntries(t *testing.T) {
	c := cache.New(10)
	c.Set("expired", "v", "src", time.Millisecond)
	c.Set("fresh", "v", "src", time.Hour)

	j := New(c, 10*time.Millisecond)
	go j.Start(context.Background())
	defer j.Stop()

	assert.Eventually(t, func() bool {
		return c.Size() == 1
	}, time.Second, 10*time.Millisecond)

	_, _, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestJanitorStopsOnContextCancel(t *testing.T) {
	c := cache.New(10)
	j := New(c, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop on context cancellation")
	}
}

func TestJanitorDefaultInterval(t *testing.T) {
	j := New(cache.New(10), 0)
	assert.Equal(t, 5*time.Minute, j.interval)
}
