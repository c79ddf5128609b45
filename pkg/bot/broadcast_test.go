package bot

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBroadcaster_Ticks(t *testing.T) {
	var ticks int32
	b := NewBroadcaster(10*time.Millisecond, func() { atomic.AddInt32(&ticks, 1) })

	assert.True(t, b.Start())
	assert.False(t, b.Start())

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&ticks) >= 2 }, time.Second, 5*time.Millisecond)

	b.Stop()
	after := atomic.LoadInt32(&ticks)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&ticks))
}

func TestBroadcaster_StopWithoutStart(t *testing.T) {
	b := NewBroadcaster(time.Hour, func() {})

	done := make(chan struct{})
	go func() {
		b.Stop()
		b.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked")
	}
	assert.False(t, b.Start())
}

func TestBroadcaster_SurvivesPanic(t *testing.T) {
	var ticks int32
	b := NewBroadcaster(5*time.Millisecond, func() {
		if atomic.AddInt32(&ticks, 1) == 1 {
			panic("first tick")
		}
	})
	b.Start()
	defer b.Stop()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&ticks) >= 2 }, time.Second, 5*time.Millisecond)
}
