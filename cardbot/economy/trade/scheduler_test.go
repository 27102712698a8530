package trade

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRuns(t *testing.T) {
	s := NewScheduler()
	fired := make(chan struct{})
	s.Schedule("a", 5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
	assert.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, time.Millisecond)
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.Schedule("a", 20*time.Millisecond, func() { runs.Add(1) })

	assert.Equal(t, 1, s.Pending())
	assert.True(t, s.Cancel("a"))
	assert.False(t, s.Cancel("a"))

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, runs.Load())
}

func TestSchedulerReplace(t *testing.T) {
	s := NewScheduler()
	var first, second atomic.Int32
	s.Schedule("a", 10*time.Millisecond, func() { first.Add(1) })
	s.Schedule("a", 10*time.Millisecond, func() { second.Add(1) })

	assert.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, time.Millisecond)
	assert.Zero(t, first.Load())
}

func TestSchedulerShutdown(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.Schedule("a", 10*time.Millisecond, func() { runs.Add(1) })
	s.Schedule("b", 10*time.Millisecond, func() { runs.Add(1) })

	s.Shutdown()
	s.Schedule("c", time.Millisecond, func() { runs.Add(1) })

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, runs.Load())
	assert.Zero(t, s.Pending())
}
