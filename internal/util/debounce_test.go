package util

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	// GIVEN
	var count int32
	debouncer := NewDebouncer(50*time.Millisecond, func() {
		atomic.AddInt32(&count, 1)
	})

	// WHEN
	debouncer.Trigger()
	debouncer.Trigger()
	debouncer.Trigger()

	// THEN
	assert.Equal(t, int32(0), atomic.LoadInt32(&count))
	assert.True(t, debouncer.Pending())

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&count))
	assert.False(t, debouncer.Pending())
}

func TestDebouncerFlushRunsImmediately(t *testing.T) {
	// GIVEN
	var count int32
	debouncer := NewDebouncer(time.Hour, func() {
		atomic.AddInt32(&count, 1)
	})
	debouncer.Trigger()

	// WHEN
	debouncer.Flush()

	// THEN
	assert.Equal(t, int32(1), atomic.LoadInt32(&count))

	// a second flush without a trigger does nothing
	debouncer.Flush()
	assert.Equal(t, int32(1), atomic.LoadInt32(&count))
}

func TestDebouncerIgnoresExpiredTimer(t *testing.T) {
	// GIVEN: a trigger whose timer generation is no longer current
	var count int32
	debouncer := NewDebouncer(time.Hour, func() {
		atomic.AddInt32(&count, 1)
	})
	debouncer.Trigger()
	stale := debouncer.gen
	debouncer.Trigger()

	// WHEN: the stale timer fires after the re-trigger
	debouncer.fire(stale)

	// THEN: the new quiet period is not cut short
	assert.Equal(t, int32(0), atomic.LoadInt32(&count))
	assert.True(t, debouncer.Pending())

	// the current generation still runs
	debouncer.fire(debouncer.gen)
	assert.Equal(t, int32(1), atomic.LoadInt32(&count))
}

func TestDebouncerStopCancelsPendingRun(t *testing.T) {
	// GIVEN
	var count int32
	debouncer := NewDebouncer(30*time.Millisecond, func() {
		atomic.AddInt32(&count, 1)
	})
	debouncer.Trigger()

	// WHEN
	debouncer.Stop()

	// THEN
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&count))
}
