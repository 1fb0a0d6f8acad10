package obd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueStoreSetAndGet(t *testing.T) {
	// GIVEN
	store := NewValueStore(5)

	// WHEN
	store.Set("RPM", 2000)

	// THEN
	value, ok := store.Value("RPM")
	assert.True(t, ok)
	assert.Equal(t, 2000.0, value)

	_, ok = store.Value("SPEED")
	assert.False(t, ok)
}

func TestValueStoreSmoothing(t *testing.T) {
	// GIVEN
	store := NewValueStore(4)
	store.Set("RPM", 1000)
	store.Set("RPM", 2000)

	// WHEN
	smoothed, ok := store.Smoothed("RPM")

	// THEN: window is pre-filled with the first value
	assert.True(t, ok)
	assert.InDelta(t, 1250.0, smoothed, 0.001)
}

func TestValueStorePeak(t *testing.T) {
	// GIVEN
	store := NewValueStore(4)
	store.Set("RPM", 1000)
	store.Set("RPM", 2000)
	store.Set("RPM", 500)

	// WHEN
	peak, ok := store.Peak("RPM")

	// THEN: the spike stays visible for the window size
	assert.True(t, ok)
	assert.Equal(t, 2000.0, peak)

	_, ok = store.Peak("SPEED")
	assert.False(t, ok)
}

func TestValueStoreHistory(t *testing.T) {
	// GIVEN
	store := NewValueStore(5)
	store.Set("SPEED", 10)
	store.Set("SPEED", 20)
	store.Set("SPEED", 30)

	// WHEN
	history := store.History("SPEED")

	// THEN
	assert.Equal(t, []float64{10, 20, 30}, history)
}

func TestValueStoreNotifiesSubscribers(t *testing.T) {
	// GIVEN
	store := NewValueStore(5)
	var received []float64
	store.Subscribe("RPM", func(value float64) {
		received = append(received, value)
	})

	// WHEN
	store.Set("RPM", 800)
	store.Set("SPEED", 20)
	store.Set("RPM", 900)

	// THEN
	assert.Equal(t, []float64{800, 900}, received)
}

func TestValueStoreSnapshotIsDetached(t *testing.T) {
	// GIVEN
	store := NewValueStore(5)
	store.Set("RPM", 2000)

	// WHEN
	snapshot := store.Snapshot()
	store.Set("RPM", 3000)

	// THEN
	assert.Equal(t, 2000.0, snapshot["RPM"])
}

func TestValueStoreClear(t *testing.T) {
	// GIVEN
	store := NewValueStore(5)
	store.Set("RPM", 2000)

	// WHEN
	store.Clear()

	// THEN
	_, ok := store.Value("RPM")
	assert.False(t, ok)
	assert.Empty(t, store.History("RPM"))
}
