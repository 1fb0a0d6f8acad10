package clock

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/settings"
)

func testStore(t *testing.T) *settings.Store {
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, pers.Init())
	store := settings.NewStore(pers)
	t.Cleanup(store.Close)
	return store
}

func TestFormat24Hour(t *testing.T) {
	// GIVEN
	store := testStore(t)
	clock := NewClock(store)
	afternoon := time.Date(2026, 8, 25, 14, 5, 0, 0, time.Local)

	// WHEN
	text := clock.format(afternoon)

	// THEN
	assert.Equal(t, "14:05", text)
}

func TestFormat12Hour(t *testing.T) {
	// GIVEN
	store := testStore(t)
	store.SaveClockFormat24Hour(false)
	clock := NewClock(store)
	afternoon := time.Date(2026, 8, 25, 14, 5, 0, 0, time.Local)

	// WHEN
	text := clock.format(afternoon)

	// THEN
	assert.Equal(t, "02:05 PM", text)
}

func TestHiddenClockIsEmpty(t *testing.T) {
	// GIVEN
	store := testStore(t)
	store.SaveShowClock(false)
	clock := NewClock(store)

	// WHEN
	text := clock.format(time.Now())

	// THEN
	assert.Equal(t, "", text)
}

func TestFormatChangeTakesEffectImmediately(t *testing.T) {
	// GIVEN
	store := testStore(t)
	clock := NewClock(store)
	var updates []string
	clock.OnChange(func(text string) {
		updates = append(updates, text)
	})

	// WHEN
	store.SaveClockFormat24Hour(false)

	// THEN: the subscriber saw a refresh without waiting for a tick
	assert.NotEmpty(t, updates)
}
