package settings

import (
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/octave-ivi/octave/internal/persistence"
)

func testPersistence(t *testing.T) persistence.Persistence {
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, pers.Init())
	return pers
}

func TestDefaultsOnEmptyDatabase(t *testing.T) {
	// GIVEN
	pers := testPersistence(t)

	// WHEN
	store := NewStore(pers)
	defer store.Close()

	// THEN
	assert.Equal(t, "Default Device", store.DeviceName())
	assert.Equal(t, "CosmicVoyager", store.ThemeSetting())
	assert.Equal(t, []string{"SPEED", "RPM", "COOLANT_TEMP", "CONTROL_MODULE_VOLTAGE"}, store.HomeObdParameters())
	assert.True(t, store.ObdParameterEnabled("RPM", true))
}

func TestCorruptDocumentResetsToDefaults(t *testing.T) {
	// GIVEN
	pers := testPersistence(t)
	assert.NoError(t, pers.SaveSettings([]byte("{not json")))

	// WHEN
	store := NewStore(pers)
	defer store.Close()

	// THEN
	assert.Equal(t, "Default Device", store.DeviceName())
}

func TestSettingsSurviveReload(t *testing.T) {
	// GIVEN
	pers := testPersistence(t)
	store := NewStore(pers)
	store.SaveDeviceName("Roadtrip Rig")
	store.SaveFuelTankCapacity(12.5)
	store.Close()

	// WHEN
	reloaded := NewStore(pers)
	defer reloaded.Close()

	// THEN
	assert.Equal(t, "Roadtrip Rig", reloaded.DeviceName())
	assert.Equal(t, 12.5, reloaded.FuelTankCapacity())
}

func TestParameterTogglesAreBatched(t *testing.T) {
	// GIVEN
	pers := testPersistence(t)
	store := NewStore(pers)
	defer store.Close()

	var notifications int32
	store.Subscribe(KeyObdParameters, func() {
		atomic.AddInt32(&notifications, 1)
	})

	// WHEN
	store.SaveObdParameterEnabled("RPM", false)
	store.SaveObdParameterEnabled("MAF", false)
	store.SaveObdParameterEnabled("RPM", true)

	// THEN: reads see the change immediately, subscribers don't
	assert.True(t, store.ObdParameterEnabled("RPM", true))
	assert.False(t, store.ObdParameterEnabled("MAF", true))
	assert.Equal(t, int32(0), atomic.LoadInt32(&notifications))

	// WHEN the quiet period elapses
	store.paramDebounce.Flush()

	// THEN exactly one notification carries the final state
	assert.Equal(t, int32(1), atomic.LoadInt32(&notifications))

	reloaded := NewStore(pers)
	defer reloaded.Close()
	assert.True(t, reloaded.ObdParameterEnabled("RPM", true))
	assert.False(t, reloaded.ObdParameterEnabled("MAF", true))
}

func TestSnapshotMapUnaffectedByLaterToggles(t *testing.T) {
	// GIVEN
	pers := testPersistence(t)
	store := NewStore(pers)
	defer store.Close()

	snapshot := store.ObdParameters()
	assert.True(t, snapshot["RPM"])

	// WHEN
	store.SaveObdParameterEnabled("RPM", false)

	// THEN
	assert.True(t, snapshot["RPM"])
	assert.False(t, store.ObdParameterEnabled("RPM", true))
}

func TestHomeParameterLimit(t *testing.T) {
	// GIVEN
	pers := testPersistence(t)
	store := NewStore(pers)
	defer store.Close()

	// WHEN
	err := store.SaveHomeObdParameters([]string{"SPEED", "RPM", "COOLANT_TEMP", "MAF", "FUEL_LEVEL"})

	// THEN
	assert.ErrorIs(t, err, ErrTooManyHomeParameters)
	assert.Len(t, store.HomeObdParameters(), 4)
}

func TestDirectoryHistoryIsMostRecentFirst(t *testing.T) {
	// GIVEN
	pers := testPersistence(t)
	store := NewStore(pers)
	defer store.Close()

	// WHEN
	store.SaveToDirectoryHistory("/media/usb0")
	store.SaveToDirectoryHistory("/media/usb1")
	store.SaveToDirectoryHistory("/media/usb0")

	// THEN: re-adding moves to the front without duplicating
	assert.Equal(t, []string{"/media/usb0", "/media/usb1"}, store.DirectoryHistory())
}

func TestResetToDefaults(t *testing.T) {
	// GIVEN
	pers := testPersistence(t)
	store := NewStore(pers)
	defer store.Close()
	store.SaveDeviceName("Roadtrip Rig")

	// WHEN
	store.ResetToDefaults()

	// THEN
	assert.Equal(t, "Default Device", store.DeviceName())
}
