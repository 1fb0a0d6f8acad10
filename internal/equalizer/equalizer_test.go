package equalizer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/octave-ivi/octave/internal/persistence"
)

func testPersistence(t *testing.T) persistence.Persistence {
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, pers.Init())
	return pers
}

func TestManagerStartsFlat(t *testing.T) {
	// GIVEN
	manager := NewManager(testPersistence(t))

	// THEN
	assert.Equal(t, DefaultPresetName, manager.CurrentPreset())
	assert.Equal(t, make([]float64, BandCount), manager.Values())
	assert.False(t, manager.Active())
}

func TestApplyBuiltinPreset(t *testing.T) {
	// GIVEN
	manager := NewManager(testPersistence(t))

	var presets []string
	manager.OnPresetChange(func(name string) {
		presets = append(presets, name)
	})

	// WHEN
	assert.NoError(t, manager.ApplyPreset("Bass Boost"))

	// THEN
	assert.Equal(t, "Bass Boost", manager.CurrentPreset())
	assert.Equal(t, 6.0, manager.Values()[0])
	assert.Equal(t, []string{"Bass Boost"}, presets)
}

func TestApplyUnknownPresetKeepsCurrentCurve(t *testing.T) {
	// GIVEN
	manager := NewManager(testPersistence(t))

	// WHEN
	err := manager.ApplyPreset("Does Not Exist")

	// THEN
	assert.Error(t, err)
	assert.Equal(t, DefaultPresetName, manager.CurrentPreset())
}

func TestSetBandTurnsCurveCustom(t *testing.T) {
	// GIVEN
	manager := NewManager(testPersistence(t))

	// WHEN: one band moves away from the flat curve
	assert.NoError(t, manager.SetBand(3, 2.34))

	// THEN: the value is rounded to one decimal
	assert.Equal(t, 2.3, manager.Values()[3])
	assert.Equal(t, CustomPresetName, manager.CurrentPreset())

	// moving it back snaps to the matching preset again
	assert.NoError(t, manager.SetBand(3, 0))
	assert.Equal(t, DefaultPresetName, manager.CurrentPreset())
}

func TestSetBandRejectsOutOfRangeIndex(t *testing.T) {
	manager := NewManager(testPersistence(t))
	assert.Error(t, manager.SetBand(-1, 1))
	assert.Error(t, manager.SetBand(BandCount, 1))
}

func TestSaveAndApplyCustomPreset(t *testing.T) {
	// GIVEN
	pers := testPersistence(t)
	manager := NewManager(pers)
	curve := []float64{1, 2, 3, 4, 5, 5, 4, 3, 2, 1}

	// WHEN
	assert.NoError(t, manager.SavePreset("Roadtrip", curve))

	// THEN
	assert.Equal(t, "Roadtrip", manager.CurrentPreset())
	assert.Equal(t, curve, manager.Values())
	assert.Equal(t, []string{"Roadtrip"}, manager.CustomPresetNames())

	// a fresh manager on the same database still resolves it
	restarted := NewManager(pers)
	assert.NoError(t, restarted.ApplyPreset("Roadtrip"))
	assert.Equal(t, curve, restarted.Values())
}

func TestSavePresetRejectsInvalidNames(t *testing.T) {
	manager := NewManager(testPersistence(t))
	assert.Error(t, manager.SavePreset("", nil))
	assert.Error(t, manager.SavePreset(CustomPresetName, nil))
	// built-in names cannot be shadowed
	assert.Error(t, manager.SavePreset("Rock", nil))
}

func TestSavePresetWithoutCurveUsesCurrentValues(t *testing.T) {
	// GIVEN
	manager := NewManager(testPersistence(t))
	assert.NoError(t, manager.SetBand(0, 4.5))

	// WHEN
	assert.NoError(t, manager.SavePreset("My Bass", nil))

	// THEN
	curve, err := manager.Resolve("My Bass")
	assert.NoError(t, err)
	assert.Equal(t, 4.5, curve[0])
}

func TestDeleteActivePresetFallsBackToFlat(t *testing.T) {
	// GIVEN
	manager := NewManager(testPersistence(t))
	assert.NoError(t, manager.SavePreset("Temp", []float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 0}))
	assert.Equal(t, "Temp", manager.CurrentPreset())

	// WHEN
	assert.NoError(t, manager.DeletePreset("Temp"))

	// THEN
	assert.Equal(t, DefaultPresetName, manager.CurrentPreset())
	assert.Equal(t, make([]float64, BandCount), manager.Values())
	assert.Empty(t, manager.CustomPresetNames())
}

func TestDeletePresetRejectsBuiltins(t *testing.T) {
	manager := NewManager(testPersistence(t))
	assert.Error(t, manager.DeletePreset("Flat"))
	assert.Error(t, manager.DeletePreset("unknown"))
}

func TestActiveToggleNotifiesOnce(t *testing.T) {
	// GIVEN
	manager := NewManager(testPersistence(t))
	var states []bool
	manager.OnActiveChange(func(active bool) {
		states = append(states, active)
	})

	// WHEN: the same state is set twice
	manager.SetActive(true)
	manager.SetActive(true)

	// THEN
	assert.True(t, manager.Active())
	assert.Equal(t, []bool{true}, states)
}

func TestSetBandMatchesCustomPreset(t *testing.T) {
	// GIVEN: a stored user preset one band away from flat
	manager := NewManager(testPersistence(t))
	assert.NoError(t, manager.SavePreset("Slight Bass", []float64{2, 0, 0, 0, 0, 0, 0, 0, 0, 0}))
	assert.NoError(t, manager.ApplyPreset("Flat"))

	// WHEN: the curve is dialed onto the stored preset by hand
	assert.NoError(t, manager.SetBand(0, 2))

	// THEN
	assert.Equal(t, "Slight Bass", manager.CurrentPreset())
}
