package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDb(t *testing.T) Persistence {
	pers := NewPersistence(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, pers.Init())
	return pers
}

func TestSettingsRoundTrip(t *testing.T) {
	// GIVEN
	db := testDb(t)

	// WHEN
	err := db.SaveSettings([]byte(`{"deviceName":"Test"}`))

	// THEN
	assert.NoError(t, err)
	data, err := db.LoadSettings()
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"deviceName":"Test"}`), data)
}

func TestLoadMissingSettings(t *testing.T) {
	// GIVEN
	db := testDb(t)

	// WHEN
	_, err := db.LoadSettings()

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDeleteSettings(t *testing.T) {
	// GIVEN
	db := testDb(t)
	assert.NoError(t, db.SaveSettings([]byte("{}")))

	// WHEN
	assert.NoError(t, db.DeleteSettings())

	// THEN
	_, err := db.LoadSettings()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestThemeRoundTrip(t *testing.T) {
	// GIVEN
	db := testDb(t)

	// WHEN
	assert.NoError(t, db.SaveTheme("NightShift", []byte(`{"accent":"#ff9f43"}`)))

	// THEN
	data, err := db.LoadTheme("NightShift")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"accent":"#ff9f43"}`), data)
}

func TestListThemes(t *testing.T) {
	// GIVEN
	db := testDb(t)
	assert.NoError(t, db.SaveTheme("B", []byte("{}")))
	assert.NoError(t, db.SaveTheme("A", []byte("{}")))

	// WHEN
	names, err := db.ListThemes()

	// THEN
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B"}, names)
}

func TestEqualizerPresetRoundTrip(t *testing.T) {
	// GIVEN
	db := testDb(t)

	// WHEN
	assert.NoError(t, db.SaveEqualizerPreset("Roadtrip", []byte(`[1,2,3]`)))

	// THEN
	data, err := db.LoadEqualizerPreset("Roadtrip")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), data)

	names, err := db.ListEqualizerPresets()
	assert.NoError(t, err)
	assert.Equal(t, []string{"Roadtrip"}, names)

	assert.NoError(t, db.DeleteEqualizerPreset("Roadtrip"))
	_, err = db.LoadEqualizerPreset("Roadtrip")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMediaMetadataRoundTrip(t *testing.T) {
	// GIVEN
	db := testDb(t)
	assert.NoError(t, db.SaveMediaMetadata("a.mp3", []byte(`{"title":"A"}`)))

	// WHEN
	data, err := db.LoadMediaMetadata("a.mp3")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"title":"A"}`), data)

	assert.NoError(t, db.ClearMediaMetadata())
	_, err = db.LoadMediaMetadata("a.mp3")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
