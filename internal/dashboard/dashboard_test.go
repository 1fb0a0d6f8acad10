package dashboard

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/octave-ivi/octave/internal/obd"
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

func parameters(n int) []obd.Parameter {
	all := obd.Parameters()
	return all[:n]
}

func TestColumnCountFollowsTileCount(t *testing.T) {
	// small sets render large, bigger sets pack tighter
	assert.Equal(t, 2, Compute(parameters(1)).Columns)
	assert.Equal(t, 2, Compute(parameters(4)).Columns)
	assert.Equal(t, 3, Compute(parameters(5)).Columns)
	assert.Equal(t, 3, Compute(parameters(9)).Columns)
	assert.Equal(t, 4, Compute(parameters(10)).Columns)
	assert.Equal(t, 4, Compute(parameters(20)).Columns)
}

func TestLayoutPlacesTilesRowMajor(t *testing.T) {
	// GIVEN
	layout := Compute(parameters(5))

	// THEN
	assert.Equal(t, 3, layout.Columns)
	assert.Equal(t, 2, layout.Rows)
	assert.Equal(t, 0, layout.Tiles[0].Row)
	assert.Equal(t, 0, layout.Tiles[0].Column)
	assert.Equal(t, 0, layout.Tiles[2].Row)
	assert.Equal(t, 2, layout.Tiles[2].Column)
	assert.Equal(t, 1, layout.Tiles[3].Row)
	assert.Equal(t, 0, layout.Tiles[3].Column)
}

func TestEmptyLayout(t *testing.T) {
	layout := Compute(nil)
	assert.Equal(t, 2, layout.Columns)
	assert.Equal(t, 0, layout.Rows)
	assert.Empty(t, layout.Tiles)
}

func TestVisibleParametersKeepRegistryOrder(t *testing.T) {
	// GIVEN
	store := testStore(t)
	board := NewDashboard(store)
	defer board.Close()

	store.SaveObdParameterEnabled("SPEED", false)
	store.SaveObdParameterEnabled("RPM", false)

	// WHEN
	visible := board.VisibleParameters()

	// THEN: first remaining parameter in display order leads
	assert.Equal(t, "COOLANT_TEMP", visible[0].Id)
	assert.Len(t, visible, len(obd.Parameters())-2)
}

func TestDisablingParameterPrunesHomeSelection(t *testing.T) {
	// GIVEN: SPEED is part of the default home selection
	store := testStore(t)
	board := NewDashboard(store)
	defer board.Close()
	assert.Len(t, board.HomeSelection(), 4)

	// WHEN: the parameter is disabled and the batched change lands
	store.SaveObdParameterEnabled("SPEED", false)
	store.Close()
	board.Close()

	// THEN: the selection shrank, SPEED is gone
	selection := board.HomeSelection()
	assert.Len(t, selection, 3)
	for _, p := range selection {
		assert.NotEqual(t, "SPEED", p.Id)
	}
}

func TestAddToHomeRejectsFifthParameter(t *testing.T) {
	// GIVEN: the default home selection is already full
	store := testStore(t)
	board := NewDashboard(store)
	defer board.Close()
	assert.Len(t, board.HomeSelection(), 4)

	// WHEN
	err := board.AddToHome("MAF")

	// THEN
	assert.ErrorIs(t, err, ErrSelectionFull)
	assert.Len(t, board.HomeSelection(), 4)
}

func TestAddToHomeRejectsDisabledParameter(t *testing.T) {
	// GIVEN
	store := testStore(t)
	board := NewDashboard(store)
	defer board.Close()
	assert.NoError(t, board.RemoveFromHome("SPEED"))
	store.SaveObdParameterEnabled("MAF", false)

	// WHEN
	err := board.AddToHome("MAF")

	// THEN
	assert.Error(t, err)
}

func TestAddAndRemoveFromHome(t *testing.T) {
	// GIVEN
	store := testStore(t)
	board := NewDashboard(store)
	defer board.Close()

	// WHEN
	assert.NoError(t, board.RemoveFromHome("SPEED"))
	assert.NoError(t, board.AddToHome("MAF"))

	// THEN
	selection := board.HomeSelection()
	assert.Len(t, selection, 4)
	assert.Equal(t, "MAF", selection[3].Id)
}

func TestAddToHomeIsIdempotent(t *testing.T) {
	// GIVEN
	store := testStore(t)
	board := NewDashboard(store)
	defer board.Close()

	// WHEN: adding an already pinned parameter
	err := board.AddToHome("SPEED")

	// THEN
	assert.NoError(t, err)
	assert.Len(t, board.HomeSelection(), 4)
}
