package themes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/octave-ivi/octave/internal/persistence"
)

func testRegistry(t *testing.T) *Registry {
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, pers.Init())
	return NewRegistry(pers)
}

func customTheme() Theme {
	return Theme{
		Name:           "NightShift",
		BaseBackground: "#101418",
		AltBackground:  "#1a2028",
		Accent:         "#ff9f43",
		PrimaryText:    "#f0f0f0",
		SecondaryText:  "#9aa5b1",
	}
}

func TestResolveBuiltinTheme(t *testing.T) {
	// GIVEN
	registry := testRegistry(t)

	// WHEN
	theme, err := registry.Resolve("CosmicVoyager")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "CosmicVoyager", theme.Name)
	assert.NotEmpty(t, theme.BaseBackground)
}

func TestResolveUnknownTheme(t *testing.T) {
	// GIVEN
	registry := testRegistry(t)

	// WHEN
	_, err := registry.Resolve("DoesNotExist")

	// THEN
	assert.Error(t, err)
}

func TestApplyUnknownThemeKeepsCurrentPalette(t *testing.T) {
	// GIVEN
	registry := testRegistry(t)
	assert.NoError(t, registry.Apply("Sunburst"))
	before := registry.Current()

	// WHEN
	err := registry.Apply("DoesNotExist")

	// THEN
	assert.Error(t, err)
	assert.Equal(t, before, registry.Current())
}

func TestFallbackColorsUseAccent(t *testing.T) {
	// GIVEN: a theme without category-specific colors
	theme := customTheme()

	// WHEN
	resolved := theme.WithFallbacks()

	// THEN
	assert.Equal(t, theme.Accent, resolved.HomeButton)
	assert.Equal(t, theme.Accent, resolved.SliderFill)
	assert.Equal(t, theme.Accent, resolved.Success)
}

func TestSaveCustomRejectsBuiltinName(t *testing.T) {
	// GIVEN
	registry := testRegistry(t)
	theme := customTheme()
	theme.Name = "CosmicVoyager"

	// WHEN
	err := registry.SaveCustom(theme)

	// THEN
	assert.Error(t, err)
}

func TestCustomThemeSaveAndResolve(t *testing.T) {
	// GIVEN
	registry := testRegistry(t)

	// WHEN
	assert.NoError(t, registry.SaveCustom(customTheme()))

	// THEN
	assert.Equal(t, []string{"NightShift"}, registry.CustomThemeNames())
	resolved, err := registry.Resolve("NightShift")
	assert.NoError(t, err)
	assert.Equal(t, "#ff9f43", resolved.Accent)
}

func TestExportImportRoundTrip(t *testing.T) {
	// GIVEN
	registry := testRegistry(t)
	assert.NoError(t, registry.SaveCustom(customTheme()))

	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")

	// WHEN: export, re-import and export again
	assert.NoError(t, registry.Export("NightShift", first))
	assert.NoError(t, registry.DeleteCustom("NightShift"))

	_, err := registry.Import(first)
	assert.NoError(t, err)
	assert.NoError(t, registry.Export("NightShift", second))

	// THEN: the file content is reproduced byte for byte
	firstData, err := os.ReadFile(first)
	assert.NoError(t, err)
	secondData, err := os.ReadFile(second)
	assert.NoError(t, err)
	assert.Equal(t, firstData, secondData)
}
