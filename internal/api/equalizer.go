package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/octave-ivi/octave/internal/equalizer"
)

func registerEqualizerEndpoints(rest *echo.Echo) {
	group := rest.Group("/equalizer")

	group.GET("/", getEqualizer)
	group.PUT("/active/", setEqualizerActive)
	group.PUT("/bands/:"+urlParamId+"/", setEqualizerBand)
	group.GET("/presets/", getEqualizerPresets)
	group.PUT("/presets/", saveEqualizerPreset)
	group.POST("/presets/:"+urlParamId+"/apply/", applyEqualizerPreset)
	group.DELETE("/presets/:"+urlParamId+"/", deleteEqualizerPreset)
}

// returns the band curve and the preset it matches
func getEqualizer(c echo.Context) error {
	data := map[string]interface{}{
		"frequencies":   equalizer.Frequencies,
		"values":        equalizerManager.Values(),
		"currentPreset": equalizerManager.CurrentPreset(),
		"active":        equalizerManager.Active(),
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func setEqualizerActive(c echo.Context) error {
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&body); err != nil {
		return returnBadRequest(c, err)
	}
	equalizerManager.SetActive(body.Active)
	return c.NoContent(http.StatusOK)
}

func setEqualizerBand(c echo.Context) error {
	band, err := strconv.Atoi(c.Param(urlParamId))
	if err != nil {
		return returnBadRequest(c, err)
	}
	var body struct {
		Value float64 `json:"value"`
	}
	if err := c.Bind(&body); err != nil {
		return returnBadRequest(c, err)
	}
	if err := equalizerManager.SetBand(band, body.Value); err != nil {
		return returnBadRequest(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// returns the built-in and custom preset names
func getEqualizerPresets(c echo.Context) error {
	data := map[string][]string{
		"builtin": equalizerManager.BuiltinPresetNames(),
		"custom":  equalizerManager.CustomPresetNames(),
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func saveEqualizerPreset(c echo.Context) error {
	var body struct {
		Name   string    `json:"name"`
		Values []float64 `json:"values"`
	}
	if err := c.Bind(&body); err != nil {
		return returnBadRequest(c, err)
	}
	if err := equalizerManager.SavePreset(body.Name, body.Values); err != nil {
		return returnBadRequest(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func applyEqualizerPreset(c echo.Context) error {
	id := c.Param(urlParamId)
	if err := equalizerManager.ApplyPreset(id); err != nil {
		return returnNotFound(c, id)
	}
	return c.NoContent(http.StatusOK)
}

func deleteEqualizerPreset(c echo.Context) error {
	if err := equalizerManager.DeletePreset(c.Param(urlParamId)); err != nil {
		return returnBadRequest(c, err)
	}
	return c.NoContent(http.StatusOK)
}
