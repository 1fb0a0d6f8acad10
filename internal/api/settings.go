package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"

	"github.com/octave-ivi/octave/internal/settings"
)

func registerSettingsEndpoints(rest *echo.Echo) {
	group := rest.Group("/settings")

	group.GET("/", getSettings)
	group.POST("/reset/", resetSettings)
	group.PUT("/volume/", setVolume)
	group.PUT("/theme/", setThemeSetting)
}

// returns a copy of the whole settings document
func getSettings(c echo.Context) error {
	data := reprint.This(settingsStore.Document()).(settings.Document)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func resetSettings(c echo.Context) error {
	settingsStore.ResetToDefaults()
	return c.NoContent(http.StatusOK)
}

func setVolume(c echo.Context) error {
	var body struct {
		Volume int `json:"volume"`
	}
	if err := c.Bind(&body); err != nil {
		return returnBadRequest(c, err)
	}
	settingsStore.SetCurrentVolume(body.Volume)
	return c.NoContent(http.StatusOK)
}

func setThemeSetting(c echo.Context) error {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := c.Bind(&body); err != nil {
		return returnBadRequest(c, err)
	}
	if err := themeRegistry.Apply(body.Theme); err != nil {
		return returnBadRequest(c, err)
	}
	settingsStore.SaveThemeSetting(body.Theme)
	return c.NoContent(http.StatusOK)
}
