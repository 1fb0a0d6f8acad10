package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerSpotifyEndpoints(rest *echo.Echo) {
	group := rest.Group("/spotify")

	group.GET("/", getSpotifyStatus)
	group.GET("/devices/", getSpotifyDevices)
	group.POST("/connect/", connectSpotify)
	group.POST("/disconnect/", disconnectSpotify)
	group.PUT("/devices/:"+urlParamId+"/", setActiveSpotifyDevice)
}

func getSpotifyStatus(c echo.Context) error {
	data := map[string]interface{}{
		"state":          spotifyClient.State(),
		"lastError":      spotifyClient.LastError(),
		"hasCredentials": settingsStore.HasSpotifyCredentials(),
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSpotifyDevices(c echo.Context) error {
	devices, err := spotifyClient.RefreshDevices(c.Request().Context())
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, devices, indentationChar)
}

func connectSpotify(c echo.Context) error {
	if err := spotifyClient.Connect(c.Request().Context()); err != nil {
		return returnError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func disconnectSpotify(c echo.Context) error {
	spotifyClient.Disconnect()
	return c.NoContent(http.StatusOK)
}

func setActiveSpotifyDevice(c echo.Context) error {
	if err := spotifyClient.SetActiveDevice(c.Request().Context(), c.Param(urlParamId)); err != nil {
		return returnError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
