package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/octave-ivi/octave/internal/dashboard"
	"github.com/octave-ivi/octave/internal/equalizer"
	"github.com/octave-ivi/octave/internal/media"
	"github.com/octave-ivi/octave/internal/obd"
	"github.com/octave-ivi/octave/internal/settings"
	"github.com/octave-ivi/octave/internal/spacing"
	"github.com/octave-ivi/octave/internal/spotify"
	"github.com/octave-ivi/octave/internal/themes"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

var (
	settingsStore    *settings.Store
	themeRegistry    *themes.Registry
	spacingRegistry  *spacing.Registry
	obdManager       *obd.Manager
	mediaLibrary     *media.Library
	mediaPlayer      *media.Player
	board            *dashboard.Dashboard
	equalizerManager *equalizer.Manager
	spotifyClient    *spotify.Client
)

func CreateRestService(
	store *settings.Store,
	registry *themes.Registry,
	spacingReg *spacing.Registry,
	manager *obd.Manager,
	library *media.Library,
	player *media.Player,
	dash *dashboard.Dashboard,
	eq *equalizer.Manager,
	spotifyC *spotify.Client,
) *echo.Echo {
	settingsStore = store
	themeRegistry = registry
	spacingRegistry = spacingReg
	obdManager = manager
	mediaLibrary = library
	mediaPlayer = player
	board = dash
	equalizerManager = eq
	spotifyClient = spotifyC

	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())

	echoRest.Use(middleware.Logger())
	echoRest.Use(middleware.Recover())
	echoRest.Use(echoprometheus.NewMiddleware("octave_api"))

	echoRest.GET("/alive/", isAlive)

	registerSettingsEndpoints(echoRest)
	registerThemeEndpoints(echoRest)
	registerSpacingEndpoints(echoRest)
	registerObdEndpoints(echoRest)
	registerMediaEndpoints(echoRest)
	registerDashboardEndpoints(echoRest)
	registerEqualizerEndpoints(echoRest)
	registerSpotifyEndpoints(echoRest)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return a "bad request" message
func returnBadRequest(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad Request",
		Message: e.Error(),
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}
