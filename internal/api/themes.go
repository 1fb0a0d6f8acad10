package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octave-ivi/octave/internal/themes"
)

func registerThemeEndpoints(rest *echo.Echo) {
	group := rest.Group("/theme")

	group.GET("/", getThemes)
	group.GET("/current/", getCurrentTheme)
	group.GET("/:"+urlParamId+"/", getTheme)
	group.PUT("/", saveTheme)
	group.DELETE("/:"+urlParamId+"/", deleteTheme)
}

// returns the built-in and custom theme names
func getThemes(c echo.Context) error {
	data := map[string][]string{
		"builtin": themeRegistry.BuiltinThemeNames(),
		"custom":  themeRegistry.CustomThemeNames(),
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getCurrentTheme(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, themeRegistry.Current(), indentationChar)
}

func getTheme(c echo.Context) error {
	id := c.Param(urlParamId)
	data, err := themeRegistry.Resolve(id)
	if err != nil {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func saveTheme(c echo.Context) error {
	var theme themes.Theme
	if err := c.Bind(&theme); err != nil {
		return returnBadRequest(c, err)
	}
	if err := themeRegistry.SaveCustom(theme); err != nil {
		return returnBadRequest(c, err)
	}
	return c.JSONPretty(http.StatusOK, theme, indentationChar)
}

func deleteTheme(c echo.Context) error {
	if err := themeRegistry.DeleteCustom(c.Param(urlParamId)); err != nil {
		return returnError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
