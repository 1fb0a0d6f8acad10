package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerSpacingEndpoints(rest *echo.Echo) {
	group := rest.Group("/spacing")

	group.GET("/", getSpacing)
}

// returns the pixel scale the views derive their paddings and font
// sizes from
func getSpacing(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, spacingRegistry.Current(), indentationChar)
}
