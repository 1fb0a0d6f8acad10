package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octave-ivi/octave/internal/dashboard"
)

func registerDashboardEndpoints(rest *echo.Echo) {
	group := rest.Group("/dashboard")

	group.GET("/", getLayout)
	group.GET("/home/", getHomeSelection)
	group.POST("/home/:"+urlParamId+"/", addToHome)
	group.DELETE("/home/:"+urlParamId+"/", removeFromHome)
}

func getLayout(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, board.Layout(), indentationChar)
}

func getHomeSelection(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, board.HomeSelection(), indentationChar)
}

func addToHome(c echo.Context) error {
	err := board.AddToHome(c.Param(urlParamId))
	if errors.Is(err, dashboard.ErrSelectionFull) {
		return c.JSONPretty(http.StatusConflict, &Result{
			Name:    "Selection full",
			Message: err.Error(),
		}, indentationChar)
	}
	if err != nil {
		return returnBadRequest(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func removeFromHome(c echo.Context) error {
	if err := board.RemoveFromHome(c.Param(urlParamId)); err != nil {
		return returnBadRequest(c, err)
	}
	return c.NoContent(http.StatusOK)
}
