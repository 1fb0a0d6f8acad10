package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octave-ivi/octave/internal/obd"
)

func registerObdEndpoints(rest *echo.Echo) {
	group := rest.Group("/obd")

	group.GET("/", getObdParameters)
	group.GET("/status/", getObdStatus)
	group.GET("/ports/", getObdPorts)
	group.POST("/reconnect/", reconnectObd)
	group.GET("/:"+urlParamId+"/", getObdParameter)
	group.GET("/:"+urlParamId+"/history/", getObdHistory)
}

// returns every known parameter with its current value
func getObdParameters(c echo.Context) error {
	values := obdManager.Values().Snapshot()

	type entry struct {
		obd.Parameter
		Enabled  bool     `json:"enabled"`
		Value    *float64 `json:"value,omitempty"`
		Smoothed *float64 `json:"smoothed,omitempty"`
	}
	var data []entry
	for _, p := range obd.Parameters() {
		e := entry{
			Parameter: p,
			Enabled:   settingsStore.ObdParameterEnabled(p.Id, true),
		}
		if value, ok := values[p.Id]; ok {
			e.Value = &value
		}
		if smoothed, ok := obdManager.Values().Smoothed(p.Id); ok {
			e.Smoothed = &smoothed
		}
		data = append(data, e)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getObdParameter(c echo.Context) error {
	id := c.Param(urlParamId)
	p, ok := obd.GetParameter(id)
	if !ok {
		return returnNotFound(c, id)
	}

	data := map[string]interface{}{
		"parameter": p,
		"enabled":   settingsStore.ObdParameterEnabled(id, true),
	}
	if value, ok := obdManager.Values().Value(id); ok {
		data["value"] = value
	}
	if smoothed, ok := obdManager.Values().Smoothed(id); ok {
		data["smoothed"] = smoothed
	}
	if peak, ok := obdManager.Values().Peak(id); ok {
		data["peak"] = peak
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getObdHistory(c echo.Context) error {
	id := c.Param(urlParamId)
	if !obd.IsKnownParameter(id) {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, obdManager.Values().History(id), indentationChar)
}

func getObdStatus(c echo.Context) error {
	state, detail, progress := obdManager.ConnectionStatus()
	data := map[string]interface{}{
		"state":    state,
		"detail":   detail,
		"progress": progress,
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getObdPorts(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, obdManager.AvailablePorts(), indentationChar)
}

func reconnectObd(c echo.Context) error {
	obdManager.Reconnect()
	return c.NoContent(http.StatusOK)
}
