package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerMediaEndpoints(rest *echo.Echo) {
	group := rest.Group("/media")

	group.GET("/", getPlaylists)
	group.GET("/stats/", getMediaStats)
	group.GET("/player/", getPlayerState)
	group.POST("/scan/", scanLibrary)
	group.POST("/play/", playMedia)
	group.POST("/toggle/", togglePlayback)
	group.POST("/next/", nextTrack)
	group.POST("/previous/", previousTrack)
	group.POST("/shuffle/", toggleShuffle)
}

// returns all playlists with their tracks
func getPlaylists(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, mediaLibrary.Playlists(), indentationChar)
}

func getMediaStats(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, mediaLibrary.Stats(), indentationChar)
}

func getPlayerState(c echo.Context) error {
	data := map[string]interface{}{
		"state":      mediaPlayer.State(),
		"positionMs": mediaPlayer.PositionMs(),
		"shuffled":   mediaPlayer.Shuffled(),
		"muted":      mediaPlayer.Muted(),
		"volume":     settingsStore.CurrentVolume(),
	}
	if track, ok := mediaPlayer.CurrentTrack(); ok {
		data["track"] = track
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func scanLibrary(c echo.Context) error {
	stats, err := mediaLibrary.Scan()
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, stats, indentationChar)
}

func playMedia(c echo.Context) error {
	var body struct {
		Playlist string `json:"playlist"`
		Track    string `json:"track"`
	}
	if err := c.Bind(&body); err != nil {
		return returnBadRequest(c, err)
	}

	var err error
	if body.Track != "" {
		err = mediaPlayer.PlayTrack(body.Playlist, body.Track)
	} else {
		err = mediaPlayer.PlayPlaylist(body.Playlist)
	}
	if err != nil {
		return returnBadRequest(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func togglePlayback(c echo.Context) error {
	mediaPlayer.TogglePlayback()
	return c.NoContent(http.StatusOK)
}

func nextTrack(c echo.Context) error {
	mediaPlayer.Next()
	return c.NoContent(http.StatusOK)
}

func previousTrack(c echo.Context) error {
	mediaPlayer.Previous()
	return c.NoContent(http.StatusOK)
}

func toggleShuffle(c echo.Context) error {
	data := map[string]bool{"shuffled": mediaPlayer.ToggleShuffle()}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
