package media

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/ui"
)

// Track is one playable file in the library.
type Track struct {
	// Filename relative to the library root, unique within the library.
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Artist   string `json:"artist"`
	Title    string `json:"title"`
	Playlist string `json:"playlist"`

	SizeBytes int64 `json:"sizeBytes"`
	ModTime   int64 `json:"modTime"`
}

// parseTrackName splits a "Artist - Title.ext" filename into its parts.
// Files without a separator keep the whole base name as title and get an
// empty artist.
func parseTrackName(filename string) (artist string, title string) {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.SplitN(base, " - ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return "", strings.TrimSpace(base)
}

// loadCachedTrack returns the cached metadata for a file if it is still
// valid for the given size and modification time.
func loadCachedTrack(pers persistence.Persistence, filename string, size int64, modTime int64) (Track, bool) {
	data, err := pers.LoadMediaMetadata(filename)
	if err != nil {
		return Track{}, false
	}

	var track Track
	if err := json.Unmarshal(data, &track); err != nil {
		ui.Debug("Dropping malformed metadata cache entry for %s: %v", filename, err)
		return Track{}, false
	}
	if track.SizeBytes != size || track.ModTime != modTime {
		return Track{}, false
	}
	return track, true
}

func saveCachedTrack(pers persistence.Persistence, track Track) {
	data, err := json.Marshal(track)
	if err != nil {
		return
	}
	if err := pers.SaveMediaMetadata(track.Filename, data); err != nil {
		ui.Debug("Unable to cache metadata for %s: %v", track.Filename, err)
	}
}
