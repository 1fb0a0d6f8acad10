package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/octave-ivi/octave/internal/configuration"
	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/settings"
)

func testMediaConfig() configuration.MediaConfig {
	return configuration.MediaConfig{
		Extensions: []string{".mp3", ".flac"},
	}
}

func testLibrary(t *testing.T) (*settings.Store, *Library) {
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, pers.Init())
	store := settings.NewStore(pers)
	t.Cleanup(store.Close)
	return store, NewLibrary(store, pers, testMediaConfig())
}

func writeMediaTree(t *testing.T) string {
	root := t.TempDir()
	files := []string{
		"Queen - Bohemian Rhapsody.mp3",
		"Toto - Africa.mp3",
		"notes.txt",
		"Roadtrip/Queen - Don't Stop Me Now.flac",
		"Roadtrip/Eagles - Hotel California.mp3",
		"Chill/Moby - Porcelain.mp3",
	}
	for _, file := range files {
		path := filepath.Join(root, filepath.FromSlash(file))
		assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		assert.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
	}
	return root
}

func TestScanBuildsPlaylistsFromDirectories(t *testing.T) {
	// GIVEN
	store, library := testLibrary(t)
	store.SaveMediaFolder(writeMediaTree(t))

	// WHEN
	stats, err := library.Scan()

	// THEN: root files land in "All Songs", each subdirectory becomes a playlist
	assert.NoError(t, err)
	assert.Equal(t, 5, stats.TrackCount)
	assert.Equal(t, 3, stats.PlaylistCount)

	playlists := library.Playlists()
	assert.Equal(t, RootPlaylist, playlists[0].Name)
	assert.Len(t, playlists[0].Tracks, 2)

	roadtrip, ok := library.Playlist("Roadtrip")
	assert.True(t, ok)
	assert.Len(t, roadtrip.Tracks, 2)
}

func TestScanSkipsUnknownExtensions(t *testing.T) {
	// GIVEN
	store, library := testLibrary(t)
	store.SaveMediaFolder(writeMediaTree(t))

	// WHEN
	_, err := library.Scan()
	assert.NoError(t, err)

	// THEN
	_, found := library.Track("notes.txt")
	assert.False(t, found)
}

func TestScanParsesTrackMetadata(t *testing.T) {
	// GIVEN
	store, library := testLibrary(t)
	store.SaveMediaFolder(writeMediaTree(t))

	// WHEN
	_, err := library.Scan()
	assert.NoError(t, err)

	// THEN
	track, found := library.Track("Queen - Bohemian Rhapsody.mp3")
	assert.True(t, found)
	assert.Equal(t, "Queen", track.Artist)
	assert.Equal(t, "Bohemian Rhapsody", track.Title)
	assert.Equal(t, RootPlaylist, track.Playlist)
}

func TestScanCountsDistinctArtists(t *testing.T) {
	// GIVEN
	store, library := testLibrary(t)
	store.SaveMediaFolder(writeMediaTree(t))

	// WHEN
	stats, err := library.Scan()

	// THEN: Queen appears twice but counts once
	assert.NoError(t, err)
	assert.Equal(t, 4, stats.ArtistCount)
}

func TestScanWithMissingFolder(t *testing.T) {
	// GIVEN
	store, library := testLibrary(t)
	store.SaveMediaFolder(filepath.Join(t.TempDir(), "does-not-exist"))

	// WHEN
	_, err := library.Scan()

	// THEN
	assert.Error(t, err)
	assert.Empty(t, library.Playlists())
}

func TestScanReportsProgressWithSessionId(t *testing.T) {
	// GIVEN
	store, library := testLibrary(t)
	store.SaveMediaFolder(writeMediaTree(t))

	var final ScanProgress
	library.OnScanProgress(func(progress ScanProgress) {
		if progress.Done {
			final = progress
		}
	})

	// WHEN
	_, err := library.Scan()

	// THEN
	assert.NoError(t, err)
	assert.NotEmpty(t, final.SessionId)
	assert.Equal(t, 5, final.Scanned)
}
