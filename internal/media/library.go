package media

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/octave-ivi/octave/internal/configuration"
	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/settings"
	"github.com/octave-ivi/octave/internal/ui"
	"github.com/octave-ivi/octave/internal/util"
)

// RootPlaylist collects the files sitting directly in the library root.
const RootPlaylist = "All Songs"

// Playlist is a named group of tracks, one per subdirectory of the
// library root.
type Playlist struct {
	Name   string  `json:"name"`
	Tracks []Track `json:"tracks"`
}

// ScanProgress reports the state of a running library scan.
type ScanProgress struct {
	// SessionId identifies one scan run, listeners use it to drop stale
	// progress events.
	SessionId string `json:"sessionId"`
	Scanned   int    `json:"scanned"`
	Done      bool   `json:"done"`
}

// Stats summarizes the library for the media screen.
type Stats struct {
	TrackCount    int `json:"trackCount"`
	PlaylistCount int `json:"playlistCount"`
	ArtistCount   int `json:"artistCount"`
}

// Library indexes the media folder into playlists.
type Library struct {
	store  *settings.Store
	pers   persistence.Persistence
	config configuration.MediaConfig

	mu        sync.RWMutex
	playlists []Playlist
	byName    map[string]*Playlist

	listenerMu        sync.RWMutex
	progressListeners []func(ScanProgress)
	changeListeners   []func()
}

func NewLibrary(store *settings.Store, pers persistence.Persistence, config configuration.MediaConfig) *Library {
	l := &Library{
		store:  store,
		pers:   pers,
		config: config,
		byName: map[string]*Playlist{},
	}
	// switching the media folder invalidates the whole index
	store.Subscribe(settings.KeyMediaFolder, func() {
		if _, err := l.Scan(); err != nil {
			ui.Warning("Media rescan after folder change failed: %v", err)
		}
	})
	return l
}

func (l *Library) OnScanProgress(fn func(ScanProgress)) {
	l.listenerMu.Lock()
	defer l.listenerMu.Unlock()
	l.progressListeners = append(l.progressListeners, fn)
}

func (l *Library) OnChange(fn func()) {
	l.listenerMu.Lock()
	defer l.listenerMu.Unlock()
	l.changeListeners = append(l.changeListeners, fn)
}

func (l *Library) emitProgress(progress ScanProgress) {
	l.listenerMu.RLock()
	subscribed := append([]func(ScanProgress){}, l.progressListeners...)
	l.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(progress)
	}
}

func (l *Library) isMediaFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return util.ContainsString(l.config.Extensions, ext)
}

// Scan rebuilds the library index from the configured media folder.
// Files in the root land in the "All Songs" playlist, each first-level
// subdirectory becomes its own playlist.
func (l *Library) Scan() (Stats, error) {
	root := l.store.MediaFolder()
	sessionId := uuid.New().String()
	ui.Info("Scanning media library at %s (session %s)", root, sessionId)

	if root == "" {
		l.replaceIndex(nil)
		l.emitProgress(ScanProgress{SessionId: sessionId, Done: true})
		return Stats{}, nil
	}
	if _, err := os.Stat(root); err != nil {
		l.replaceIndex(nil)
		l.emitProgress(ScanProgress{SessionId: sessionId, Done: true})
		return Stats{}, err
	}

	playlists := map[string]*Playlist{
		RootPlaylist: {Name: RootPlaylist},
	}
	scanned := 0

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			ui.Debug("Skipping %s: %v", path, err)
			return nil
		}
		if info.IsDir() || !l.isMediaFile(path) {
			return nil
		}

		relative, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		playlistName := RootPlaylist
		if dir := filepath.Dir(relative); dir != "." {
			// only the first path segment names the playlist
			playlistName = strings.SplitN(dir, string(filepath.Separator), 2)[0]
		}

		track, ok := loadCachedTrack(l.pers, relative, info.Size(), info.ModTime().Unix())
		if !ok {
			artist, title := parseTrackName(relative)
			track = Track{
				Filename:  relative,
				Path:      path,
				Artist:    artist,
				Title:     title,
				Playlist:  playlistName,
				SizeBytes: info.Size(),
				ModTime:   info.ModTime().Unix(),
			}
			saveCachedTrack(l.pers, track)
		}
		track.Path = path
		track.Playlist = playlistName

		playlist, ok := playlists[playlistName]
		if !ok {
			playlist = &Playlist{Name: playlistName}
			playlists[playlistName] = playlist
		}
		playlist.Tracks = append(playlist.Tracks, track)

		scanned++
		if scanned%50 == 0 {
			l.emitProgress(ScanProgress{SessionId: sessionId, Scanned: scanned})
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	var result []Playlist
	for _, name := range util.SortedKeys(playlists) {
		playlist := playlists[name]
		if name != RootPlaylist && len(playlist.Tracks) == 0 {
			continue
		}
		sort.Slice(playlist.Tracks, func(i, j int) bool {
			return playlist.Tracks[i].Filename < playlist.Tracks[j].Filename
		})
		result = append(result, *playlist)
	}
	// root playlist always sorts first
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Name == RootPlaylist && result[j].Name != RootPlaylist
	})

	l.replaceIndex(result)
	l.emitProgress(ScanProgress{SessionId: sessionId, Scanned: scanned, Done: true})
	ui.Info("Media scan finished: %d tracks in %d playlists", scanned, len(result))

	return l.Stats(), nil
}

func (l *Library) replaceIndex(playlists []Playlist) {
	byName := map[string]*Playlist{}
	for i := range playlists {
		byName[playlists[i].Name] = &playlists[i]
	}

	l.mu.Lock()
	l.playlists = playlists
	l.byName = byName
	l.mu.Unlock()

	l.listenerMu.RLock()
	subscribed := append([]func(){}, l.changeListeners...)
	l.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn()
	}
}

// Playlists returns all playlists in display order.
func (l *Library) Playlists() []Playlist {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Playlist{}, l.playlists...)
}

// Playlist looks up a playlist by name.
func (l *Library) Playlist(name string) (Playlist, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	playlist, ok := l.byName[name]
	if !ok {
		return Playlist{}, false
	}
	return *playlist, true
}

// Track looks up a track by its library-relative filename.
func (l *Library) Track(filename string) (Track, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, playlist := range l.playlists {
		for _, track := range playlist.Tracks {
			if track.Filename == filename {
				return track, true
			}
		}
	}
	return Track{}, false
}

// Stats returns summary counters over the current index.
func (l *Library) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	artists := map[string]bool{}
	tracks := 0
	for _, playlist := range l.playlists {
		tracks += len(playlist.Tracks)
		for _, track := range playlist.Tracks {
			if track.Artist != "" {
				artists[track.Artist] = true
			}
		}
	}
	return Stats{
		TrackCount:    tracks,
		PlaylistCount: len(l.playlists),
		ArtistCount:   len(artists),
	}
}
