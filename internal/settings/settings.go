package settings

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/ui"
	"github.com/octave-ivi/octave/internal/util"
)

const (
	MediaSourceLocal   = "local"
	MediaSourceSpotify = "spotify"

	// Quiet period after the last parameter toggle before the batched
	// change is persisted and announced.
	ObdParameterFlushDelay = 800 * time.Millisecond

	maxDirectoryHistory = 10
	MaxHomeParameters   = 4
)

var ErrTooManyHomeParameters = errors.New("home screen supports at most 4 parameters")

// Store holds the settings document in memory, persists every change and
// notifies per-key subscribers. All methods are safe for concurrent use.
type Store struct {
	pers persistence.Persistence

	mu  sync.RWMutex
	doc Document

	// session-only unified volume (0-100), derived from startUpVolume at load
	currentVolume int

	listeners *listenerRegistry

	paramMu       sync.Mutex
	paramsDirty   bool
	paramDebounce *util.Debouncer
}

func NewStore(pers persistence.Persistence) *Store {
	s := &Store{
		pers:      pers,
		listeners: newListenerRegistry(),
	}
	s.paramDebounce = util.NewDebouncer(ObdParameterFlushDelay, s.flushObdParameters)
	s.doc = s.load()
	// perceptual volume curve, maps the stored amplitude to a 0-100 knob
	s.currentVolume = int(math.Round(math.Sqrt(s.doc.StartUpVolume) * 100))
	return s
}

// load reads the persisted document, merging defaults for anything missing.
// A document that cannot be parsed or fails validation is replaced by the
// defaults instead of taking the whole store down.
func (s *Store) load() Document {
	doc := DefaultDocument()

	data, err := s.pers.LoadSettings()
	if err != nil {
		ui.Info("No saved settings found, using defaults")
		s.persist(doc)
		return doc
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		ui.Warning("Unable to parse saved settings, resetting to defaults: %v", err)
		_ = s.pers.DeleteSettings()
		doc = DefaultDocument()
		s.persist(doc)
		return doc
	}

	// parameters added in newer releases default to enabled
	if doc.ObdParameters == nil {
		doc.ObdParameters = map[string]bool{}
	}
	for param, enabled := range defaultObdParameters() {
		if _, ok := doc.ObdParameters[param]; !ok {
			doc.ObdParameters[param] = enabled
		}
	}

	if err := validator.New().Struct(doc); err != nil {
		ui.Warning("Saved settings failed validation, resetting to defaults: %v", err)
		doc = DefaultDocument()
	}

	s.persist(doc)
	return doc
}

func (s *Store) persist(doc Document) {
	data, err := json.Marshal(doc)
	if err != nil {
		ui.Error("Unable to serialize settings: %v", err)
		return
	}
	if err := s.pers.SaveSettings(data); err != nil {
		ui.Error("Unable to save settings: %v", err)
	}
}

// Subscribe registers fn to be called after every change of the given key.
func (s *Store) Subscribe(key Key, fn func()) {
	s.listeners.subscribe(key, fn)
}

// update applies fn to the document under the write lock, persists the
// result and emits the change for key.
func (s *Store) update(key Key, fn func(doc *Document)) {
	s.mu.Lock()
	fn(&s.doc)
	doc := s.doc
	s.mu.Unlock()

	s.persist(doc)
	s.listeners.emit(key)
}

// Document returns a copy of the current settings document.
func (s *Store) Document() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := s.doc
	doc.ObdParameters = copyBoolMap(s.doc.ObdParameters)
	doc.HomeObdParameters = append([]string{}, s.doc.HomeObdParameters...)
	doc.DirectoryHistory = append([]string{}, s.doc.DirectoryHistory...)
	return doc
}

func (s *Store) DeviceName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.DeviceName
}

func (s *Store) SaveDeviceName(name string) {
	ui.Debug("Saving device name: %s", name)
	s.update(KeyDeviceName, func(doc *Document) { doc.DeviceName = name })
}

func (s *Store) ThemeSetting() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ThemeSetting
}

func (s *Store) SaveThemeSetting(theme string) {
	ui.Debug("Saving theme setting: %s", theme)
	s.update(KeyThemeSetting, func(doc *Document) { doc.ThemeSetting = theme })
}

func (s *Store) StartUpVolume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.StartUpVolume
}

func (s *Store) SaveStartUpVolume(volume float64) {
	s.update(KeyStartUpVolume, func(doc *Document) {
		doc.StartUpVolume = util.Coerce(volume, 0.0, 1.0)
	})
}

// CurrentVolume is the unified 0-100 volume shared by local playback and
// Spotify. It is session state and never persisted.
func (s *Store) CurrentVolume() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentVolume
}

func (s *Store) SetCurrentVolume(volume int) {
	s.mu.Lock()
	volume = util.Coerce(volume, 0, 100)
	if s.currentVolume == volume {
		s.mu.Unlock()
		return
	}
	s.currentVolume = volume
	s.mu.Unlock()
	s.listeners.emit(KeyCurrentVolume)
}

func (s *Store) ShowClock() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ShowClock
}

func (s *Store) SaveShowClock(show bool) {
	s.update(KeyShowClock, func(doc *Document) { doc.ShowClock = show })
}

func (s *Store) ClockFormat24Hour() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ClockFormat24Hour
}

func (s *Store) SaveClockFormat24Hour(is24Hour bool) {
	s.update(KeyClockFormat24Hour, func(doc *Document) { doc.ClockFormat24Hour = is24Hour })
}

func (s *Store) ClockSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ClockSize
}

func (s *Store) SaveClockSize(size int) {
	s.update(KeyClockSize, func(doc *Document) { doc.ClockSize = size })
}

func (s *Store) BackgroundGrid() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.BackgroundGrid
}

func (s *Store) SaveBackgroundGrid(grid string) {
	s.update(KeyBackgroundGrid, func(doc *Document) { doc.BackgroundGrid = grid })
}

func (s *Store) ScreenWidth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ScreenWidth
}

func (s *Store) SaveScreenWidth(width int) {
	s.update(KeyScreenWidth, func(doc *Document) { doc.ScreenWidth = width })
}

func (s *Store) ScreenHeight() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ScreenHeight
}

func (s *Store) SaveScreenHeight(height int) {
	s.update(KeyScreenHeight, func(doc *Document) { doc.ScreenHeight = height })
}

func (s *Store) BackgroundBlurRadius() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.BackgroundBlurRadius
}

func (s *Store) SaveBackgroundBlurRadius(radius int) {
	s.update(KeyBackgroundBlurRadius, func(doc *Document) { doc.BackgroundBlurRadius = radius })
}

func (s *Store) UiScale() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.UiScale
}

func (s *Store) SaveUiScale(scale float64) {
	s.update(KeyUiScale, func(doc *Document) { doc.UiScale = scale })
}

func (s *Store) ObdAdapterPort() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ObdAdapterPort
}

func (s *Store) SaveObdAdapterPort(port string) {
	ui.Debug("Saving OBD adapter port: %s", port)
	s.update(KeyObdAdapterPort, func(doc *Document) { doc.ObdAdapterPort = port })
}

func (s *Store) ObdFastMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ObdFastMode
}

func (s *Store) SaveObdFastMode(enabled bool) {
	s.update(KeyObdFastMode, func(doc *Document) { doc.ObdFastMode = enabled })
}

func (s *Store) ObdAutoReconnectAttempts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ObdAutoReconnectAttempts
}

// SaveObdAutoReconnectAttempts stores the reconnect budget,
// 0 = disabled, 1-10 = number of attempts.
func (s *Store) SaveObdAutoReconnectAttempts(attempts int) {
	s.update(KeyObdAutoReconnectAttempts, func(doc *Document) {
		doc.ObdAutoReconnectAttempts = util.Coerce(attempts, 0, 10)
	})
}

// ObdParameterEnabled reports the enablement of a single parameter from
// memory, caching fallback for parameters that were never stored.
func (s *Store) ObdParameterEnabled(parameter string, fallback bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enabled, ok := s.doc.ObdParameters[parameter]; ok {
		return enabled
	}
	params := copyBoolMap(s.doc.ObdParameters)
	params[parameter] = fallback
	s.doc.ObdParameters = params
	return fallback
}

// ObdParameters returns a copy of the full enablement map.
func (s *Store) ObdParameters() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyBoolMap(s.doc.ObdParameters)
}

// SaveObdParameterEnabled updates the in-memory state immediately so the
// UI stays responsive, and batches the disk write: rapid toggles within
// the debounce window result in exactly one persisted write and one
// notification carrying the final state.
func (s *Store) SaveObdParameterEnabled(parameter string, enabled bool) {
	s.mu.Lock()
	// replace instead of mutating so concurrent readers of a previously
	// returned map are unaffected
	params := copyBoolMap(s.doc.ObdParameters)
	params[parameter] = enabled
	s.doc.ObdParameters = params
	s.mu.Unlock()

	s.paramMu.Lock()
	s.paramsDirty = true
	s.paramMu.Unlock()
	s.paramDebounce.Trigger()
}

func (s *Store) flushObdParameters() {
	s.paramMu.Lock()
	if !s.paramsDirty {
		s.paramMu.Unlock()
		return
	}
	s.paramsDirty = false
	s.paramMu.Unlock()

	ui.Debug("Flushing OBD parameter changes to disk")

	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()
	s.persist(doc)
	s.listeners.emit(KeyObdParameters)
}

func (s *Store) HomeObdParameters() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.doc.HomeObdParameters...)
}

// SaveHomeObdParameters stores the ordered home screen selection.
func (s *Store) SaveHomeObdParameters(parameters []string) error {
	if len(parameters) > MaxHomeParameters {
		return ErrTooManyHomeParameters
	}
	ui.Debug("Saving home OBD parameters: %v", parameters)
	s.update(KeyHomeObdParameters, func(doc *Document) {
		doc.HomeObdParameters = append([]string{}, parameters...)
	})
	return nil
}

func (s *Store) FuelTankCapacity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.FuelTankCapacity
}

func (s *Store) SaveFuelTankCapacity(capacity float64) {
	s.update(KeyFuelTankCapacity, func(doc *Document) { doc.FuelTankCapacity = capacity })
}

func (s *Store) MediaFolder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.MediaFolder
}

func (s *Store) SaveMediaFolder(folder string) {
	ui.Debug("Saving media folder path: %s", folder)
	s.update(KeyMediaFolder, func(doc *Document) { doc.MediaFolder = folder })
}

func (s *Store) MediaSource() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.MediaSource
}

// SetMediaSource switches between local playback and Spotify. Unknown
// sources are ignored.
func (s *Store) SetMediaSource(source string) {
	if source != MediaSourceLocal && source != MediaSourceSpotify {
		return
	}
	s.mu.RLock()
	unchanged := s.doc.MediaSource == source
	s.mu.RUnlock()
	if unchanged {
		return
	}
	s.update(KeyMediaSource, func(doc *Document) { doc.MediaSource = source })
}

func (s *Store) ToggleMediaSource() {
	if s.MediaSource() == MediaSourceLocal {
		s.SetMediaSource(MediaSourceSpotify)
	} else {
		s.SetMediaSource(MediaSourceLocal)
	}
}

func (s *Store) ShowBackgroundOverlay() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ShowBackgroundOverlay
}

func (s *Store) SaveShowBackgroundOverlay(show bool) {
	s.update(KeyShowBackgroundOverlay, func(doc *Document) { doc.ShowBackgroundOverlay = show })
}

func (s *Store) BottomBarOrientation() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.BottomBarOrientation
}

func (s *Store) SaveBottomBarOrientation(orientation string) {
	s.update(KeyBottomBarOrientation, func(doc *Document) { doc.BottomBarOrientation = orientation })
}

func (s *Store) ShowBottomBarMediaControls() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ShowBottomBarMediaControls
}

func (s *Store) SaveShowBottomBarMediaControls(show bool) {
	s.update(KeyShowBottomBarMediaControls, func(doc *Document) { doc.ShowBottomBarMediaControls = show })
}

func (s *Store) DirectoryHistory() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.doc.DirectoryHistory...)
}

// SaveToDirectoryHistory prepends folder to the most-recently-used list,
// moving a known folder back to the front and keeping at most 10 entries.
func (s *Store) SaveToDirectoryHistory(folder string) {
	s.update(KeyDirectoryHistory, func(doc *Document) {
		history := append([]string{folder}, util.RemoveString(doc.DirectoryHistory, folder)...)
		if len(history) > maxDirectoryHistory {
			history = history[:maxDirectoryHistory]
		}
		doc.DirectoryHistory = history
	})
}

func (s *Store) RemoveFromDirectoryHistory(folder string) {
	s.mu.RLock()
	known := util.ContainsString(s.doc.DirectoryHistory, folder)
	s.mu.RUnlock()
	if !known {
		return
	}
	s.update(KeyDirectoryHistory, func(doc *Document) {
		doc.DirectoryHistory = util.RemoveString(doc.DirectoryHistory, folder)
	})
}

func (s *Store) SpotifyCredentials() (clientId string, clientSecret string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.SpotifyClientId, s.doc.SpotifyClientSecret
}

func (s *Store) HasSpotifyCredentials() bool {
	id, secret := s.SpotifyCredentials()
	return len(id) > 0 && len(secret) > 0
}

func (s *Store) SaveSpotifyCredentials(clientId string, clientSecret string) {
	ui.Debug("Saving Spotify credentials")
	s.update(KeySpotifyCredentials, func(doc *Document) {
		doc.SpotifyClientId = clientId
		doc.SpotifyClientSecret = clientSecret
	})
}

func (s *Store) ClearSpotifyCredentials() {
	s.SaveSpotifyCredentials("", "")
}

func (s *Store) SpotifyRefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.SpotifyRefreshToken
}

func (s *Store) SaveSpotifyRefreshToken(token string) {
	s.update(KeySpotifyCredentials, func(doc *Document) {
		doc.SpotifyRefreshToken = token
	})
}

func (s *Store) LastSettingsSection() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.LastSettingsSection
}

var validSettingsSections = []string{
	"deviceSettings", "mediaSettings", "displaySettings", "obdSettings", "clockSettings", "about",
}

// SetLastSettingsSection remembers the settings section to reopen on the
// next visit. Unknown sections are ignored.
func (s *Store) SetLastSettingsSection(section string) {
	if !util.ContainsString(validSettingsSections, section) {
		return
	}
	s.mu.RLock()
	unchanged := s.doc.LastSettingsSection == section
	s.mu.RUnlock()
	if unchanged {
		return
	}
	s.update(KeyLastSettingsSection, func(doc *Document) { doc.LastSettingsSection = section })
}

func (s *Store) AutoPlayOnStartup() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.AutoPlayOnStartup
}

func (s *Store) SaveAutoPlayOnStartup(enabled bool) {
	s.update(KeyAutoPlayOnStartup, func(doc *Document) { doc.AutoPlayOnStartup = enabled })
}

func (s *Store) LastPlayedSong() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.LastPlayedSong
}

func (s *Store) SaveLastPlayedSong(filename string) {
	s.update(KeyLastPlayedSong, func(doc *Document) { doc.LastPlayedSong = filename })
}

func (s *Store) LastPlayedPosition() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.LastPlayedPosition
}

func (s *Store) SaveLastPlayedPosition(positionMs int) {
	s.update(KeyLastPlayedPosition, func(doc *Document) { doc.LastPlayedPosition = positionMs })
}

func (s *Store) LastPlayedPlaylist() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.LastPlayedPlaylist
}

func (s *Store) SaveLastPlayedPlaylist(playlist string) {
	s.update(KeyLastPlayedPlaylist, func(doc *Document) { doc.LastPlayedPlaylist = playlist })
}

// SavePlaybackState stores song, position and playlist in a single write,
// used when playback pauses or stops.
func (s *Store) SavePlaybackState(song string, positionMs int, playlist string) {
	s.mu.Lock()
	s.doc.LastPlayedSong = song
	s.doc.LastPlayedPosition = positionMs
	s.doc.LastPlayedPlaylist = playlist
	doc := s.doc
	s.mu.Unlock()
	s.persist(doc)
}

// ResetToDefaults replaces the whole document with the defaults and
// notifies every key.
func (s *Store) ResetToDefaults() {
	s.paramDebounce.Stop()
	s.paramMu.Lock()
	s.paramsDirty = false
	s.paramMu.Unlock()

	s.mu.Lock()
	s.doc = DefaultDocument()
	doc := s.doc
	s.mu.Unlock()

	s.persist(doc)
	for _, key := range allKeys {
		s.listeners.emit(key)
	}
}

// Close flushes any pending debounced write.
func (s *Store) Close() {
	s.paramDebounce.Flush()
}

var allKeys = []Key{
	KeyDeviceName, KeyThemeSetting, KeyStartUpVolume, KeyShowClock,
	KeyClockFormat24Hour, KeyClockSize, KeyBackgroundGrid, KeyScreenWidth,
	KeyScreenHeight, KeyBackgroundBlurRadius, KeyUiScale, KeyObdAdapterPort,
	KeyObdFastMode, KeyObdAutoReconnectAttempts, KeyObdParameters,
	KeyHomeObdParameters, KeyFuelTankCapacity, KeyMediaFolder, KeyMediaSource,
	KeyShowBackgroundOverlay, KeyBottomBarOrientation,
	KeyShowBottomBarMediaControls, KeyDirectoryHistory, KeySpotifyCredentials,
	KeyLastSettingsSection, KeyAutoPlayOnStartup, KeyLastPlayedSong,
	KeyLastPlayedPosition, KeyLastPlayedPlaylist,
}

func copyBoolMap(input map[string]bool) map[string]bool {
	result := make(map[string]bool, len(input))
	for k, v := range input {
		result[k] = v
	}
	return result
}
