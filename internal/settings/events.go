package settings

import "sync"

// Key identifies a single user-configurable value in the settings document.
type Key string

const (
	KeyDeviceName                 Key = "deviceName"
	KeyThemeSetting               Key = "themeSetting"
	KeyStartUpVolume              Key = "startUpVolume"
	KeyCurrentVolume              Key = "currentVolume"
	KeyShowClock                  Key = "showClock"
	KeyClockFormat24Hour          Key = "clockFormat24Hour"
	KeyClockSize                  Key = "clockSize"
	KeyBackgroundGrid             Key = "backgroundGrid"
	KeyScreenWidth                Key = "screenWidth"
	KeyScreenHeight               Key = "screenHeight"
	KeyBackgroundBlurRadius       Key = "backgroundBlurRadius"
	KeyUiScale                    Key = "uiScale"
	KeyObdAdapterPort             Key = "obdAdapterPort"
	KeyObdFastMode                Key = "obdFastMode"
	KeyObdAutoReconnectAttempts   Key = "obdAutoReconnectAttempts"
	KeyObdParameters              Key = "obdParameters"
	KeyHomeObdParameters          Key = "homeOBDParameters"
	KeyFuelTankCapacity           Key = "fuelTankCapacity"
	KeyMediaFolder                Key = "mediaFolder"
	KeyMediaSource                Key = "mediaSource"
	KeyShowBackgroundOverlay      Key = "showBackgroundOverlay"
	KeyBottomBarOrientation       Key = "bottomBarOrientation"
	KeyShowBottomBarMediaControls Key = "showBottomBarMediaControls"
	KeyDirectoryHistory           Key = "directoryHistory"
	KeySpotifyCredentials         Key = "spotifyCredentials"
	KeyLastSettingsSection        Key = "lastSettingsSection"
	KeyAutoPlayOnStartup          Key = "autoPlayOnStartup"
	KeyLastPlayedSong             Key = "lastPlayedSong"
	KeyLastPlayedPosition         Key = "lastPlayedPosition"
	KeyLastPlayedPlaylist         Key = "lastPlayedPlaylist"
)

// listenerRegistry dispatches change notifications to per-key subscribers.
type listenerRegistry struct {
	mu        sync.RWMutex
	listeners map[Key][]func()
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{
		listeners: map[Key][]func(){},
	}
}

func (r *listenerRegistry) subscribe(key Key, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[key] = append(r.listeners[key], fn)
}

func (r *listenerRegistry) emit(key Key) {
	r.mu.RLock()
	subscribed := append([]func(){}, r.listeners[key]...)
	r.mu.RUnlock()
	for _, fn := range subscribed {
		fn()
	}
}
