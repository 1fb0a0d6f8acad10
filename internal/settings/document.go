package settings

// Document is the persisted settings record. Field names match the keys
// of the settings file used by earlier releases so existing installations
// carry over.
type Document struct {
	DeviceName    string  `json:"deviceName"`
	ThemeSetting  string  `json:"themeSetting"`
	StartUpVolume float64 `json:"startUpVolume" validate:"gte=0,lte=1"`

	ShowClock         bool `json:"showClock"`
	ClockFormat24Hour bool `json:"clockFormat24Hour"`
	ClockSize         int  `json:"clockSize" validate:"gt=0"`

	BackgroundGrid       string  `json:"backgroundGrid"`
	ScreenWidth          int     `json:"screenWidth" validate:"gt=0"`
	ScreenHeight         int     `json:"screenHeight" validate:"gt=0"`
	BackgroundBlurRadius int     `json:"backgroundBlurRadius" validate:"gte=0"`
	UiScale              float64 `json:"uiScale" validate:"gt=0"`

	ObdAdapterPort           string          `json:"obdAdapterPort"`
	ObdFastMode              bool            `json:"obdFastMode"`
	ObdAutoReconnectAttempts int             `json:"obdAutoReconnectAttempts" validate:"gte=0,lte=10"`
	ObdParameters            map[string]bool `json:"obdParameters"`
	HomeObdParameters        []string        `json:"homeOBDParameters" validate:"max=4"`
	FuelTankCapacity         float64         `json:"fuelTankCapacity" validate:"gt=0"`

	MediaFolder      string   `json:"mediaFolder"`
	MediaSource      string   `json:"mediaSource" validate:"oneof=local spotify"`
	DirectoryHistory []string `json:"directoryHistory" validate:"max=10"`

	ShowBackgroundOverlay      bool   `json:"showBackgroundOverlay"`
	BottomBarOrientation       string `json:"bottomBarOrientation" validate:"oneof=top bottom"`
	ShowBottomBarMediaControls bool   `json:"showBottomBarMediaControls"`

	SpotifyClientId     string `json:"spotifyClientId"`
	SpotifyClientSecret string `json:"spotifyClientSecret"`
	SpotifyRefreshToken string `json:"spotifyRefreshToken"`

	LastSettingsSection string `json:"lastSettingsSection" validate:"oneof=deviceSettings mediaSettings displaySettings obdSettings clockSettings about"`

	AutoPlayOnStartup  bool   `json:"autoPlayOnStartup"`
	LastPlayedSong     string `json:"lastPlayedSong"`
	LastPlayedPosition int    `json:"lastPlayedPosition" validate:"gte=0"`
	LastPlayedPlaylist string `json:"lastPlayedPlaylist"`
}

// DefaultDocument returns the settings used on first start and after a reset.
func DefaultDocument() Document {
	return Document{
		DeviceName:    "Default Device",
		ThemeSetting:  "CosmicVoyager",
		StartUpVolume: 0.1,

		ShowClock:         true,
		ClockFormat24Hour: true,
		ClockSize:         18,

		BackgroundGrid:       "4x4",
		ScreenWidth:          1280,
		ScreenHeight:         720,
		BackgroundBlurRadius: 40,
		UiScale:              0.6,

		ObdAdapterPort:           "/dev/rfcomm0",
		ObdFastMode:              true,
		ObdAutoReconnectAttempts: 0,
		ObdParameters:            defaultObdParameters(),
		HomeObdParameters:        []string{"SPEED", "RPM", "COOLANT_TEMP", "CONTROL_MODULE_VOLTAGE"},
		FuelTankCapacity:         15.0,

		MediaFolder:      "",
		MediaSource:      MediaSourceLocal,
		DirectoryHistory: []string{},

		ShowBackgroundOverlay:      true,
		BottomBarOrientation:       "bottom",
		ShowBottomBarMediaControls: true,

		LastSettingsSection: "deviceSettings",

		AutoPlayOnStartup:  false,
		LastPlayedSong:     "",
		LastPlayedPosition: 0,
		LastPlayedPlaylist: "",
	}
}

func defaultObdParameters() map[string]bool {
	return map[string]bool{
		"COOLANT_TEMP":           true,
		"CONTROL_MODULE_VOLTAGE": true,
		"ENGINE_LOAD":            true,
		"THROTTLE_POS":           true,
		"INTAKE_TEMP":            true,
		"TIMING_ADVANCE":         true,
		"MAF":                    true,
		"SPEED":                  true,
		"RPM":                    true,
		"COMMANDED_EQUIV_RATIO":  true,
		"FUEL_LEVEL":             true,
		"INTAKE_PRESSURE":        true,
		"SHORT_FUEL_TRIM_1":      true,
		"LONG_FUEL_TRIM_1":       true,
		"O2_B1S1":                true,
		"FUEL_PRESSURE":          true,
		"OIL_TEMP":               true,
		"FUEL_ECONOMY":           true,
		"DISTANCE_TO_EMPTY":      true,
		"IGNITION_TIMING":        true,
	}
}
