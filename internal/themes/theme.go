package themes

// Theme is a named palette. All colors are hex strings ("#rrggbb").
// Category-specific colors may be empty, in which case the generic
// accent color is used.
type Theme struct {
	Name string `json:"name"`

	BaseBackground string `json:"baseBackground"`
	AltBackground  string `json:"altBackground"`
	Accent         string `json:"accent"`
	PrimaryText    string `json:"primaryText"`
	SecondaryText  string `json:"secondaryText"`

	SliderTrack  string `json:"sliderTrack,omitempty"`
	SliderFill   string `json:"sliderFill,omitempty"`
	SliderHandle string `json:"sliderHandle,omitempty"`

	Success string `json:"success,omitempty"`
	Warning string `json:"warning,omitempty"`
	Error   string `json:"error,omitempty"`

	HomeButton     string `json:"homeButton,omitempty"`
	ObdButton      string `json:"obdButton,omitempty"`
	MediaButton    string `json:"mediaButton,omitempty"`
	SettingsButton string `json:"settingsButton,omitempty"`
}

// WithFallbacks returns a copy with every empty category-specific color
// replaced by the theme's accent color.
func (t Theme) WithFallbacks() Theme {
	fallback := func(color string) string {
		if len(color) <= 0 {
			return t.Accent
		}
		return color
	}

	t.SliderTrack = fallback(t.SliderTrack)
	t.SliderFill = fallback(t.SliderFill)
	t.SliderHandle = fallback(t.SliderHandle)
	t.Success = fallback(t.Success)
	t.Warning = fallback(t.Warning)
	t.Error = fallback(t.Error)
	t.HomeButton = fallback(t.HomeButton)
	t.ObdButton = fallback(t.ObdButton)
	t.MediaButton = fallback(t.MediaButton)
	t.SettingsButton = fallback(t.SettingsButton)
	return t
}
