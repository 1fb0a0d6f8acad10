package spacing

import (
	"math"
	"sync"

	"github.com/octave-ivi/octave/internal/settings"
	"github.com/octave-ivi/octave/internal/util"
)

// Metrics is the pixel spacing scale every view derives its paddings,
// gaps and font sizes from. All values depend on the window dimensions
// and the global UI scale factor.
type Metrics struct {
	Unit int `json:"unit"`

	XS int `json:"xs"`
	SM int `json:"sm"`
	MD int `json:"md"`
	LG int `json:"lg"`
	XL int `json:"xl"`

	FontSmall int `json:"fontSmall"`
	FontBody  int `json:"fontBody"`
	FontTitle int `json:"fontTitle"`

	TileMinWidth    int `json:"tileMinWidth"`
	BottomBarHeight int `json:"bottomBarHeight"`
}

// Compute derives the spacing scale from the window dimensions and the
// global UI scale factor.
func Compute(screenWidth int, screenHeight int, uiScale float64) Metrics {
	// the base unit tracks the smaller window dimension so portrait
	// installs don't end up with oversized paddings
	smaller := screenHeight
	if screenWidth < smaller {
		smaller = screenWidth
	}

	unit := int(math.Round(float64(smaller) / 90.0 * uiScale))
	unit = util.Coerce(unit, 2, 32)

	return Metrics{
		Unit: unit,

		XS: unit,
		SM: unit * 2,
		MD: unit * 4,
		LG: unit * 6,
		XL: unit * 8,

		FontSmall: unit * 2,
		FontBody:  unit * 3,
		FontTitle: unit * 5,

		TileMinWidth:    unit * 24,
		BottomBarHeight: unit * 10,
	}
}

// Registry keeps the current spacing scale in sync with the settings
// store.
type Registry struct {
	store *settings.Store

	mu      sync.RWMutex
	current Metrics
}

func NewRegistry(store *settings.Store) *Registry {
	r := &Registry{
		store: store,
	}
	r.recompute()

	store.Subscribe(settings.KeyScreenWidth, r.recompute)
	store.Subscribe(settings.KeyScreenHeight, r.recompute)
	store.Subscribe(settings.KeyUiScale, r.recompute)
	return r
}

func (r *Registry) recompute() {
	metrics := Compute(r.store.ScreenWidth(), r.store.ScreenHeight(), r.store.UiScale())
	r.mu.Lock()
	r.current = metrics
	r.mu.Unlock()
}

func (r *Registry) Current() Metrics {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}
