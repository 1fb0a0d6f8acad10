package dashboard

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/octave-ivi/octave/internal/obd"
	"github.com/octave-ivi/octave/internal/settings"
	"github.com/octave-ivi/octave/internal/ui"
	"github.com/octave-ivi/octave/internal/util"
)

// ErrSelectionFull is returned when the home screen already holds the
// maximum number of parameters.
var ErrSelectionFull = errors.New("home screen selection is full")

// layoutDebounce absorbs bursts of parameter toggles into one
// recomputation.
const layoutDebounce = 100 * time.Millisecond

// Tile is one dashboard cell.
type Tile struct {
	Parameter obd.Parameter `json:"parameter"`
	Row       int           `json:"row"`
	Column    int           `json:"column"`
}

// Layout is the computed dashboard grid.
type Layout struct {
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
	Tiles   []Tile `json:"tiles"`
}

// columnsFor picks the column count for a tile count: small sets stay
// large and readable, bigger sets pack tighter.
func columnsFor(count int) int {
	switch {
	case count <= 4:
		return 2
	case count <= 9:
		return 3
	default:
		return 4
	}
}

// Compute lays the given parameters out on the grid.
func Compute(parameters []obd.Parameter) Layout {
	if len(parameters) == 0 {
		return Layout{Columns: 2}
	}

	columns := columnsFor(len(parameters))
	tiles := make([]Tile, 0, len(parameters))
	for i, p := range parameters {
		tiles = append(tiles, Tile{
			Parameter: p,
			Row:       i / columns,
			Column:    i % columns,
		})
	}
	return Layout{
		Columns: columns,
		Rows:    (len(parameters) + columns - 1) / columns,
		Tiles:   tiles,
	}
}

// Dashboard keeps the tile layout in sync with the parameter enablement
// settings and manages the home screen selection.
type Dashboard struct {
	store *settings.Store

	mu     sync.RWMutex
	layout Layout

	recompute *util.Debouncer

	listenerMu sync.RWMutex
	listeners  []func(Layout)
}

func NewDashboard(store *settings.Store) *Dashboard {
	d := &Dashboard{store: store}
	d.recompute = util.NewDebouncer(layoutDebounce, d.refresh)
	d.layout = d.computeCurrent()

	store.Subscribe(settings.KeyObdParameters, d.recompute.Trigger)
	return d
}

func (d *Dashboard) OnLayoutChange(fn func(Layout)) {
	d.listenerMu.Lock()
	defer d.listenerMu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// VisibleParameters returns the enabled parameters in display order.
func (d *Dashboard) VisibleParameters() []obd.Parameter {
	var visible []obd.Parameter
	for _, p := range obd.Parameters() {
		if d.store.ObdParameterEnabled(p.Id, true) {
			visible = append(visible, p)
		}
	}
	return visible
}

func (d *Dashboard) computeCurrent() Layout {
	return Compute(d.VisibleParameters())
}

func (d *Dashboard) refresh() {
	layout := d.computeCurrent()

	d.mu.Lock()
	d.layout = layout
	d.mu.Unlock()

	// a disabled parameter may no longer appear on the home screen
	d.pruneHomeSelection()

	ui.Debug("Dashboard layout: %d tiles in %d columns", len(layout.Tiles), layout.Columns)

	d.listenerMu.RLock()
	subscribed := append([]func(Layout){}, d.listeners...)
	d.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(layout)
	}
}

// Layout returns the current grid.
func (d *Dashboard) Layout() Layout {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.layout
}

func (d *Dashboard) pruneHomeSelection() {
	selection := d.store.HomeObdParameters()
	var kept []string
	for _, id := range selection {
		if d.store.ObdParameterEnabled(id, true) {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(selection) {
		return
	}
	if err := d.store.SaveHomeObdParameters(kept); err != nil {
		ui.Warning("Unable to prune home screen selection: %v", err)
	}
}

// HomeSelection returns the parameters pinned to the home screen.
func (d *Dashboard) HomeSelection() []obd.Parameter {
	var result []obd.Parameter
	for _, id := range d.store.HomeObdParameters() {
		if p, ok := obd.GetParameter(id); ok {
			result = append(result, p)
		}
	}
	return result
}

// AddToHome pins a parameter to the home screen. Only enabled parameters
// can be pinned and the selection is capped.
func (d *Dashboard) AddToHome(parameterId string) error {
	if !obd.IsKnownParameter(parameterId) {
		return fmt.Errorf("unknown parameter: %s", parameterId)
	}
	if !d.store.ObdParameterEnabled(parameterId, true) {
		return fmt.Errorf("parameter %s is disabled", parameterId)
	}

	selection := d.store.HomeObdParameters()
	if util.ContainsString(selection, parameterId) {
		return nil
	}
	if len(selection) >= settings.MaxHomeParameters {
		return ErrSelectionFull
	}
	return d.store.SaveHomeObdParameters(append(selection, parameterId))
}

// RemoveFromHome unpins a parameter from the home screen.
func (d *Dashboard) RemoveFromHome(parameterId string) error {
	selection := d.store.HomeObdParameters()
	if !util.ContainsString(selection, parameterId) {
		return nil
	}
	return d.store.SaveHomeObdParameters(util.RemoveString(selection, parameterId))
}

// Close flushes a pending layout recomputation.
func (d *Dashboard) Close() {
	d.recompute.Flush()
}
