package equalizer

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/ui"
	"github.com/octave-ivi/octave/internal/util"
)

// Frequencies are the fixed band centers in Hz.
var Frequencies = []int{32, 64, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

const (
	BandCount = 10

	// DefaultPresetName is applied on startup and after deleting the
	// active preset.
	DefaultPresetName = "Flat"
	// CustomPresetName is the pseudo preset shown while the band values
	// match no stored preset. It cannot be saved or applied.
	CustomPresetName = "Custom"

	// two band curves closer than this per band count as the same preset
	bandEpsilon = 0.1
)

// Manager holds the equalizer band values and resolves preset names,
// factory presets from a static table, user presets from storage.
type Manager struct {
	pers persistence.Persistence

	mu            sync.RWMutex
	values        []float64
	currentPreset string
	active        bool

	listenerMu      sync.RWMutex
	bandListeners   []func([]float64)
	presetListeners []func(string)
	activeListeners []func(bool)
}

func NewManager(pers persistence.Persistence) *Manager {
	m := &Manager{
		pers:          pers,
		values:        make([]float64, BandCount),
		currentPreset: DefaultPresetName,
	}
	copy(m.values, builtinPresets[DefaultPresetName])
	return m
}

// OnBandsChange registers fn to be called with the full band curve after
// every change.
func (m *Manager) OnBandsChange(fn func([]float64)) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	m.bandListeners = append(m.bandListeners, fn)
}

func (m *Manager) OnPresetChange(fn func(string)) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	m.presetListeners = append(m.presetListeners, fn)
}

func (m *Manager) OnActiveChange(fn func(bool)) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	m.activeListeners = append(m.activeListeners, fn)
}

// Values returns a copy of the current band curve in dB.
func (m *Manager) Values() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]float64{}, m.values...)
}

// CurrentPreset returns the name of the preset the band curve matches.
func (m *Manager) CurrentPreset() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentPreset
}

func (m *Manager) Active() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

func (m *Manager) SetActive(active bool) {
	m.mu.Lock()
	if m.active == active {
		m.mu.Unlock()
		return
	}
	m.active = active
	m.mu.Unlock()

	ui.Debug("Equalizer active: %v", active)
	m.emitActive(active)
}

// SetBand changes a single band. The value is rounded to one decimal and
// the current preset is re-resolved: a curve matching no stored preset
// becomes "Custom".
func (m *Manager) SetBand(band int, value float64) error {
	if band < 0 || band >= BandCount {
		return fmt.Errorf("band index out of range: %d", band)
	}
	value = math.Round(value*10) / 10

	m.mu.Lock()
	m.values[band] = value
	values := append([]float64{}, m.values...)
	preset := m.matchingPresetLocked()
	changed := preset != m.currentPreset
	m.currentPreset = preset
	m.mu.Unlock()

	m.emitBands(values)
	if changed {
		m.emitPreset(preset)
	}
	return nil
}

// matchingPresetLocked resolves the current band curve to a preset name,
// built-in presets first, then the stored user presets.
func (m *Manager) matchingPresetLocked() string {
	for _, name := range util.SortedKeys(builtinPresets) {
		if curvesMatch(m.values, builtinPresets[name]) {
			return name
		}
	}
	for _, name := range m.customPresetNames() {
		curve, err := m.loadCustom(name)
		if err != nil {
			continue
		}
		if curvesMatch(m.values, curve) {
			return name
		}
	}
	return CustomPresetName
}

// ApplyPreset replaces the band curve with the named preset.
func (m *Manager) ApplyPreset(name string) error {
	curve, err := m.Resolve(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.values = append([]float64{}, curve...)
	m.currentPreset = name
	m.mu.Unlock()

	ui.Debug("Applied equalizer preset: %s", name)
	m.emitBands(curve)
	m.emitPreset(name)
	return nil
}

// Resolve returns the band curve of the named preset.
func (m *Manager) Resolve(name string) ([]float64, error) {
	if curve, ok := builtinPresets[name]; ok {
		return append([]float64{}, curve...), nil
	}
	return m.loadCustom(name)
}

func (m *Manager) loadCustom(name string) ([]float64, error) {
	data, err := m.pers.LoadEqualizerPreset(name)
	if err != nil {
		return nil, fmt.Errorf("unknown preset: %s", name)
	}
	var curve []float64
	if err := json.Unmarshal(data, &curve); err != nil {
		return nil, fmt.Errorf("stored preset %s is malformed: %w", name, err)
	}
	if len(curve) != BandCount {
		return nil, fmt.Errorf("stored preset %s has %d bands, expected %d", name, len(curve), BandCount)
	}
	return curve, nil
}

// SavePreset stores the given band curve under name and makes it the
// current preset. A nil curve saves the current band values. Built-in
// names cannot be shadowed.
func (m *Manager) SavePreset(name string, values []float64) error {
	if len(name) <= 0 || name == CustomPresetName {
		return fmt.Errorf("invalid preset name: %q", name)
	}
	if _, ok := builtinPresets[name]; ok {
		return fmt.Errorf("'%s' is a built-in preset and cannot be overwritten", name)
	}
	if values == nil {
		values = m.Values()
	}
	if len(values) != BandCount {
		return fmt.Errorf("preset needs %d bands, got %d", BandCount, len(values))
	}

	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if err := m.pers.SaveEqualizerPreset(name, data); err != nil {
		return err
	}

	m.mu.Lock()
	m.values = append([]float64{}, values...)
	m.currentPreset = name
	m.mu.Unlock()

	ui.Debug("Saved equalizer preset: %s", name)
	m.emitBands(values)
	m.emitPreset(name)
	return nil
}

// DeletePreset removes a user preset. Deleting the active preset falls
// back to the default curve.
func (m *Manager) DeletePreset(name string) error {
	if _, ok := builtinPresets[name]; ok {
		return fmt.Errorf("'%s' is a built-in preset and cannot be deleted", name)
	}
	if _, err := m.loadCustom(name); err != nil {
		return err
	}
	if err := m.pers.DeleteEqualizerPreset(name); err != nil {
		return err
	}

	ui.Debug("Deleted equalizer preset: %s", name)
	if m.CurrentPreset() == name {
		return m.ApplyPreset(DefaultPresetName)
	}
	return nil
}

// IsBuiltin reports whether name is a factory preset.
func (m *Manager) IsBuiltin(name string) bool {
	_, ok := builtinPresets[name]
	return ok
}

// BuiltinPresetNames returns the factory preset names, sorted.
func (m *Manager) BuiltinPresetNames() []string {
	return util.SortedKeys(builtinPresets)
}

// CustomPresetNames returns the stored user preset names, sorted.
func (m *Manager) CustomPresetNames() []string {
	return m.customPresetNames()
}

func (m *Manager) customPresetNames() []string {
	names, err := m.pers.ListEqualizerPresets()
	if err != nil {
		ui.Warning("Unable to list equalizer presets: %v", err)
		return []string{}
	}
	slices.Sort(names)
	return names
}

func (m *Manager) emitBands(values []float64) {
	m.listenerMu.RLock()
	subscribed := append([]func([]float64){}, m.bandListeners...)
	m.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(append([]float64{}, values...))
	}
}

func (m *Manager) emitPreset(name string) {
	m.listenerMu.RLock()
	subscribed := append([]func(string){}, m.presetListeners...)
	m.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(name)
	}
}

func (m *Manager) emitActive(active bool) {
	m.listenerMu.RLock()
	subscribed := append([]func(bool){}, m.activeListeners...)
	m.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(active)
	}
}

func curvesMatch(a []float64, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) >= bandEpsilon {
			return false
		}
	}
	return true
}
