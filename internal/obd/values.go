package obd

import (
	"sync"

	"github.com/asecurityteam/rolling"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/octave-ivi/octave/internal/util"
	"github.com/qdm12/reprint"
)

const historySize = 120

// ValueStore holds the live value of every watched parameter together
// with a smoothing window and a short history for graphs.
type ValueStore struct {
	windowSize int

	values cmap.ConcurrentMap[string, float64]

	mu        sync.RWMutex
	windows   map[string]*rolling.PointPolicy
	histories map[string][]float64
	listeners map[string][]func(float64)
}

func NewValueStore(windowSize int) *ValueStore {
	return &ValueStore{
		windowSize: windowSize,
		values:     cmap.New[float64](),
		windows:    map[string]*rolling.PointPolicy{},
		histories:  map[string][]float64{},
		listeners:  map[string][]func(float64){},
	}
}

// Subscribe registers fn to be called with every new value of the given
// parameter.
func (s *ValueStore) Subscribe(parameter string, fn func(float64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[parameter] = append(s.listeners[parameter], fn)
}

// Set records a new reading for the given parameter.
func (s *ValueStore) Set(parameter string, value float64) {
	s.values.Set(parameter, value)

	s.mu.Lock()
	window, ok := s.windows[parameter]
	if !ok {
		window = util.CreateRollingWindow(s.windowSize)
		util.FillWindow(window, s.windowSize, value)
		s.windows[parameter] = window
	}
	window.Append(value)

	history := append(s.histories[parameter], value)
	if len(history) > historySize {
		history = history[len(history)-historySize:]
	}
	s.histories[parameter] = history

	subscribed := append([]func(float64){}, s.listeners[parameter]...)
	s.mu.Unlock()

	for _, fn := range subscribed {
		fn(value)
	}
}

// Value returns the most recent reading of the given parameter.
func (s *ValueStore) Value(parameter string) (float64, bool) {
	return s.values.Get(parameter)
}

// Smoothed returns the rolling window average of the given parameter.
func (s *ValueStore) Smoothed(parameter string) (float64, bool) {
	s.mu.RLock()
	window, ok := s.windows[parameter]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return util.GetWindowAvg(window), true
}

// Peak returns the largest reading in the smoothing window of the given
// parameter.
func (s *ValueStore) Peak(parameter string) (float64, bool) {
	s.mu.RLock()
	window, ok := s.windows[parameter]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return util.GetWindowMax(window), true
}

// History returns the most recent readings of the given parameter,
// oldest first.
func (s *ValueStore) History(parameter string) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64{}, s.histories[parameter]...)
}

// Snapshot returns a deep copy of the whole live value map.
func (s *ValueStore) Snapshot() map[string]float64 {
	return reprint.This(s.values.Items()).(map[string]float64)
}

// Clear drops all recorded values, used when a connection is lost.
func (s *ValueStore) Clear() {
	s.values.Clear()
	s.mu.Lock()
	s.windows = map[string]*rolling.PointPolicy{}
	s.histories = map[string][]float64{}
	s.mu.Unlock()
}
