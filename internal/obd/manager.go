package obd

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/octave-ivi/octave/internal/configuration"
	"github.com/octave-ivi/octave/internal/settings"
	"github.com/octave-ivi/octave/internal/ui"
	"github.com/octave-ivi/octave/internal/util"
)

// ConnectionState is the user-visible connection lifecycle stage,
// rendered as a status badge.
type ConnectionState string

const (
	StateNotConnected   ConnectionState = "Not Connected"
	StateConnecting     ConnectionState = "Connecting"
	StateConnected      ConnectionState = "Connected"
	StateNoVehicle      ConnectionState = "No Vehicle"
	StateDeviceNotFound ConnectionState = "Device Not Found"
	StateFailed         ConnectionState = "Connection Failed"
	StateDisconnected   ConnectionState = "Disconnected"
	StateDeviceLost     ConnectionState = "Device Lost"
	StateError          ConnectionState = "Error"
)

const (
	// delay before the first connection attempt, keeps startup snappy
	startupDelay = 1500 * time.Millisecond
	// quiet period after a port setting change before reconnecting
	portChangeDebounce = time.Second
)

// Manager owns the adapter connection lifecycle and the live values of
// all watched parameters.
type Manager struct {
	adapter Adapter
	store   *settings.Store
	values  *ValueStore
	config  configuration.ObdConfig

	mu                 sync.Mutex
	connected          bool
	isConnecting       bool
	attempts           int
	totalAttempts      int
	state              ConnectionState
	detail             string
	progress           int
	watched            []string
	availablePorts     []string
	forceStopReconnect bool
	reconnectTimer     *time.Timer

	portDebounce *util.Debouncer

	listenerMu        sync.RWMutex
	stateListeners    []func(ConnectionState)
	detailListeners   []func(string)
	progressListeners []func(int)
	presenceListeners []func(bool)
	portsListeners    []func([]string)
}

func NewManager(adapter Adapter, store *settings.Store, config configuration.ObdConfig) *Manager {
	m := &Manager{
		adapter: adapter,
		store:   store,
		values:  NewValueStore(config.RollingWindowSize),
		config:  config,
		state:   StateNotConnected,
		detail:  "Waiting for startup...",
	}
	m.portDebounce = util.NewDebouncer(portChangeDebounce, m.onPortChanged)
	m.refreshWatchers()

	// port changes trigger a debounced reconnect, parameter changes only
	// refresh the watcher set
	store.Subscribe(settings.KeyObdAdapterPort, m.portDebounce.Trigger)
	store.Subscribe(settings.KeyObdParameters, m.refreshWatchers)

	return m
}

// Values exposes the live value store.
func (m *Manager) Values() *ValueStore {
	return m.values
}

func (m *Manager) OnStateChange(fn func(ConnectionState)) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	m.stateListeners = append(m.stateListeners, fn)
}

func (m *Manager) OnDetailChange(fn func(string)) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	m.detailListeners = append(m.detailListeners, fn)
}

func (m *Manager) OnProgressChange(fn func(int)) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	m.progressListeners = append(m.progressListeners, fn)
}

func (m *Manager) OnPresenceChange(fn func(bool)) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	m.presenceListeners = append(m.presenceListeners, fn)
}

func (m *Manager) OnPortsChange(fn func([]string)) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	m.portsListeners = append(m.portsListeners, fn)
}

// Run drives the connection lifecycle until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	startup := time.NewTimer(startupDelay)
	select {
	case <-ctx.Done():
		startup.Stop()
		return nil
	case <-startup.C:
	}

	ui.Info("Starting initial OBD connection...")
	m.scanForDevices()
	m.startConnection()

	scanTick := time.Tick(m.config.ScanInterval)
	monitorTick := time.Tick(m.config.MonitorInterval)
	pollTick := time.Tick(m.config.PollingRate)

	for {
		select {
		case <-ctx.Done():
			m.Close()
			return nil
		case <-scanTick:
			if !m.IsConnected() && !m.connecting() {
				m.scanForDevices()
			}
		case <-monitorTick:
			if m.IsConnected() {
				m.checkConnection()
			}
		case <-pollTick:
			if m.IsConnected() {
				m.RefreshValues()
			}
		}
	}
}

func (m *Manager) connecting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isConnecting
}

func (m *Manager) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// ConnectionStatus returns the current lifecycle stage, detail message
// and progress percent.
func (m *Manager) ConnectionStatus() (ConnectionState, string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.detail, m.progress
}

func (m *Manager) setState(state ConnectionState, detail string, progress int) {
	m.mu.Lock()
	m.state = state
	m.detail = detail
	m.progress = progress
	m.mu.Unlock()

	m.listenerMu.RLock()
	stateSubs := append([]func(ConnectionState){}, m.stateListeners...)
	detailSubs := append([]func(string){}, m.detailListeners...)
	progressSubs := append([]func(int){}, m.progressListeners...)
	m.listenerMu.RUnlock()

	for _, fn := range stateSubs {
		fn(state)
	}
	for _, fn := range detailSubs {
		fn(detail)
	}
	for _, fn := range progressSubs {
		fn(progress)
	}
}

func (m *Manager) setDetail(detail string) {
	m.mu.Lock()
	m.detail = detail
	m.mu.Unlock()

	m.listenerMu.RLock()
	subscribed := append([]func(string){}, m.detailListeners...)
	m.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(detail)
	}
}

func (m *Manager) emitPresence(present bool) {
	m.listenerMu.RLock()
	subscribed := append([]func(bool){}, m.presenceListeners...)
	m.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(present)
	}
}

// scanForDevices discovers candidate adapter ports via the configured
// glob patterns. When the configured port appears while disconnected, a
// connection attempt is started with a fresh attempt counter.
func (m *Manager) scanForDevices() {
	var ports []string
	for _, pattern := range m.config.PortGlobs {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			ui.Warning("Invalid port glob '%s': %v", pattern, err)
			continue
		}
		ports = append(ports, matches...)
	}
	sort.Strings(ports)
	ports = dedupe(ports)

	m.mu.Lock()
	changed := !equalStrings(ports, m.availablePorts)
	m.availablePorts = ports
	connected := m.connected
	isConnecting := m.isConnecting
	m.mu.Unlock()

	if !changed {
		return
	}

	m.listenerMu.RLock()
	subscribed := append([]func([]string){}, m.portsListeners...)
	m.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(ports)
	}
	ui.Debug("Discovered ports: %v", ports)

	if len(ports) > 0 && !connected && !isConnecting {
		configuredPort := m.store.ObdAdapterPort()
		if util.ContainsString(ports, configuredPort) {
			ui.Info("Configured port %s is now available, attempting connection...", configuredPort)
			m.mu.Lock()
			m.attempts = 0
			m.mu.Unlock()
			m.startConnection()
		}
	}
}

// AvailablePorts returns the most recently discovered candidate ports.
func (m *Manager) AvailablePorts() []string {
	m.scanForDevices()
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.availablePorts...)
}

func (m *Manager) portExists(port string) bool {
	return util.FileExists(port)
}

// CheckDevicePresence reports whether the configured port currently
// exists and notifies presence listeners.
func (m *Manager) CheckDevicePresence() bool {
	present := m.portExists(m.store.ObdAdapterPort())
	m.emitPresence(present)
	return present
}

func (m *Manager) startConnection() {
	m.mu.Lock()
	if m.isConnecting {
		m.mu.Unlock()
		ui.Debug("Already connecting - skipping")
		return
	}
	m.isConnecting = true
	m.attempts++
	m.totalAttempts++
	attempt := m.attempts
	m.mu.Unlock()

	ui.Debug("Starting connection attempt #%d", attempt)
	m.setState(StateConnecting, fmt.Sprintf("Attempt %d...", attempt), 10)

	port := m.store.ObdAdapterPort()
	fastMode := m.store.ObdFastMode()

	if !m.portExists(port) {
		m.mu.Lock()
		m.connected = false
		m.isConnecting = false
		m.mu.Unlock()
		m.setState(StateDeviceNotFound, fmt.Sprintf("Port %s not available", port), 0)
		m.emitPresence(false)
		m.scheduleAutoReconnect()
		return
	}

	m.emitPresence(true)
	m.setState(StateConnecting, fmt.Sprintf("Found %s, connecting...", port), 15)

	// the connect handshake can block indefinitely on a dead serial
	// device, keep it off the lifecycle loop and bound it by the
	// configured timeout
	go func() {
		m.setState(StateConnecting, "Initializing OBD adapter...", 20)

		type handshake struct {
			status AdapterStatus
			err    error
		}
		done := make(chan handshake, 1)
		go func() {
			if err := m.adapter.Connect(port, fastMode); err != nil {
				done <- handshake{err: err}
				return
			}
			m.setState(StateConnecting, "Checking connection status...", 80)
			status, err := m.adapter.Status()
			done <- handshake{status: status, err: err}
		}()

		timeout := m.config.ConnectionTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		select {
		case h := <-done:
			if h.err != nil {
				m.onConnectionError(h.err)
				return
			}
			m.onConnectionComplete(h.status)
		case <-time.After(timeout):
			_ = m.adapter.Close()
			m.onConnectionError(fmt.Errorf("connection attempt timed out after %s", timeout))
		}
	}()
}

// ReconnectAttempts returns the total number of connection attempts made
// since startup.
func (m *Manager) ReconnectAttempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalAttempts
}

func (m *Manager) onConnectionComplete(status AdapterStatus) {
	ui.Debug("Connection complete, status: %s", status)

	switch status {
	case StatusCarConnected:
		m.mu.Lock()
		m.connected = true
		m.isConnecting = false
		m.attempts = 0
		m.mu.Unlock()
		m.setState(StateConnected, "OBD interface connected successfully", 100)
		m.refreshWatchers()

	case StatusAdapterConnected:
		m.mu.Lock()
		m.connected = false
		m.isConnecting = false
		m.mu.Unlock()
		// keep trying, the vehicle might not be on yet
		m.setState(StateNoVehicle, "Connected to adapter, waiting for vehicle...", 50)
		m.scheduleAutoReconnect()

	default:
		m.mu.Lock()
		m.connected = false
		m.isConnecting = false
		m.mu.Unlock()
		_ = m.adapter.Close()
		m.setState(StateFailed, "Could not connect to OBD adapter", 0)
		m.scheduleAutoReconnect()
	}
}

func (m *Manager) onConnectionError(err error) {
	ui.Warning("OBD connection error: %v", err)
	m.mu.Lock()
	m.connected = false
	m.isConnecting = false
	m.mu.Unlock()
	m.setState(StateError, fmt.Sprintf("Error: %v", err), 0)
	m.scheduleAutoReconnect()
}

// scheduleAutoReconnect arms the backoff timer for the next attempt,
// bounded by the configured attempt budget. With the budget exhausted or
// disabled the manager falls back to passive port scanning.
func (m *Manager) scheduleAutoReconnect() {
	m.mu.Lock()
	if m.forceStopReconnect {
		m.mu.Unlock()
		ui.Debug("Reconnect stopped by force flag")
		return
	}
	attempts := m.attempts
	m.mu.Unlock()

	maxAttempts := m.store.ObdAutoReconnectAttempts()

	if maxAttempts <= 0 {
		ui.Debug("Auto-reconnect disabled, switching to passive scanning")
		m.setDetail("Auto-reconnect disabled")
		return
	}

	if attempts >= maxAttempts {
		ui.Debug("Max attempts (%d) reached, switching to passive scanning", maxAttempts)
		m.setDetail("Max retries reached. Scanning...")
		return
	}

	// backoff: 10s, 15s, 20s, ... capped at 30s
	delay := time.Duration(util.Coerce(5+attempts*5, 5, 30)) * time.Second
	m.setDetail(fmt.Sprintf("Retry in %s... (%d/%d)", delay, attempts, maxAttempts))
	ui.Debug("Auto-reconnect in %s (attempt %d/%d)", delay, attempts+1, maxAttempts)

	m.mu.Lock()
	if m.reconnectTimer != nil {
		m.reconnectTimer.Stop()
	}
	m.reconnectTimer = time.AfterFunc(delay, m.startConnection)
	m.mu.Unlock()
}

// checkConnection verifies adapter status and device presence while
// connected.
func (m *Manager) checkConnection() {
	port := m.store.ObdAdapterPort()
	if !m.portExists(port) {
		m.mu.Lock()
		m.connected = false
		m.mu.Unlock()
		m.values.Clear()
		m.setState(StateDeviceLost, "Adapter device disconnected", 0)
		m.emitPresence(false)
		m.scheduleAutoReconnect()
		return
	}

	status, err := m.adapter.Status()
	if err != nil || status != StatusCarConnected {
		m.mu.Lock()
		m.connected = false
		m.mu.Unlock()
		m.values.Clear()
		m.setState(StateDisconnected, "Connection to vehicle lost", 0)
		m.scheduleAutoReconnect()
	}
}

// refreshWatchers rebuilds the watched parameter list from the
// enablement settings. No reconnect is needed for this.
func (m *Manager) refreshWatchers() {
	var watched []string
	for _, p := range parameterList {
		if m.store.ObdParameterEnabled(p.Id, true) {
			watched = append(watched, p.Id)
		}
	}

	m.mu.Lock()
	m.watched = watched
	m.mu.Unlock()
	ui.Debug("Watching %d OBD parameters", len(watched))
}

// RefreshValues polls every watched parameter once and re-evaluates the
// derived parameters.
func (m *Manager) RefreshValues() {
	m.mu.Lock()
	watched := append([]string{}, m.watched...)
	m.mu.Unlock()

	for _, id := range watched {
		p, ok := GetParameter(id)
		if !ok || p.Derived {
			continue
		}
		value, err := m.adapter.Query(id)
		if err != nil {
			ui.Debug("Error reading %s: %v", id, err)
			continue
		}
		m.values.Set(id, value)
	}

	tankCapacity := m.store.FuelTankCapacity()
	for _, id := range watched {
		p, ok := GetParameter(id)
		if !ok || !p.Derived {
			continue
		}
		if value, ok := computeDerived(id, m.values.Value, tankCapacity); ok {
			m.values.Set(id, value)
		}
	}
}

func (m *Manager) onPortChanged() {
	ui.Info("OBD port changed to: %s", m.store.ObdAdapterPort())
	m.Reconnect()
}

// Reconnect tears down the current connection and starts over with a
// fresh attempt counter.
func (m *Manager) Reconnect() {
	ui.Debug("Manual reconnect requested")
	m.cleanupConnection()
	m.mu.Lock()
	m.attempts = 0
	m.mu.Unlock()
	m.startConnection()
}

// ForceConnect re-enables reconnects after a Close and starts a fresh
// connection attempt.
func (m *Manager) ForceConnect() {
	m.mu.Lock()
	m.forceStopReconnect = false
	m.mu.Unlock()
	m.Reconnect()
}

// ResetConnection is a hard reset of the connection, resetting the
// attempt counter.
func (m *Manager) ResetConnection() {
	m.ForceConnect()
}

func (m *Manager) cleanupConnection() {
	m.mu.Lock()
	if m.reconnectTimer != nil {
		m.reconnectTimer.Stop()
		m.reconnectTimer = nil
	}
	m.connected = false
	m.mu.Unlock()
	_ = m.adapter.Close()
}

// Close shuts the manager down for good, no further reconnects happen.
func (m *Manager) Close() {
	m.mu.Lock()
	m.forceStopReconnect = true
	m.mu.Unlock()
	m.portDebounce.Stop()
	m.cleanupConnection()
}

func dedupe(sorted []string) []string {
	var result []string
	for i, s := range sorted {
		if i > 0 && sorted[i-1] == s {
			continue
		}
		result = append(result, s)
	}
	return result
}

func equalStrings(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
