package obd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/octave-ivi/octave/internal/configuration"
	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/settings"
)

func testSettings(t *testing.T) *settings.Store {
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, pers.Init())
	store := settings.NewStore(pers)
	t.Cleanup(store.Close)
	return store
}

func testObdConfig(portGlobs []string) configuration.ObdConfig {
	return configuration.ObdConfig{
		PollingRate:       100 * time.Millisecond,
		RollingWindowSize: 5,
		ScanInterval:      time.Second,
		MonitorInterval:   time.Second,
		ConnectionTimeout: time.Second,
		PortGlobs:         portGlobs,
	}
}

func TestRefreshValuesComputesDerivedParameters(t *testing.T) {
	// GIVEN: a bridge directory with base readings
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "SPEED"), []byte("60"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "MAF"), []byte("5"), 0o644))

	store := testSettings(t)
	manager := NewManager(&FileAdapter{Path: dir}, store, testObdConfig(nil))
	defer manager.Close()

	// WHEN
	manager.RefreshValues()

	// THEN
	speed, ok := manager.Values().Value("SPEED")
	assert.True(t, ok)
	assert.Equal(t, 60.0, speed)

	economy, ok := manager.Values().Value("FUEL_ECONOMY")
	assert.True(t, ok)
	assert.Greater(t, economy, 0.0)
}

func TestRefreshValuesSkipsDisabledParameters(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "SPEED"), []byte("60"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "RPM"), []byte("2000"), 0o644))

	store := testSettings(t)
	store.SaveObdParameterEnabled("RPM", false)
	manager := NewManager(&FileAdapter{Path: dir}, store, testObdConfig(nil))
	defer manager.Close()
	manager.refreshWatchers()

	// WHEN
	manager.RefreshValues()

	// THEN
	_, ok := manager.Values().Value("RPM")
	assert.False(t, ok)
	_, ok = manager.Values().Value("SPEED")
	assert.True(t, ok)
}

func TestAvailablePortsFollowGlobs(t *testing.T) {
	// GIVEN: two fake device nodes
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "rfcomm0"), []byte(""), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "ttyUSB0"), []byte(""), 0o644))

	store := testSettings(t)
	config := testObdConfig([]string{
		filepath.Join(dir, "rfcomm*"),
		filepath.Join(dir, "ttyUSB*"),
	})
	manager := NewManager(&FileAdapter{Path: dir}, store, config)
	defer manager.Close()

	// WHEN
	ports := manager.AvailablePorts()

	// THEN
	assert.Equal(t, []string{
		filepath.Join(dir, "rfcomm0"),
		filepath.Join(dir, "ttyUSB0"),
	}, ports)
}

func TestCheckDevicePresence(t *testing.T) {
	// GIVEN: the configured port does not exist
	store := testSettings(t)
	manager := NewManager(&FileAdapter{Path: t.TempDir()}, store, testObdConfig(nil))
	defer manager.Close()

	var presence []bool
	manager.OnPresenceChange(func(present bool) {
		presence = append(presence, present)
	})

	// WHEN
	present := manager.CheckDevicePresence()

	// THEN
	assert.False(t, present)
	assert.Equal(t, []bool{false}, presence)
}

// unresponsiveAdapter blocks in Connect until released, simulating a
// dead serial device.
type unresponsiveAdapter struct {
	release chan struct{}
}

func (a *unresponsiveAdapter) Connect(port string, fastMode bool) error {
	<-a.release
	return nil
}

func (a *unresponsiveAdapter) Status() (AdapterStatus, error) {
	return StatusNotConnected, nil
}

func (a *unresponsiveAdapter) Query(parameter string) (float64, error) {
	return 0, nil
}

func (a *unresponsiveAdapter) Close() error {
	return nil
}

func TestConnectionAttemptTimesOut(t *testing.T) {
	// GIVEN: an existing port and an adapter that never answers
	dir := t.TempDir()
	port := filepath.Join(dir, "rfcomm0")
	assert.NoError(t, os.WriteFile(port, []byte(""), 0o644))

	store := testSettings(t)
	store.SaveObdAdapterPort(port)

	config := testObdConfig(nil)
	config.ConnectionTimeout = 50 * time.Millisecond

	adapter := &unresponsiveAdapter{release: make(chan struct{})}
	manager := NewManager(adapter, store, config)
	defer manager.Close()
	defer close(adapter.release)

	// WHEN
	manager.startConnection()

	// THEN: the attempt is aborted after the configured timeout
	assert.Eventually(t, func() bool {
		state, detail, _ := manager.ConnectionStatus()
		return state == StateError && strings.Contains(detail, "timed out")
	}, time.Second, 10*time.Millisecond)
	assert.False(t, manager.IsConnected())
	assert.False(t, manager.connecting())
}

func TestReconnectAttemptsAreCounted(t *testing.T) {
	// GIVEN: the configured port does not exist
	store := testSettings(t)
	store.SaveObdAdapterPort(filepath.Join(t.TempDir(), "missing"))
	manager := NewManager(&FileAdapter{Path: t.TempDir()}, store, testObdConfig(nil))
	defer manager.Close()
	assert.Equal(t, 0, manager.ReconnectAttempts())

	// WHEN
	manager.Reconnect()
	manager.Reconnect()

	// THEN
	assert.Equal(t, 2, manager.ReconnectAttempts())
}

func TestConnectionStatusStartsIdle(t *testing.T) {
	// GIVEN
	store := testSettings(t)
	manager := NewManager(&FileAdapter{Path: t.TempDir()}, store, testObdConfig(nil))
	defer manager.Close()

	// THEN
	state, _, progress := manager.ConnectionStatus()
	assert.Equal(t, StateNotConnected, state)
	assert.Equal(t, 0, progress)
	assert.False(t, manager.IsConnected())
}
