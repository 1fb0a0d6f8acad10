package statistics

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/octave-ivi/octave/internal/configuration"
	"github.com/octave-ivi/octave/internal/obd"
	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/settings"
)

func testManager(t *testing.T) *obd.Manager {
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, pers.Init())
	store := settings.NewStore(pers)
	t.Cleanup(store.Close)
	store.SaveObdAdapterPort(filepath.Join(t.TempDir(), "missing"))

	manager := obd.NewManager(&obd.FileAdapter{Path: t.TempDir()}, store, configuration.ObdConfig{
		PollingRate:       100 * time.Millisecond,
		RollingWindowSize: 5,
		ScanInterval:      time.Second,
		MonitorInterval:   time.Second,
		ConnectionTimeout: time.Second,
	})
	t.Cleanup(manager.Close)
	return manager
}

func TestObdCollectorExportsReconnectAttempts(t *testing.T) {
	// GIVEN: a manager that failed one connection attempt
	manager := testManager(t)
	manager.Reconnect()

	collector := NewObdCollector(manager)

	// THEN
	expected := `
# HELP octave_obd_reconnect_attempts_total Total number of connection attempts since startup
# TYPE octave_obd_reconnect_attempts_total counter
octave_obd_reconnect_attempts_total 1
`
	assert.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"octave_obd_reconnect_attempts_total"))
}

func TestObdCollectorExportsValues(t *testing.T) {
	// GIVEN
	manager := testManager(t)
	manager.Values().Set("RPM", 2000)

	collector := NewObdCollector(manager)

	// THEN
	expected := `
# HELP octave_obd_value Current raw value of the parameter
# TYPE octave_obd_value gauge
octave_obd_value{id="RPM"} 2000
`
	assert.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"octave_obd_value"))
}
