package obd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileAdapterQuery(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "RPM"), []byte("2450.5\n"), 0o644))
	adapter := &FileAdapter{Path: dir}
	assert.NoError(t, adapter.Connect("/dev/rfcomm0", false))

	// WHEN
	value, err := adapter.Query("RPM")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 2450.5, value)
}

func TestFileAdapterQueryMissingParameter(t *testing.T) {
	// GIVEN
	adapter := &FileAdapter{Path: t.TempDir()}

	// WHEN
	_, err := adapter.Query("SPEED")

	// THEN
	assert.Error(t, err)
}

func TestFileAdapterStatusWithoutStatusFile(t *testing.T) {
	// GIVEN
	adapter := &FileAdapter{Path: t.TempDir()}

	// WHEN
	status, err := adapter.Status()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, StatusCarConnected, status)
}

func TestFileAdapterStatusTokens(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	adapter := &FileAdapter{Path: dir}

	cases := map[string]AdapterStatus{
		"car":     StatusCarConnected,
		"adapter": StatusAdapterConnected,
		"none":    StatusNotConnected,
	}

	for token, expected := range cases {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "status"), []byte(token+"\n"), 0o644))

		// WHEN
		status, err := adapter.Status()

		// THEN
		assert.NoError(t, err)
		assert.Equal(t, expected, status)
	}
}

func TestFileAdapterConnectRejectsFile(t *testing.T) {
	// GIVEN: a path that is a regular file, not a directory
	path := filepath.Join(t.TempDir(), "not-a-dir")
	assert.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	adapter := &FileAdapter{Path: path}

	// WHEN
	err := adapter.Connect("/dev/rfcomm0", false)

	// THEN
	assert.Error(t, err)
}

func TestParseStatusToken(t *testing.T) {
	status, err := parseStatusToken("CAR")
	assert.NoError(t, err)
	assert.Equal(t, StatusCarConnected, status)

	_, err = parseStatusToken("garbage")
	assert.Error(t, err)
}
