package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileExists(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	file := filepath.Join(dir, "device")
	assert.NoError(t, os.WriteFile(file, []byte(""), 0o644))

	// THEN
	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
	// directories do not count
	assert.False(t, FileExists(dir))
}

func TestWriteStringToFileAtomicReplacesContent(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "out.txt")
	assert.NoError(t, WriteStringToFileAtomic("first", path))

	// WHEN
	assert.NoError(t, WriteStringToFileAtomic("second", path))

	// THEN
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
