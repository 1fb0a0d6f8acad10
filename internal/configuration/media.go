package configuration

import "time"

type MediaConfig struct {
	// File extensions considered part of the library.
	Extensions []string `json:"extensions"`
	// Watch the library root for changes and rescan automatically.
	Watch bool `json:"watch"`
	// Quiet period after a filesystem event before a rescan is started.
	RescanDebounce time.Duration `json:"rescanDebounce"`
}
