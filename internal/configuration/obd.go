package configuration

import "time"

type ObdConfig struct {
	Adapter AdapterConfig `json:"adapter"`

	// Time interval between value polls of watched parameters.
	PollingRate time.Duration `json:"pollingRate"`
	// Number of samples in the smoothing window of each parameter.
	RollingWindowSize int `json:"rollingWindowSize"`
	// Time interval between port scans while disconnected.
	ScanInterval time.Duration `json:"scanInterval"`
	// Time interval between connection health checks while connected.
	MonitorInterval time.Duration `json:"monitorInterval"`
	// Maximum time to wait for the adapter to report its status.
	ConnectionTimeout time.Duration `json:"connectionTimeout"`

	// Glob patterns used to discover candidate adapter ports.
	PortGlobs []string `json:"portGlobs"`
}

type AdapterConfig struct {
	File *FileAdapterConfig `json:"file,omitempty"`
	Cmd  *CmdAdapterConfig  `json:"cmd,omitempty"`
}

// FileAdapterConfig reads parameter values from a directory containing
// one file per parameter id, as exported by an external OBD bridge.
type FileAdapterConfig struct {
	Path string `json:"path"`
}

// CmdAdapterConfig reads parameter values by executing the given binary
// with the parameter id appended to its argument list.
type CmdAdapterConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}
