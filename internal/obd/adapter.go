package obd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/octave-ivi/octave/internal/configuration"
)

// AdapterStatus mirrors the handshake stages of an OBD interface: the
// adapter itself can be reachable while the vehicle bus is still silent.
type AdapterStatus int

const (
	StatusNotConnected AdapterStatus = iota
	// StatusAdapterConnected means the adapter answered but no vehicle is on the bus.
	StatusAdapterConnected
	StatusCarConnected
)

func (s AdapterStatus) String() string {
	switch s {
	case StatusAdapterConnected:
		return "Adapter Connected"
	case StatusCarConnected:
		return "Car Connected"
	default:
		return "Not Connected"
	}
}

// Adapter is the boundary to the actual OBD interface. The serial ELM327
// protocol implementation lives outside this repository; the adapters
// here read values prepared by an external bridge.
type Adapter interface {
	// Connect prepares the adapter for queries against the given port.
	Connect(port string, fastMode bool) error

	// Status returns the current handshake stage.
	Status() (AdapterStatus, error)

	// Query reads the current raw value of a parameter.
	Query(parameter string) (float64, error)

	Close() error
}

func NewAdapter(config configuration.AdapterConfig) (Adapter, error) {
	if config.File != nil {
		return &FileAdapter{
			Path: config.File.Path,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdAdapter{
			Exec: config.Cmd.Exec,
			Args: config.Cmd.Args,
		}, nil
	}

	return nil, fmt.Errorf("no matching adapter type in configuration")
}

// FileAdapter reads parameter values from a directory containing one
// file per parameter id. A "status" file holding "car", "adapter" or
// "none" reports the handshake stage; without one the vehicle is
// considered connected as long as the directory exists.
type FileAdapter struct {
	Path string
}

func (a *FileAdapter) Connect(port string, fastMode bool) error {
	info, err := os.Stat(a.Path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("adapter path is not a directory: %s", a.Path)
	}
	return nil
}

func (a *FileAdapter) Status() (AdapterStatus, error) {
	if _, err := os.Stat(a.Path); err != nil {
		return StatusNotConnected, err
	}

	data, err := os.ReadFile(filepath.Join(a.Path, "status"))
	if err != nil {
		// no status file, the bridge only exports values while a vehicle is present
		return StatusCarConnected, nil
	}
	return parseStatusToken(strings.TrimSpace(string(data)))
}

func (a *FileAdapter) Query(parameter string) (float64, error) {
	data, err := os.ReadFile(filepath.Join(a.Path, parameter))
	if err != nil {
		return 0, err
	}
	return parseFloat(string(data))
}

func (a *FileAdapter) Close() error {
	return nil
}

// CmdAdapter shells out to an external binary: "<exec> <args...> status"
// for the handshake stage and "<exec> <args...> get <PARAM>" for values.
type CmdAdapter struct {
	Exec string
	Args []string
}

func (a *CmdAdapter) Connect(port string, fastMode bool) error {
	args := append(append([]string{}, a.Args...), "connect", port)
	if fastMode {
		args = append(args, "--fast")
	}
	cmd := exec.Command(a.Exec, args...)
	return cmd.Run()
}

func (a *CmdAdapter) Status() (AdapterStatus, error) {
	args := append(append([]string{}, a.Args...), "status")
	output, err := exec.Command(a.Exec, args...).Output()
	if err != nil {
		return StatusNotConnected, err
	}
	return parseStatusToken(strings.TrimSpace(string(output)))
}

func (a *CmdAdapter) Query(parameter string) (float64, error) {
	args := append(append([]string{}, a.Args...), "get", parameter)
	output, err := exec.Command(a.Exec, args...).Output()
	if err != nil {
		return 0, err
	}
	return parseFloat(string(output))
}

func (a *CmdAdapter) Close() error {
	args := append(append([]string{}, a.Args...), "close")
	return exec.Command(a.Exec, args...).Run()
}

func parseStatusToken(token string) (AdapterStatus, error) {
	switch strings.ToLower(token) {
	case "car":
		return StatusCarConnected, nil
	case "adapter":
		return StatusAdapterConnected, nil
	case "none", "":
		return StatusNotConnected, nil
	default:
		return StatusNotConnected, fmt.Errorf("unknown adapter status: %s", token)
	}
}

func parseFloat(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if len(text) <= 0 {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(text, 64)
}
