package configuration

import (
	"fmt"

	"github.com/octave-ivi/octave/internal/util"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if err := validateObd(config); err != nil {
		return err
	}
	if err := validateMedia(config); err != nil {
		return err
	}
	if err := validateApi(config); err != nil {
		return err
	}

	if config.Obd.Adapter.Cmd != nil && len(path) > 0 {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func validateObd(config *Configuration) error {
	adapter := config.Obd.Adapter

	subConfigs := 0
	if adapter.File != nil {
		subConfigs++
	}
	if adapter.Cmd != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("obd adapter: only one adapter type can be configured, use one of: file | cmd")
	}

	if adapter.File != nil && len(adapter.File.Path) <= 0 {
		return fmt.Errorf("obd adapter: file adapter is missing a path")
	}
	if adapter.Cmd != nil && len(adapter.Cmd.Exec) <= 0 {
		return fmt.Errorf("obd adapter: cmd adapter is missing an exec")
	}

	if config.Obd.PollingRate <= 0 {
		return fmt.Errorf("obd: pollingRate must be > 0")
	}
	if config.Obd.RollingWindowSize <= 0 {
		return fmt.Errorf("obd: rollingWindowSize must be > 0")
	}
	if len(config.Obd.PortGlobs) <= 0 {
		return fmt.Errorf("obd: portGlobs must not be empty")
	}

	return nil
}

func validateMedia(config *Configuration) error {
	if len(config.Media.Extensions) <= 0 {
		return fmt.Errorf("media: extensions must not be empty")
	}
	for _, ext := range config.Media.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("media: invalid extension '%s', expected a leading dot", ext)
		}
	}
	return nil
}

func validateApi(config *Configuration) error {
	if config.Api.Enabled && (config.Api.Port <= 0 || config.Api.Port >= 65535) {
		return fmt.Errorf("api: invalid port %d", config.Api.Port)
	}
	if config.Statistics.Enabled && (config.Statistics.Port <= 0 || config.Statistics.Port >= 65535) {
		return fmt.Errorf("statistics: invalid port %d", config.Statistics.Port)
	}
	return nil
}
