package configuration

import (
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/octave-ivi/octave/internal/ui"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	Obd        ObdConfig        `json:"obd"`
	Media      MediaConfig      `json:"media"`
	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	Profiling  ProfilingConfig  `json:"profiling"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("octave")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/octave/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/octave/octave.db")

	viper.SetDefault("obd.pollingRate", 500*time.Millisecond)
	viper.SetDefault("obd.rollingWindowSize", 10)
	viper.SetDefault("obd.scanInterval", 10*time.Second)
	viper.SetDefault("obd.monitorInterval", 2*time.Second)
	viper.SetDefault("obd.connectionTimeout", 10*time.Second)
	viper.SetDefault("obd.portGlobs", []string{
		"/dev/rfcomm*",
		"/dev/ttyUSB*",
		"/dev/ttyACM*",
		"/dev/ttyS*",
	})

	viper.SetDefault("media.extensions", []string{".mp3", ".wav", ".flac", ".ogg", ".m4a"})
	viper.SetDefault("media.watch", true)
	viper.SetDefault("media.rescanDebounce", 2*time.Second)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9449)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9450)

	viper.SetDefault("profiling.enabled", false)
	viper.SetDefault("profiling.host", "localhost")
	viper.SetDefault("profiling.port", 6060)
}

// DetectAndReadConfigFile detects the path of the first existing config file
// and reads it into viper.
func DetectAndReadConfigFile() string {
	readConfigFile()
	return GetFilePath()
}

// GetFilePath this is only populated _after_ readConfigFile()
func GetFilePath() string {
	return viper.ConfigFileUsed()
}

func readConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// ignore, the defaults cover a missing config file
			return
		}
		// config file was found but could not be read
		ui.Fatal("Error reading config file, %s", err)
	}
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(&CurrentConfig)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
