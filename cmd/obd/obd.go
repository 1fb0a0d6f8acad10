package obd

import (
	"github.com/spf13/cobra"

	"github.com/octave-ivi/octave/internal/configuration"
	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/settings"
	"github.com/octave-ivi/octave/internal/ui"
)

var Command = &cobra.Command{
	Use:              "obd",
	Short:            "Vehicle telemetry related commands",
	Long:             ``,
	TraverseChildren: true,
}

func loadSettings() *settings.Store {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(configPath); err != nil {
		ui.Fatal(err.Error())
	}

	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to open database at %s: %v", configuration.CurrentConfig.DbPath, err)
	}
	return settings.NewStore(pers)
}
