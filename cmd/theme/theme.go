package theme

import (
	"github.com/spf13/cobra"

	"github.com/octave-ivi/octave/internal/configuration"
	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/themes"
	"github.com/octave-ivi/octave/internal/ui"
)

var Command = &cobra.Command{
	Use:              "theme",
	Short:            "Theme related commands",
	Long:             ``,
	TraverseChildren: true,
}

func loadRegistry() *themes.Registry {
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
	return themes.NewRegistry(pers)
}
