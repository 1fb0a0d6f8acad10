package media

import (
	"github.com/spf13/cobra"

	"github.com/octave-ivi/octave/internal/configuration"
	"github.com/octave-ivi/octave/internal/media"
	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/settings"
	"github.com/octave-ivi/octave/internal/ui"
)

var Command = &cobra.Command{
	Use:              "media",
	Short:            "Media library related commands",
	Long:             ``,
	TraverseChildren: true,
}

func loadLibrary() (*settings.Store, *media.Library) {
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

	store := settings.NewStore(pers)
	library := media.NewLibrary(store, pers, configuration.CurrentConfig.Media)
	return store, library
}
