package setting

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/octave-ivi/octave/internal/ui"
	"github.com/octave-ivi/octave/internal/util"
)

var setCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a single setting",
	Long:  `Supported keys: deviceName, theme, mediaFolder, obdAdapterPort, fuelTankCapacity, clockSize, uiScale, volume`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store := loadStore()
		defer store.Close()

		key, value := args[0], args[1]
		switch key {
		case "deviceName":
			store.SaveDeviceName(value)
		case "theme":
			store.SaveThemeSetting(value)
		case "mediaFolder":
			store.SaveMediaFolder(value)
		case "obdAdapterPort":
			store.SaveObdAdapterPort(value)
		case "fuelTankCapacity":
			capacity, err := strconv.ParseFloat(value, 64)
			if err != nil {
				ui.FatalWithoutStacktrace("Invalid number: %s", value)
			}
			store.SaveFuelTankCapacity(capacity)
		case "clockSize":
			size, err := strconv.Atoi(value)
			if err != nil {
				ui.FatalWithoutStacktrace("Invalid number: %s", value)
			}
			store.SaveClockSize(size)
		case "uiScale":
			scale, err := strconv.ParseFloat(value, 64)
			if err != nil {
				ui.FatalWithoutStacktrace("Invalid number: %s", value)
			}
			store.SaveUiScale(scale)
		case "volume":
			volume, err := strconv.Atoi(value)
			if err != nil {
				ui.FatalWithoutStacktrace("Invalid number: %s", value)
			}
			store.SetCurrentVolume(util.Coerce(volume, 0, 100))
		default:
			ui.FatalWithoutStacktrace("Unsupported key: %s", key)
		}

		ui.Success("Saved %s", key)
	},
}

func init() {
	Command.AddCommand(setCmd)
}
