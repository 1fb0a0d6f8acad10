package obd

import (
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/octave-ivi/octave/internal/configuration"
	"github.com/octave-ivi/octave/internal/obd"
	"github.com/octave-ivi/octave/internal/ui"
)

var (
	parameterId string
	sampleCount int
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Record a parameter and print it as a graph",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		store := loadSettings()
		defer store.Close()

		p, ok := obd.GetParameter(parameterId)
		if !ok {
			ui.FatalWithoutStacktrace("Unknown parameter: %s", parameterId)
		}
		if p.Derived {
			ui.FatalWithoutStacktrace("Parameter %s is derived and cannot be polled directly", parameterId)
		}

		adapter, err := obd.NewAdapter(configuration.CurrentConfig.Obd.Adapter)
		if err != nil {
			ui.Fatal("Unable to create OBD adapter: %v", err)
		}
		defer adapter.Close()

		port := store.ObdAdapterPort()
		if err := adapter.Connect(port, store.ObdFastMode()); err != nil {
			ui.FatalWithoutStacktrace("Unable to connect on %s: %v", port, err)
		}

		pollingRate := configuration.CurrentConfig.Obd.PollingRate
		ui.Info("Recording %d samples of %s at %s intervals...", sampleCount, p.Id, pollingRate)

		var values []float64
		for i := 0; i < sampleCount; i++ {
			value, err := adapter.Query(p.Id)
			if err != nil {
				ui.Warning("Error reading %s: %v", p.Id, err)
			} else {
				values = append(values, value)
			}
			time.Sleep(pollingRate)
		}

		if len(values) == 0 {
			ui.Printfln("No values recorded.")
			return
		}

		caption := p.Title
		if p.Unit != "" {
			caption += " (" + p.Unit + ")"
		}
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln("%s", graph)
	},
}

func init() {
	graphCmd.Flags().StringVarP(
		&parameterId,
		"id", "i",
		"",
		"Parameter ID to record",
	)
	_ = graphCmd.MarkFlagRequired("id")
	graphCmd.Flags().IntVarP(
		&sampleCount,
		"samples", "n",
		60,
		"Number of samples to record",
	)

	Command.AddCommand(graphCmd)
}
