package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/octave-ivi/octave/cmd/global"
	"github.com/octave-ivi/octave/internal/configuration"
	"github.com/octave-ivi/octave/internal/ui"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect OBD adapter ports",
	Long:  `Scans the configured port patterns and prints every candidate adapter port`,
	Run: func(cmd *cobra.Command, args []string) {
		configuration.LoadConfig()

		ports := scanPorts(configuration.CurrentConfig.Obd.PortGlobs)
		if len(ports) == 0 {
			ui.Printfln("No adapter ports found.")
			return
		}

		var rows [][]string
		for _, port := range ports {
			present := "yes"
			if _, err := os.Stat(port); err != nil {
				present = "no"
			}
			rows = append(rows, []string{port, present})
		}

		tab := table.Table{
			Headers: []string{"Port", "Present"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			ui.Fatal("Error printing port table: %v", tableErr)
		}
		ui.Printfln(buf.String())
	},
}

func scanPorts(globs []string) []string {
	var ports []string
	for _, pattern := range globs {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			ui.Warning("Invalid port glob '%s': %v", pattern, err)
			continue
		}
		ports = append(ports, matches...)
	}
	sort.Strings(ports)
	return ports
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
