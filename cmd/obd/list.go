package obd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/octave-ivi/octave/cmd/global"
	"github.com/octave-ivi/octave/internal/obd"
	"github.com/octave-ivi/octave/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all known telemetry parameters",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		store := loadSettings()
		defer store.Close()

		var rows [][]string
		for _, p := range obd.Parameters() {
			enabled := "no"
			if store.ObdParameterEnabled(p.Id, true) {
				enabled = "yes"
			}

			kind := "queried"
			if p.Derived {
				kind = "derived from " + strings.Join(p.DependsOn, ", ")
			}

			rows = append(rows, []string{
				p.Id,
				p.Title,
				p.Unit,
				fmt.Sprintf("%.0f .. %.0f", p.Min, p.Max),
				enabled,
				kind,
			})
		}

		tab := table.Table{
			Headers: []string{"ID", "Title", "Unit", "Range", "Enabled", "Kind"},
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
			ui.Fatal("Error printing parameter table: %v", tableErr)
		}
		ui.Printfln(buf.String())
	},
}

func init() {
	Command.AddCommand(listCmd)
}
