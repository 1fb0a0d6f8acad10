package media

import (
	"bytes"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/octave-ivi/octave/cmd/global"
	"github.com/octave-ivi/octave/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all playlists and their tracks",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		store, library := loadLibrary()
		defer store.Close()

		if _, err := library.Scan(); err != nil {
			ui.FatalWithoutStacktrace("Scan failed: %v", err)
		}

		for idx, playlist := range library.Playlists() {
			if idx > 0 {
				ui.Printfln("")
			}
			ui.Printfln("> %s", playlist.Name)

			var rows [][]string
			for _, track := range playlist.Tracks {
				rows = append(rows, []string{track.Artist, track.Title, track.Filename})
			}

			tab := table.Table{
				Headers: []string{"Artist", "Title", "File"},
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
				ui.Fatal("Error printing track table: %v", tableErr)
			}
			ui.Printfln(buf.String())
		}
	},
}

func init() {
	Command.AddCommand(listCmd)
}
