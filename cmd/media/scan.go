package media

import (
	"github.com/spf13/cobra"

	"github.com/octave-ivi/octave/internal/ui"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the media library",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		store, library := loadLibrary()
		defer store.Close()

		stats, err := library.Scan()
		if err != nil {
			ui.FatalWithoutStacktrace("Scan failed: %v", err)
		}
		ui.Success("Found %d tracks by %d artists in %d playlists",
			stats.TrackCount, stats.ArtistCount, stats.PlaylistCount)
	},
}

func init() {
	Command.AddCommand(scanCmd)
}
