package statistics

import (
	"github.com/octave-ivi/octave/internal/media"
	"github.com/prometheus/client_golang/prometheus"
)

const mediaSubsystem = "media"

type MediaCollector struct {
	library *media.Library
	player  *media.Player

	trackCount    *prometheus.Desc
	playlistCount *prometheus.Desc
	artistCount   *prometheus.Desc
	playing       *prometheus.Desc
	positionMs    *prometheus.Desc
}

func NewMediaCollector(library *media.Library, player *media.Player) *MediaCollector {
	return &MediaCollector{
		library: library,
		player:  player,
		trackCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, mediaSubsystem, "tracks"),
			"Number of tracks in the library",
			nil, nil,
		),
		playlistCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, mediaSubsystem, "playlists"),
			"Number of playlists in the library",
			nil, nil,
		),
		artistCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, mediaSubsystem, "artists"),
			"Number of distinct artists in the library",
			nil, nil,
		),
		playing: prometheus.NewDesc(prometheus.BuildFQName(namespace, mediaSubsystem, "playing"),
			"Whether playback is currently active",
			nil, nil,
		),
		positionMs: prometheus.NewDesc(prometheus.BuildFQName(namespace, mediaSubsystem, "position_ms"),
			"Playback position within the current track",
			nil, nil,
		),
	}
}

func (collector *MediaCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.trackCount
	ch <- collector.playlistCount
	ch <- collector.artistCount
	ch <- collector.playing
	ch <- collector.positionMs
}

func (collector *MediaCollector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.library.Stats()
	ch <- prometheus.MustNewConstMetric(collector.trackCount, prometheus.GaugeValue, float64(stats.TrackCount))
	ch <- prometheus.MustNewConstMetric(collector.playlistCount, prometheus.GaugeValue, float64(stats.PlaylistCount))
	ch <- prometheus.MustNewConstMetric(collector.artistCount, prometheus.GaugeValue, float64(stats.ArtistCount))

	playing := 0.0
	if collector.player.State() == media.PlayerPlaying {
		playing = 1.0
	}
	ch <- prometheus.MustNewConstMetric(collector.playing, prometheus.GaugeValue, playing)
	ch <- prometheus.MustNewConstMetric(collector.positionMs, prometheus.GaugeValue, float64(collector.player.PositionMs()))
}
