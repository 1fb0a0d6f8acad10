package internal

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octave-ivi/octave/internal/api"
	"github.com/octave-ivi/octave/internal/clock"
	"github.com/octave-ivi/octave/internal/configuration"
	"github.com/octave-ivi/octave/internal/dashboard"
	"github.com/octave-ivi/octave/internal/equalizer"
	"github.com/octave-ivi/octave/internal/media"
	"github.com/octave-ivi/octave/internal/obd"
	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/settings"
	"github.com/octave-ivi/octave/internal/spacing"
	"github.com/octave-ivi/octave/internal/spotify"
	"github.com/octave-ivi/octave/internal/statistics"
	"github.com/octave-ivi/octave/internal/themes"
	"github.com/octave-ivi/octave/internal/ui"
)

// Backend holds the fully wired object graph of the daemon.
type Backend struct {
	Persistence persistence.Persistence
	Settings    *settings.Store
	Themes      *themes.Registry
	Spacing     *spacing.Registry
	ObdManager  *obd.Manager
	Library     *media.Library
	Player      *media.Player
	Watcher     *media.Watcher
	Clock       *clock.Clock
	Dashboard   *dashboard.Dashboard
	Equalizer   *equalizer.Manager
	Spotify     *spotify.Client
}

func RunDaemon() {
	backend := InitializeObjects()

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			g.Add(func() error {
				port := configuration.CurrentConfig.Statistics.Port
				if port <= 0 || port >= 65535 {
					port = 9000
				}
				endpoint := "/metrics"
				addr := fmt.Sprintf(":%d", port)
				handler := promhttp.Handler()
				http.Handle(endpoint, handler)
				server := &http.Server{Addr: addr, Handler: handler}
				if err := server.ListenAndServe(); err != nil {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
				}

				<-ctx.Done()
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				return server.Shutdown(timeoutCtx)
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Api.Enabled
		if enabled {
			// === REST API
			restService := api.CreateRestService(
				backend.Settings,
				backend.Themes,
				backend.Spacing,
				backend.ObdManager,
				backend.Library,
				backend.Player,
				backend.Dashboard,
				backend.Equalizer,
				backend.Spotify,
			)

			g.Add(func() error {
				apiConfig := configuration.CurrentConfig.Api
				addr := fmt.Sprintf("%s:%d", apiConfig.Host, apiConfig.Port)
				if err := restService.Start(addr); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start REST api endpoint (%s)", err.Error())
				}

				<-ctx.Done()
				ui.Info("Stopping REST api...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				return restService.Shutdown(timeoutCtx)
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping REST api: " + err.Error())
				} else {
					ui.Info("REST api stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Profiling.Enabled
		if enabled {
			// === pprof endpoint
			g.Add(func() error {
				mux := http.NewServeMux()
				mux.HandleFunc("/debug/pprof/", pprof.Index)
				mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
				mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
				mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
				mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

				profilingConfig := configuration.CurrentConfig.Profiling
				addr := fmt.Sprintf("%s:%d", profilingConfig.Host, profilingConfig.Port)
				server := &http.Server{Addr: addr, Handler: mux}
				ui.Info("Starting profiling webserver on %s...", addr)
				if err := server.ListenAndServe(); err != nil {
					ui.Error("Cannot start profiling endpoint (%s)", err.Error())
				}

				<-ctx.Done()
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				return server.Shutdown(timeoutCtx)
			}, func(err error) {
				ui.Info("Profiling webserver stopped.")
			})
		}
	}
	{
		// === OBD connection manager
		g.Add(func() error {
			err := backend.ObdManager.Run(ctx)
			ui.Info("OBD manager stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error running OBD manager: %v", err)
			}
		})
	}
	{
		// === clock
		g.Add(func() error {
			err := backend.Clock.Run(ctx)
			ui.Info("Clock stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error running clock: %v", err)
			}
		})
	}
	{
		// === media player
		g.Add(func() error {
			err := backend.Player.Run(ctx)
			ui.Info("Media player stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error running media player: %v", err)
			}
		})
	}
	{
		enabled := configuration.CurrentConfig.Media.Watch
		if enabled {
			// === media folder watcher
			g.Add(func() error {
				err := backend.Watcher.Run(ctx)
				ui.Info("Media watcher stopped.")
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error running media watcher: %v", err)
				}
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		backend.Close()
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		backend.Close()
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects builds the full object graph from the current
// configuration.
func InitializeObjects() *Backend {
	if err := obd.ValidateParameters(); err != nil {
		ui.Fatal("Invalid parameter registry: %v", err)
	}

	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to open database at %s: %v", configuration.CurrentConfig.DbPath, err)
	}

	store := settings.NewStore(pers)

	themeRegistry := themes.NewRegistry(pers)
	if err := themeRegistry.Apply(store.ThemeSetting()); err != nil {
		ui.Warning("Unable to apply configured theme: %v", err)
	}

	spacingRegistry := spacing.NewRegistry(store)

	adapter, err := obd.NewAdapter(configuration.CurrentConfig.Obd.Adapter)
	if err != nil {
		ui.Fatal("Unable to create OBD adapter: %v", err)
	}
	obdManager := obd.NewManager(adapter, store, configuration.CurrentConfig.Obd)

	library := media.NewLibrary(store, pers, configuration.CurrentConfig.Media)
	if _, err := library.Scan(); err != nil {
		ui.Warning("Initial media scan failed: %v", err)
	}

	player := media.NewPlayer(store, library)
	player.RestoreLastSession()

	watcher := media.NewWatcher(store, library, configuration.CurrentConfig.Media)

	wallClock := clock.NewClock(store)
	board := dashboard.NewDashboard(store)
	eq := equalizer.NewManager(pers)

	tokens := spotify.NewRefreshTokenSource(store, store.SpotifyRefreshToken())
	spotifyClient := spotify.NewClient(store, tokens)

	statistics.Register(statistics.NewObdCollector(obdManager))
	statistics.Register(statistics.NewMediaCollector(library, player))

	return &Backend{
		Persistence: pers,
		Settings:    store,
		Themes:      themeRegistry,
		Spacing:     spacingRegistry,
		ObdManager:  obdManager,
		Library:     library,
		Player:      player,
		Watcher:     watcher,
		Clock:       wallClock,
		Dashboard:   board,
		Equalizer:   eq,
		Spotify:     spotifyClient,
	}
}

// Close flushes pending writes and releases resources.
func (b *Backend) Close() {
	b.Dashboard.Close()
	b.ObdManager.Close()
	b.Settings.Close()
}
