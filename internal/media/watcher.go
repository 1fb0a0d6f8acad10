package media

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/octave-ivi/octave/internal/configuration"
	"github.com/octave-ivi/octave/internal/settings"
	"github.com/octave-ivi/octave/internal/ui"
	"github.com/octave-ivi/octave/internal/util"
)

// Watcher rescans the library when files under the media folder change.
// Rescans are debounced so bulk copies only trigger a single scan.
type Watcher struct {
	store   *settings.Store
	library *Library
	config  configuration.MediaConfig

	rescan *util.Debouncer
}

func NewWatcher(store *settings.Store, library *Library, config configuration.MediaConfig) *Watcher {
	w := &Watcher{
		store:   store,
		library: library,
		config:  config,
	}
	w.rescan = util.NewDebouncer(config.RescanDebounce, func() {
		if _, err := library.Scan(); err != nil {
			ui.Warning("Media rescan failed: %v", err)
		}
	})
	return w
}

// Run watches the media folder until ctx is cancelled. A folder change
// in the settings restarts the watch on the new root.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	defer w.rescan.Stop()

	watchRoot := func() {
		for _, path := range watcher.WatchList() {
			_ = watcher.Remove(path)
		}
		root := w.store.MediaFolder()
		if root == "" {
			return
		}
		if err := watcher.Add(root); err != nil {
			ui.Warning("Unable to watch media folder %s: %v", root, err)
			return
		}
		ui.Debug("Watching media folder %s", root)
	}

	watchRoot()
	w.store.Subscribe(settings.KeyMediaFolder, watchRoot)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) != 0 {
				ui.Debug("Media folder changed (%s), scheduling rescan", event)
				w.rescan.Trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			ui.Warning("Media watcher error: %v", err)
		}
	}
}
