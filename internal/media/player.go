package media

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/octave-ivi/octave/internal/settings"
	"github.com/octave-ivi/octave/internal/ui"
	"github.com/octave-ivi/octave/internal/util"
)

type PlayerState string

const (
	PlayerStopped PlayerState = "stopped"
	PlayerPlaying PlayerState = "playing"
	PlayerPaused  PlayerState = "paused"
)

// restartThresholdMs: Previous restarts the current track instead of
// jumping back when playback is already past this position.
const restartThresholdMs = 3000

// Player tracks the local playback queue and position. The audio output
// itself lives outside this process, listeners mirror the state into it.
type Player struct {
	store   *settings.Store
	library *Library

	mu               sync.Mutex
	state            PlayerState
	playlist         string
	queue            []Track
	index            int
	positionMs       int
	shuffled         bool
	muted            bool
	volumeBeforeMute int

	listenerMu        sync.RWMutex
	trackListeners    []func(Track)
	stateListeners    []func(PlayerState)
	positionListeners []func(int)
}

func NewPlayer(store *settings.Store, library *Library) *Player {
	return &Player{
		store:   store,
		library: library,
		state:   PlayerStopped,
	}
}

func (p *Player) OnTrackChange(fn func(Track)) {
	p.listenerMu.Lock()
	defer p.listenerMu.Unlock()
	p.trackListeners = append(p.trackListeners, fn)
}

func (p *Player) OnStateChange(fn func(PlayerState)) {
	p.listenerMu.Lock()
	defer p.listenerMu.Unlock()
	p.stateListeners = append(p.stateListeners, fn)
}

func (p *Player) OnPositionChange(fn func(int)) {
	p.listenerMu.Lock()
	defer p.listenerMu.Unlock()
	p.positionListeners = append(p.positionListeners, fn)
}

// Run advances the playback position while playing and persists the
// session on shutdown.
func (p *Player) Run(ctx context.Context) error {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			p.saveSession()
			return nil
		case <-tick.C:
			p.mu.Lock()
			playing := p.state == PlayerPlaying
			if playing {
				p.positionMs += 1000
			}
			position := p.positionMs
			p.mu.Unlock()

			if playing {
				p.emitPosition(position)
			}
		}
	}
}

// RestoreLastSession resumes the previously played track and position.
// Playback only starts when auto play is enabled.
func (p *Player) RestoreLastSession() {
	filename := p.store.LastPlayedSong()
	if filename == "" {
		return
	}

	playlist := p.store.LastPlayedPlaylist()
	if playlist == "" {
		playlist = RootPlaylist
	}
	if err := p.loadQueue(playlist, filename); err != nil {
		ui.Debug("Unable to restore last session: %v", err)
		return
	}

	p.mu.Lock()
	p.positionMs = p.store.LastPlayedPosition()
	if p.store.AutoPlayOnStartup() {
		p.state = PlayerPlaying
	} else {
		p.state = PlayerPaused
	}
	state := p.state
	track := p.queue[p.index]
	p.mu.Unlock()

	ui.Info("Restored playback of '%s' at %dms", track.Filename, p.store.LastPlayedPosition())
	p.emitTrack(track)
	p.emitState(state)
}

// PlayPlaylist starts the given playlist from its first track.
func (p *Player) PlayPlaylist(name string) error {
	if err := p.loadQueue(name, ""); err != nil {
		return err
	}
	p.startCurrent()
	return nil
}

// PlayTrack starts a specific track within its playlist.
func (p *Player) PlayTrack(playlist string, filename string) error {
	if err := p.loadQueue(playlist, filename); err != nil {
		return err
	}
	p.startCurrent()
	return nil
}

func (p *Player) loadQueue(playlistName string, filename string) error {
	playlist, ok := p.library.Playlist(playlistName)
	if !ok {
		return fmt.Errorf("unknown playlist: %s", playlistName)
	}
	if len(playlist.Tracks) == 0 {
		return fmt.Errorf("playlist is empty: %s", playlistName)
	}

	index := 0
	if filename != "" {
		found := false
		for i, track := range playlist.Tracks {
			if track.Filename == filename {
				index = i
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("track '%s' not in playlist '%s'", filename, playlistName)
		}
	}

	p.mu.Lock()
	p.playlist = playlistName
	p.queue = append([]Track{}, playlist.Tracks...)
	p.index = index
	p.positionMs = 0
	if p.shuffled {
		p.shuffleQueueLocked()
	}
	p.mu.Unlock()
	return nil
}

func (p *Player) startCurrent() {
	p.mu.Lock()
	p.state = PlayerPlaying
	p.positionMs = 0
	track := p.queue[p.index]
	p.mu.Unlock()

	p.emitTrack(track)
	p.emitState(PlayerPlaying)
}

// Play resumes a paused track.
func (p *Player) Play() {
	p.mu.Lock()
	if len(p.queue) == 0 {
		p.mu.Unlock()
		return
	}
	p.state = PlayerPlaying
	p.mu.Unlock()
	p.emitState(PlayerPlaying)
}

// Pause halts playback and persists the session so it survives a power
// cut.
func (p *Player) Pause() {
	p.mu.Lock()
	if p.state != PlayerPlaying {
		p.mu.Unlock()
		return
	}
	p.state = PlayerPaused
	p.mu.Unlock()

	p.emitState(PlayerPaused)
	p.saveSession()
}

// TogglePlayback flips between playing and paused.
func (p *Player) TogglePlayback() {
	p.mu.Lock()
	state := p.state
	p.mu.Unlock()

	if state == PlayerPlaying {
		p.Pause()
	} else {
		p.Play()
	}
}

// Next advances to the next track, wrapping at the end of the queue.
func (p *Player) Next() {
	p.step(1)
}

// Previous restarts the current track when it is already well underway,
// otherwise it jumps back one track, wrapping at the start.
func (p *Player) Previous() {
	p.mu.Lock()
	restart := p.positionMs > restartThresholdMs
	p.mu.Unlock()

	if restart {
		p.Seek(0)
		return
	}
	p.step(-1)
}

func (p *Player) step(delta int) {
	p.mu.Lock()
	if len(p.queue) == 0 {
		p.mu.Unlock()
		return
	}
	p.index = (p.index + delta + len(p.queue)) % len(p.queue)
	p.positionMs = 0
	p.state = PlayerPlaying
	track := p.queue[p.index]
	p.mu.Unlock()

	p.emitTrack(track)
	p.emitState(PlayerPlaying)
	p.emitPosition(0)
}

// Seek moves the playback position within the current track.
func (p *Player) Seek(positionMs int) {
	p.mu.Lock()
	p.positionMs = positionMs
	p.mu.Unlock()
	p.emitPosition(positionMs)
}

// ToggleShuffle reshuffles the queue keeping the current track first, or
// restores playlist order.
func (p *Player) ToggleShuffle() bool {
	p.mu.Lock()
	p.shuffled = !p.shuffled
	shuffled := p.shuffled

	if len(p.queue) > 0 {
		if shuffled {
			p.shuffleQueueLocked()
		} else {
			p.restoreOrderLocked()
		}
	}
	p.mu.Unlock()
	return shuffled
}

// shuffleQueueLocked shuffles the queue so the current track stays at the
// front and playback is uninterrupted.
func (p *Player) shuffleQueueLocked() {
	current := p.queue[p.index]
	rest := make([]Track, 0, len(p.queue)-1)
	for i, track := range p.queue {
		if i != p.index {
			rest = append(rest, track)
		}
	}
	rand.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
	p.queue = append([]Track{current}, rest...)
	p.index = 0
}

func (p *Player) restoreOrderLocked() {
	current := p.queue[p.index]
	playlist, ok := p.library.Playlist(p.playlist)
	if !ok {
		return
	}
	p.queue = append([]Track{}, playlist.Tracks...)
	for i, track := range p.queue {
		if track.Filename == current.Filename {
			p.index = i
			break
		}
	}
}

// Shuffled reports whether shuffle mode is active.
func (p *Player) Shuffled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shuffled
}

// SetVolume applies a new volume percentage, clearing mute.
func (p *Player) SetVolume(volume int) {
	volume = util.Coerce(volume, 0, 100)
	p.mu.Lock()
	p.muted = false
	p.mu.Unlock()
	p.store.SetCurrentVolume(volume)
}

// ToggleMute silences playback remembering the previous volume.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	p.muted = !p.muted
	muted := p.muted
	if muted {
		p.volumeBeforeMute = p.store.CurrentVolume()
	}
	restore := p.volumeBeforeMute
	p.mu.Unlock()

	if muted {
		p.store.SetCurrentVolume(0)
	} else {
		p.store.SetCurrentVolume(restore)
	}
	return muted
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// CurrentTrack returns the active track, if any.
func (p *Player) CurrentTrack() (Track, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return Track{}, false
	}
	return p.queue[p.index], true
}

func (p *Player) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) PositionMs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionMs
}

func (p *Player) saveSession() {
	p.mu.Lock()
	if len(p.queue) == 0 {
		p.mu.Unlock()
		return
	}
	track := p.queue[p.index]
	position := p.positionMs
	playlist := p.playlist
	p.mu.Unlock()

	p.store.SavePlaybackState(track.Filename, position, playlist)
}

func (p *Player) emitTrack(track Track) {
	p.listenerMu.RLock()
	subscribed := append([]func(Track){}, p.trackListeners...)
	p.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(track)
	}
}

func (p *Player) emitState(state PlayerState) {
	p.listenerMu.RLock()
	subscribed := append([]func(PlayerState){}, p.stateListeners...)
	p.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(state)
	}
}

func (p *Player) emitPosition(position int) {
	p.listenerMu.RLock()
	subscribed := append([]func(int){}, p.positionListeners...)
	p.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(position)
	}
}
