package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/octave-ivi/octave/internal/settings"
	"github.com/octave-ivi/octave/internal/ui"
)

const (
	apiBaseUrl     = "https://api.spotify.com/v1"
	requestTimeout = 10 * time.Second
)

// ConnectionState describes the Spotify Connect session.
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateConnected    ConnectionState = "connected"
	StateError        ConnectionState = "error"
)

// TokenSource supplies a valid access token for the Web API. Obtaining
// and refreshing tokens happens outside this package.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Device is one Spotify Connect playback target.
type Device struct {
	Id            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	IsActive      bool   `json:"is_active"`
	VolumePercent int    `json:"volume_percent"`
}

// Client talks to the Spotify Connect Web API for device control.
type Client struct {
	store   *settings.Store
	tokens  TokenSource
	http    *http.Client
	baseUrl string

	mu      sync.Mutex
	state   ConnectionState
	lastErr string
	devices []Device

	listenerMu     sync.RWMutex
	stateListeners []func(ConnectionState)
	errorListeners []func(string)
}

func NewClient(store *settings.Store, tokens TokenSource) *Client {
	return &Client{
		store:   store,
		tokens:  tokens,
		http:    &http.Client{Timeout: requestTimeout},
		baseUrl: apiBaseUrl,
		state:   StateDisconnected,
	}
}

func (c *Client) OnStateChange(fn func(ConnectionState)) {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	c.stateListeners = append(c.stateListeners, fn)
}

func (c *Client) OnError(fn func(string)) {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	c.errorListeners = append(c.errorListeners, fn)
}

func (c *Client) setState(state ConnectionState) {
	c.mu.Lock()
	changed := c.state != state
	c.state = state
	c.mu.Unlock()
	if !changed {
		return
	}

	c.listenerMu.RLock()
	subscribed := append([]func(ConnectionState){}, c.stateListeners...)
	c.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(state)
	}
}

func (c *Client) emitError(message string) {
	c.mu.Lock()
	c.lastErr = message
	c.mu.Unlock()

	c.listenerMu.RLock()
	subscribed := append([]func(string){}, c.errorListeners...)
	c.listenerMu.RUnlock()
	for _, fn := range subscribed {
		fn(message)
	}
}

func (c *Client) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Client) request(ctx context.Context, method string, path string, body string) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("no access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("spotify api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}

// Connect verifies credentials are present and fetches the device list.
func (c *Client) Connect(ctx context.Context) error {
	if !c.store.HasSpotifyCredentials() {
		err := fmt.Errorf("no spotify credentials configured")
		c.setState(StateError)
		c.emitError(err.Error())
		return err
	}

	c.setState(StateConnecting)
	if _, err := c.RefreshDevices(ctx); err != nil {
		c.setState(StateError)
		c.emitError(err.Error())
		return err
	}

	c.setState(StateConnected)
	return nil
}

// RefreshDevices fetches the available Spotify Connect devices.
func (c *Client) RefreshDevices(ctx context.Context) ([]Device, error) {
	data, err := c.request(ctx, http.MethodGet, "/me/player/devices", "")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Devices []Device `json:"devices"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("malformed device list: %w", err)
	}

	c.mu.Lock()
	c.devices = payload.Devices
	c.mu.Unlock()

	ui.Debug("Found %d Spotify Connect devices", len(payload.Devices))
	return payload.Devices, nil
}

// Devices returns the most recently fetched device list.
func (c *Client) Devices() []Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Device{}, c.devices...)
}

// SetActiveDevice transfers playback to the given device.
func (c *Client) SetActiveDevice(ctx context.Context, deviceId string) error {
	body, err := json.Marshal(map[string]interface{}{
		"device_ids": []string{deviceId},
		"play":       true,
	})
	if err != nil {
		return err
	}

	if _, err := c.request(ctx, http.MethodPut, "/me/player", string(body)); err != nil {
		c.emitError(err.Error())
		return err
	}
	ui.Info("Transferred Spotify playback to device %s", deviceId)
	return nil
}

// Disconnect drops the session state. Credentials stay untouched.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.devices = nil
	c.mu.Unlock()
	c.setState(StateDisconnected)
}
