package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/settings"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token(ctx context.Context) (string, error) {
	return s.token, nil
}

func testStore(t *testing.T) *settings.Store {
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, pers.Init())
	store := settings.NewStore(pers)
	t.Cleanup(store.Close)
	return store
}

func testClient(t *testing.T, handler http.Handler) (*Client, *settings.Store) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := testStore(t)
	client := NewClient(store, staticTokens{token: "test-token"})
	client.baseUrl = server.URL
	return client, store
}

func TestRefreshDevices(t *testing.T) {
	// GIVEN
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/player/devices", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"devices":[{"id":"abc","name":"Head Unit","type":"Computer","is_active":true,"volume_percent":60}]}`))
	}))

	// WHEN
	devices, err := client.RefreshDevices(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Len(t, devices, 1)
	assert.Equal(t, "Head Unit", devices[0].Name)
	assert.True(t, devices[0].IsActive)
	assert.Equal(t, devices, client.Devices())
}

func TestConnectWithoutCredentials(t *testing.T) {
	// GIVEN
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	// WHEN
	err := client.Connect(context.Background())

	// THEN
	assert.Error(t, err)
	assert.Equal(t, StateError, client.State())
}

func TestConnectFetchesDevices(t *testing.T) {
	// GIVEN
	client, store := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"devices":[]}`))
	}))
	store.SaveSpotifyCredentials("client-id", "client-secret")

	var states []ConnectionState
	client.OnStateChange(func(state ConnectionState) {
		states = append(states, state)
	})

	// WHEN
	err := client.Connect(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []ConnectionState{StateConnecting, StateConnected}, states)
}

func TestSetActiveDevice(t *testing.T) {
	// GIVEN
	var gotMethod, gotPath string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	// WHEN
	err := client.SetActiveDevice(context.Background(), "abc")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/me/player", gotPath)
}

func TestApiErrorIsReported(t *testing.T) {
	// GIVEN
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"status":401,"message":"invalid token"}}`))
	}))

	var errorMessages []string
	client.OnError(func(message string) {
		errorMessages = append(errorMessages, message)
	})

	// WHEN
	err := client.SetActiveDevice(context.Background(), "abc")

	// THEN
	assert.Error(t, err)
	assert.NotEmpty(t, errorMessages)
	assert.Equal(t, errorMessages[0], client.LastError())
}
