package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/octave-ivi/octave/internal/settings"
)

const tokenUrl = "https://accounts.spotify.com/api/token"

// RefreshTokenSource exchanges a long-lived refresh token for short-lived
// access tokens, caching them until shortly before expiry. The initial
// authorization that produced the refresh token happens outside this
// process.
type RefreshTokenSource struct {
	store        *settings.Store
	refreshToken string
	http         *http.Client
	tokenUrl     string

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewRefreshTokenSource(store *settings.Store, refreshToken string) *RefreshTokenSource {
	return &RefreshTokenSource{
		store:        store,
		refreshToken: refreshToken,
		http:         &http.Client{Timeout: requestTimeout},
		tokenUrl:     tokenUrl,
	}
}

func (s *RefreshTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// refresh a minute early so in-flight requests don't expire mid-call
	if s.accessToken != "" && time.Now().Before(s.expiresAt.Add(-time.Minute)) {
		return s.accessToken, nil
	}

	clientId, clientSecret := s.store.SpotifyCredentials()
	if clientId == "" || clientSecret == "" {
		return "", fmt.Errorf("no spotify credentials configured")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", s.refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenUrl, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(clientId + ":" + clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token refresh failed with %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("malformed token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token response contains no access token")
	}

	s.accessToken = payload.AccessToken
	s.expiresAt = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	return s.accessToken, nil
}
