package murf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// expiryMargin is how far ahead of the declared expiry we stop trusting a
// cached token.
const expiryMargin = 60 * time.Second

// TokenCache holds the most recently issued bearer token and its absolute
// expiry. One instance per client; refresh is serialized so concurrent
// callers can't stampede the auth endpoint.
type TokenCache struct {
	mu        sync.Mutex
	token     string
	expiresAt int64 // epoch millis, as declared by upstream

	now func() time.Time
}

func NewTokenCache() *TokenCache {
	return &TokenCache{now: time.Now}
}

// ExpiresAt returns the cached expiry in epoch millis, 0 when no token is
// cached.
func (t *TokenCache) ExpiresAt() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expiresAt
}

// TokenExpiresAt exposes the cached expiry for the auth diagnostic endpoint.
func (c *Client) TokenExpiresAt() int64 { return c.tokens.ExpiresAt() }

type tokenResponse struct {
	Token               string `json:"token"`
	ExpiryInEpochMillis int64  `json:"expiryInEpochMillis"`
}

// AuthToken returns a valid bearer token for the upstream API, reusing the
// cached one while it is more than a minute from expiry and fetching a fresh
// one otherwise. On failure the cache is left untouched.
func (c *Client) AuthToken(ctx context.Context) (string, error) {
	if !c.Configured() {
		return "", &Error{Kind: KindConfig, Message: "Murf API key not configured"}
	}

	t := c.tokens
	t.mu.Lock()
	defer t.mu.Unlock()

	nowMillis := t.now().UnixMilli()
	if t.token != "" && t.expiresAt > nowMillis+expiryMargin.Milliseconds() {
		return t.token, nil
	}

	ctx, cancel := context.WithTimeout(ctx, quickTimeout)
	defer cancel()
	hr, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, nil)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: "building auth request: " + err.Error()}
	}
	hr.Header.Set("api-key", c.apiKey)
	hr.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(hr)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: "Error generating auth token: " + err.Error()}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: "Error generating auth token: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &Error{
			Kind:    KindUpstream,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("Failed to generate auth token: %d", resp.StatusCode),
			Details: decodeDetails(raw),
		}
	}

	var tr tokenResponse
	if err := json.Unmarshal(raw, &tr); err != nil || tr.Token == "" {
		return "", &Error{Kind: KindContract, Message: "Token not found in auth response", Details: string(raw)}
	}

	t.token = tr.Token
	t.expiresAt = tr.ExpiryInEpochMillis
	return t.token, nil
}
