package twitch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"streamthumb/internal/core/domain"
)

const (
	tokenURL   = "https://id.twitch.tv/oauth2/token"
	streamsURL = "https://api.twitch.tv/helix/streams"
)

// Client talks to the Twitch Helix API. It implements both
// ports.TokenProvider and ports.StreamLookup: the streams query needs the
// same client identity that the token exchange uses, so the two live on
// one token-aware client. Client is stateless apart from its HTTP client
// and is safe for use by concurrent invocations.
type Client struct {
	creds      domain.Credentials
	client     *http.Client
	tokenURL   string
	streamsURL string
}

// New creates a Helix client for the given app credentials.
func New(creds domain.Credentials) *Client {
	return &Client{
		creds: creds,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokenURL:   tokenURL,
		streamsURL: streamsURL,
	}
}

// AcquireToken exchanges the app credentials for an app access token via
// the client-credentials grant. No retry, no caching; every pipeline
// invocation re-authenticates.
func (c *Client) AcquireToken(ctx context.Context, creds domain.Credentials) (domain.AccessToken, error) {
	form := url.Values{}
	form.Set("client_id", creds.ClientID)
	form.Set("client_secret", creds.ClientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.AccessToken{}, domain.Failf(domain.ReasonAuth, "failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.AccessToken{}, domain.Failf(domain.ReasonAuth, "token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.AccessToken{}, domain.Failf(domain.ReasonAuth, "token endpoint returned status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	var token domain.AccessToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return domain.AccessToken{}, domain.Failf(domain.ReasonAuth, "failed to decode token response: %w", err)
	}
	if token.Token == "" {
		return domain.AccessToken{}, domain.Failf(domain.ReasonAuth, "token response missing access_token")
	}

	return token, nil
}

// LiveStreams queries the Helix streams endpoint for the channel login,
// pre-filtered server-side to live streams. Only the first page of results
// is considered. An empty result is returned as-is; the orchestrator is
// responsible for treating it as a terminal condition.
func (c *Client) LiveStreams(ctx context.Context, login string, token domain.AccessToken) ([]domain.Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.streamsURL, nil)
	if err != nil {
		return nil, domain.Failf(domain.ReasonLookup, "failed to create streams request: %w", err)
	}

	q := req.URL.Query()
	q.Set("user_login", login)
	q.Set("type", "live")
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Client-Id", c.creds.ClientID)
	req.Header.Set("Authorization", "Bearer "+token.Token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.Failf(domain.ReasonLookup, "streams query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.Failf(domain.ReasonLookup, "streams endpoint returned status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	var result struct {
		Data []domain.Stream `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, domain.Failf(domain.ReasonLookup, "failed to decode streams response: %w", err)
	}

	return result.Data, nil
}

// readErrorBody returns a short excerpt of an error response body for
// inclusion in failure messages.
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(body) == 0 {
		return "<no body>"
	}
	return string(body)
}
