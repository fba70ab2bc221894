// Package garmin is the authenticated Garmin Connect client: credential
// login with a persisted token, activity history reads, and structured
// workout writes onto the calendar.
package garmin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/calebmartin/raceplan/cache"
)

const (
	DefaultBaseURL = "https://connectapi.garmin.com"
	tokenFileName  = "token.json"

	// Tokens expiring inside this window are refreshed eagerly.
	refreshLeeway = 2 * time.Minute
)

// ErrUnauthorized indicates the credentials were rejected or the session can
// no longer be refreshed. Fatal: the run aborts before any sync.
var ErrUnauthorized = errors.New("garmin: unauthorized")

// Client is an authenticated Garmin Connect API client.
type Client struct {
	http      *http.Client
	baseURL   *url.URL
	email     string
	password  string
	tokenPath string
	token     *oauth2.Token

	cache   cache.Cache
	ttl     time.Duration
	noCache bool

	log zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}

func WithCache(cc cache.Cache, ttl time.Duration) Option {
	return func(c *Client) { c.cache, c.ttl = cc, ttl }
}

func WithTokenPath(path string) Option {
	return func(c *Client) { c.tokenPath = path }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

func WithNoCache(noCache bool) Option {
	return func(c *Client) { c.noCache = noCache }
}

// New creates a Client for the given account credentials.
func New(email, password string, opts ...Option) (*Client, error) {
	if email == "" || password == "" {
		return nil, errors.New("garmin: email and password required")
	}

	u, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		baseURL:  u,
		email:    email,
		password: password,
		ttl:      24 * time.Hour,
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}

	if c.tokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		c.tokenPath = filepath.Join(home, ".raceplan", tokenFileName)
	}
	return c, nil
}

// Authenticate ensures the client holds a valid access token: cached token if
// still fresh, refresh if possible, full credential login otherwise.
func (c *Client) Authenticate(ctx context.Context) error {
	if tok := c.loadToken(); tok != nil {
		if time.Until(tok.Expiry) > refreshLeeway {
			c.token = tok
			c.log.Debug().Msg("using cached token")
			return nil
		}
		if tok.RefreshToken != "" {
			if err := c.refresh(ctx, tok.RefreshToken); err == nil {
				c.log.Debug().Msg("refreshed token")
				return nil
			}
			// Refresh failed; fall back to a fresh login.
		}
	}
	return c.login(ctx)
}

func (c *Client) login(ctx context.Context) error {
	form := url.Values{
		"grant_type": {"password"},
		"username":   {c.email},
		"password":   {c.password},
	}
	return c.tokenRequest(ctx, form)
}

func (c *Client) refresh(ctx context.Context, refreshToken string) error {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	return c.tokenRequest(ctx, form)
}

func (c *Client) tokenRequest(ctx context.Context, form url.Values) error {
	endpoint := c.baseURL.JoinPath("/oauth/token").String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("garmin: token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("garmin: token request: %s: %s", resp.Status, string(body))
	}

	var wire struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		ExpiresIn    int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return fmt.Errorf("garmin: decode token: %w", err)
	}

	c.token = &oauth2.Token{
		AccessToken:  wire.AccessToken,
		RefreshToken: wire.RefreshToken,
		TokenType:    wire.TokenType,
		Expiry:       time.Now().Add(time.Duration(wire.ExpiresIn) * time.Second),
	}
	return c.saveToken()
}

func (c *Client) loadToken() *oauth2.Token {
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		return nil
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil
	}
	return &tok
}

func (c *Client) saveToken() error {
	if err := os.MkdirAll(filepath.Dir(c.tokenPath), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c.token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.tokenPath, data, 0o600)
}

// getJSON performs a cached, authenticated GET. Fresh cache entries are used
// directly; stale ones are revalidated with If-None-Match.
func (c *Client) getJSON(ctx context.Context, path string, params map[string]string, out any) error {
	return c.get(ctx, path, params, out, true)
}

// getJSONUncached bypasses the response cache entirely.
func (c *Client) getJSONUncached(ctx context.Context, path string, params map[string]string, out any) error {
	return c.get(ctx, path, params, out, false)
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any, cacheable bool) error {
	if c.token == nil {
		return fmt.Errorf("garmin: not authenticated")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath(path).String(), nil)
	if err != nil {
		return err
	}
	q := req.URL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)
	req.Header.Set("Accept", "application/json")

	var key string
	if cacheable && c.cache != nil && !c.noCache {
		key = c.cache.KeyFor(path, params)
		if entry, fresh := c.cache.Read(key, c.ttl); fresh && len(entry.Body) > 0 {
			return json.Unmarshal(entry.Body, out)
		} else if entry != nil && entry.ETag != "" {
			req.Header.Set("If-None-Match", entry.ETag)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && key != "" {
		if entry, _ := c.cache.Read(key, 0); entry != nil {
			return json.Unmarshal(entry.Body, out)
		}
	}
	body, err := c.checkResponse(resp, path)
	if err != nil {
		return err
	}

	if key != "" {
		_ = c.cache.Write(key, &cache.Entry{
			ETag: resp.Header.Get("ETag"),
			Body: json.RawMessage(body),
		})
	}
	return json.Unmarshal(body, out)
}

// sendJSON performs an authenticated write (POST/PUT) with a JSON body.
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	if c.token == nil {
		return fmt.Errorf("garmin: not authenticated")
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := c.checkResponse(resp, path)
	if err != nil {
		return err
	}
	if out != nil && len(respBody) > 0 {
		return json.Unmarshal(respBody, out)
	}
	return nil
}

func (c *Client) checkResponse(resp *http.Response, path string) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("garmin: %s %s -> %s: %s", resp.Request.Method, path, resp.Status, string(body))
	}
	return body, nil
}
