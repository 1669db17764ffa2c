// Package api implements the HTTP client for the judge service,
// including transparent access-token renewal.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// refreshCookie is the name of the HttpOnly cookie carrying the renewal
// credential. The server sets it on login; the client only replays it.
const refreshCookie = "oj_refresh_token"

// CredentialStore persists the session credential between processes.
// No component outside this package reads or writes tokens directly.
type CredentialStore interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(access, refresh string) error
	ClearTokens() error
}

// Error is a structured failure reported by the judge API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("judge returned HTTP %d", e.StatusCode)
}

// Client talks to the judge API. All requests attach the current access
// token; a 401 triggers at most one silent renewal followed by a single
// replay of the original request.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialStore
	logger  *zap.Logger
}

// NewClient creates a Client for the given base URL. The cookie jar
// holds the refresh cookie between renewal calls within one process.
func NewClient(baseURL string, timeout time.Duration, creds CredentialStore, logger *zap.Logger) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		creds:  creds,
		logger: logger,
	}
}

// do sends one JSON request and decodes the response into out (unless
// out is nil). On a 401 it renews the access token once and replays.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body, c.creds.AccessToken())
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		access, rerr := c.renew(ctx)
		if rerr != nil {
			// Renewal failed: the session is over. Clear local
			// credential state and surface the original failure.
			_ = c.creds.ClearTokens()
			c.logger.Warn("token renewal failed", zap.Error(rerr))
			return &Error{StatusCode: http.StatusUnauthorized, Message: "session expired, please log in again"}
		}
		resp, err = c.send(ctx, method, path, body, access)
		if err != nil {
			return err
		}
	}

	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// send issues a single request with the given bearer token attached.
func (c *Client) send(ctx context.Context, method, path string, body any, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("request", zap.String("method", method), zap.String("path", path))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// renew calls the refresh endpoint and stores the new access token.
// The renewal credential rides the cookie jar, not the request body;
// when the jar is cold (fresh process) the persisted refresh token is
// replayed as the cookie.
func (c *Client) renew(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token/refresh/", strings.NewReader("{}"))
	if err != nil {
		return "", fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if !c.jarHasRefreshCookie(req.URL) {
		if rt := c.creds.RefreshToken(); rt != "" {
			req.AddCookie(&http.Cookie{Name: refreshCookie, Value: rt})
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeError(resp)
	}

	var pair TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}

	refresh := pair.Refresh
	if refresh == "" {
		refresh = c.creds.RefreshToken()
	}
	if err := c.creds.SetTokens(pair.Access, refresh); err != nil {
		return "", fmt.Errorf("store renewed tokens: %w", err)
	}
	c.logger.Debug("access token renewed")
	return pair.Access, nil
}

func (c *Client) jarHasRefreshCookie(u *url.URL) bool {
	for _, ck := range c.http.Jar.Cookies(u) {
		if ck.Name == refreshCookie {
			return true
		}
	}
	return false
}

// decodeError extracts a human-readable message from a non-2xx body.
// The judge is inconsistent about the field name, so several are tried.
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
		Err     string `json:"error"`
		Output  string `json:"output"`
		Detail  string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		switch {
		case body.Output != "":
			apiErr.Message = body.Output
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Err != "":
			apiErr.Message = body.Err
		case body.Detail != "":
			apiErr.Message = body.Detail
		}
	}
	return apiErr
}

// drain discards and closes a response body so the connection can be
// reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
