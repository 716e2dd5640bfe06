package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/focussync/internal/common"
	"github.com/dmitrijs2005/focussync/internal/model"
)

// refreshLeeway is how close to expiry the access token may get before a
// sync proactively rotates the pair. The server treats an expired bearer as
// anonymous rather than rejecting it, so waiting for a 401 would silently
// downgrade the sync instead of failing it.
const refreshLeeway = 30 * time.Second

type HTTPClient struct {
	endpointURL string
	http        *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func NewHTTPClient(endpointURL string) *HTTPClient {
	return &HTTPClient{
		endpointURL: endpointURL,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

// SetTokens replaces the stored pair, e.g. after restoring a session from the
// local database. Empty strings clear the session.
func (c *HTTPClient) SetTokens(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.refreshToken = refreshToken
}

// Tokens returns the current pair so the caller can persist it.
func (c *HTTPClient) Tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) HasSession() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshToken != ""
}

type errorBody struct {
	Error string `json:"error"`
}

// post sends a JSON body and decodes a JSON response. A non-nil bearer token
// is attached as an Authorization header. Transport-level failures map to
// ErrUnavailable; HTTP error statuses map to the error taxonomy.
func (c *HTTPClient) post(ctx context.Context, path string, bearer string, in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthorized, eb.Error)
		case http.StatusConflict:
			return fmt.Errorf("%w: %s", ErrAlreadyExists, eb.Error)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", ErrBadRequest, eb.Error)
		default:
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, eb.Error)
		}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) Register(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password, "displayName": displayName}

	var res AuthResult
	if err := c.post(ctx, "/auth/register", "", body, &res); err != nil {
		return nil, err
	}
	c.storePair(res.Tokens)
	return &res, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var res AuthResult
	if err := c.post(ctx, "/auth/login", "", body, &res); err != nil {
		return nil, err
	}
	c.storePair(res.Tokens)
	return &res, nil
}

// Refresh rotates the refresh token. On any failure the stored pair is
// cleared: a rejected refresh token means the session is gone for good and
// retrying with the same token would only be replayed against the server.
func (c *HTTPClient) Refresh(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()

	if refresh == "" {
		return ErrUnauthorized
	}

	var res AuthResult
	err := c.post(ctx, "/auth/refresh", "", map[string]string{"refreshToken": refresh}, &res)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			c.SetTokens("", "")
		}
		return err
	}
	c.storePair(res.Tokens)
	return nil
}

func (c *HTTPClient) Sync(ctx context.Context, tasks []model.TaskRecord, timers []model.TimerRecord) (*SyncResult, error) {
	bearer, err := c.freshAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]any{"tasks": tasks, "timers": timers}

	var res SyncResult
	if err := c.post(ctx, "/sync", bearer, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) storePair(pair *model.TokenPair) {
	if pair == nil {
		return
	}
	c.SetTokens(pair.AccessToken, pair.RefreshToken)
}

// freshAccessToken returns the bearer for a sync call, refreshing the pair
// first if the access token is missing, unparsable, or about to expire.
// No session at all is fine: sync then runs anonymously with an empty bearer.
func (c *HTTPClient) freshAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	access, refresh := c.accessToken, c.refreshToken
	c.mu.Unlock()

	if refresh == "" {
		return "", nil
	}
	if access != "" && !aboutToExpire(access) {
		return access, nil
	}

	if err := c.Refresh(ctx); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, nil
}

// aboutToExpire inspects the exp claim without verifying the signature; only
// the server can verify, the client just needs the deadline.
func aboutToExpire(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return time.Until(exp.Time) < refreshLeeway
}
