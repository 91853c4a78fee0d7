package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/adudhe01/runroom/internal/domain"
)

// Provider endpoints and OAuth settings.
const (
	DefaultBaseURL = "https://www.strava.com"

	authorizePath  = "/oauth/authorize"
	tokenPath      = "/oauth/token"
	activitiesPath = "/api/v3/athlete/activities"

	// OAuthScope grants read access to all activities.
	OAuthScope = "read,activity:read_all"

	defaultHTTPTimeout = 30 * time.Second
)

// TokenPair is an access/refresh token pair with its expiry.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Client talks to the Strava OAuth and activity endpoints.
type Client interface {
	// AuthorizeURL builds the provider authorize URL carrying the given
	// opaque state through the OAuth round trip.
	AuthorizeURL(state string) string

	// ExchangeCode trades an authorization code for a token pair.
	ExchangeCode(ctx context.Context, code string) (*TokenPair, error)

	// Refresh trades a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// ListActivities fetches one page of the athlete's activities, newest
	// first.
	ListActivities(ctx context.Context, accessToken string, page, perPage int) ([]domain.Activity, error)
}

type httpClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	baseURL      string
	http         *http.Client
}

// NewClient creates a Client against the production Strava API.
func NewClient(clientID, clientSecret, redirectURI string) Client {
	return NewClientWithBaseURL(clientID, clientSecret, redirectURI, DefaultBaseURL)
}

// NewClientWithBaseURL creates a Client against a custom base URL. Used by
// tests to point at a local server.
func NewClientWithBaseURL(clientID, clientSecret, redirectURI, baseURL string) Client {
	return &httpClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		baseURL:      baseURL,
		http:         &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (c *httpClient) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("response_type", "code")
	params.Set("redirect_uri", c.redirectURI)
	params.Set("scope", OAuthScope)
	params.Set("state", state)
	return c.baseURL + authorizePath + "?" + params.Encode()
}

// tokenResponse is the provider's token endpoint payload. ExpiresAt is a
// unix timestamp.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

func (c *httpClient) ExchangeCode(ctx context.Context, code string) (*TokenPair, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	return c.requestToken(ctx, form)
}

func (c *httpClient) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	return c.requestToken(ctx, form)
}

func (c *httpClient) requestToken(ctx context.Context, form url.Values) (*TokenPair, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build token request: %v", domain.ErrProviderAuthFailure, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: token request failed: %v", domain.ErrProviderAuthFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: token endpoint returned %d: %s", domain.ErrProviderAuthFailure, resp.StatusCode, body)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("%w: failed to decode token response: %v", domain.ErrProviderAuthFailure, err)
	}

	return &TokenPair{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    time.Unix(tr.ExpiresAt, 0),
	}, nil
}

func (c *httpClient) ListActivities(ctx context.Context, accessToken string, page, perPage int) ([]domain.Activity, error) {
	endpoint := c.baseURL + activitiesPath +
		"?per_page=" + strconv.Itoa(perPage) +
		"&page=" + strconv.Itoa(page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build activities request: %v", domain.ErrProviderSyncFailure, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: activities request failed: %v", domain.ErrProviderSyncFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: activities endpoint returned %d: %s", domain.ErrProviderSyncFailure, resp.StatusCode, body)
	}

	var activities []domain.Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("%w: failed to decode activities: %v", domain.ErrProviderSyncFailure, err)
	}

	return activities, nil
}
