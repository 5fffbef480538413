// Package masjidsdk is a typed Go client for the masjid directory service.
// Unauthenticated calls go through Client; a successful login yields a
// Session that attaches the bearer token and can be cached on disk between
// runs.
package masjidsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrUnauthorized means the server rejected the session's token. Callers
// should drop any cached session and log in again.
var ErrUnauthorized = errors.New("masjidsdk: unauthorized")

// APIError is a non-2xx response carrying the server's error string.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("masjidsdk: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates and returns a Session holding the bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "", &out)
	if err != nil {
		return nil, err
	}
	return newSession(c, out.User, out.Token), nil
}

// Register creates a plain user account. The new account is not logged in.
func (c *Client) Register(ctx context.Context, email, password, name string) (User, error) {
	var out registerResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, "", &out)
	return out.User, err
}

// RegisterMosque submits the combined mosque plus admin registration.
func (c *Client) RegisterMosque(ctx context.Context, p RegisterMosqueParams) (Mosque, error) {
	var out mosqueResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/mosques", p, "", &out)
	return out.Mosque, err
}

// SearchMosques lists approved mosques matching the filters. Empty strings
// mean no constraint.
func (c *Client) SearchMosques(ctx context.Context, name, city string) ([]Mosque, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	if city != "" {
		q.Set("city", city)
	}

	path := "/api/mosques"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out mosqueListResponse
	err := c.doJSON(ctx, http.MethodGet, path, nil, "", &out)
	return out.Mosques, err
}

// GetMosque fetches one mosque with today's schedule and upcoming events.
func (c *Client) GetMosque(ctx context.Context, id string) (MosqueDetail, error) {
	var out mosqueDetailResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/mosques/"+url.PathEscape(id), nil, "", &out)
	return out.MosqueDetail, err
}

// GetSalahTimes fetches the schedule for a mosque on a given day. A zero
// date means today.
func (c *Client) GetSalahTimes(ctx context.Context, masjidID string, date time.Time) (SalahTimes, error) {
	q := url.Values{"masjidId": {masjidID}}
	if !date.IsZero() {
		q.Set("date", date.UTC().Format("2006-01-02"))
	}

	var out salahTimesResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/salah-times?"+q.Encode(), nil, "", &out)
	return out.SalahTimes, err
}

// ListEvents lists events for a mosque.
func (c *Client) ListEvents(ctx context.Context, masjidID string, upcoming bool, limit int) ([]Event, error) {
	q := url.Values{"masjidId": {masjidID}}
	if upcoming {
		q.Set("upcoming", "true")
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out eventListResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/events?"+q.Encode(), nil, "", &out)
	return out.Events, err
}

// Liveness checks if the service is up.
func (c *Client) Liveness(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/livez", nil, "", &out)
	return out, err
}

// Readiness checks whether the service and its store are healthy.
func (c *Client) Readiness(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, "", &out)
	return out, err
}

// doJSON sends an optional JSON body and decodes the JSON response into out.
// A non-empty token is attached as a bearer header. Non-2xx responses decode
// the error envelope; 401 maps to ErrUnauthorized.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, token string, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized {
			return ErrUnauthorized
		}

		var apiErr errorResponse
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
