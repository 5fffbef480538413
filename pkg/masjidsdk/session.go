package masjidsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// Session is an authenticated handle on the directory API. It carries the
// bearer token from login plus a snapshot of who logged in. The snapshot is
// a UI hint only; the server re-validates the token on every call.
type Session struct {
	client *Client

	User  User   `json:"user"`
	Token string `json:"token"`
}

func newSession(c *Client, user User, token string) *Session {
	return &Session{client: c, User: user, Token: token}
}

// UpdateMosque replaces a mosque's details. Requires ownership or a site
// admin role.
func (s *Session) UpdateMosque(ctx context.Context, m Mosque) (Mosque, error) {
	var out mosqueResponse
	err := s.client.doJSON(ctx, http.MethodPut, "/api/mosques/"+url.PathEscape(m.ID), m, s.Token, &out)
	return out.Mosque, err
}

// SetSalahTimes writes a day's prayer schedule for a mosque.
func (s *Session) SetSalahTimes(ctx context.Context, st SalahTimes) (SalahTimes, error) {
	var out salahTimesResponse
	err := s.client.doJSON(ctx, http.MethodPost, "/api/salah-times", st, s.Token, &out)
	return out.SalahTimes, err
}

// CreateEvent publishes a community event for a mosque.
func (s *Session) CreateEvent(ctx context.Context, e Event) (Event, error) {
	var out eventResponse
	err := s.client.doJSON(ctx, http.MethodPost, "/api/events", e, s.Token, &out)
	return out.Event, err
}

// SessionStore caches a session as a JSON file so a CLI run can reuse a
// previous login. Loading trusts the file's claim of who is logged in; the
// server remains the authority and an expired token simply surfaces
// ErrUnauthorized on the first call.
type SessionStore struct {
	Path string
}

// DefaultSessionStore places the cache under the user config directory.
func DefaultSessionStore() (*SessionStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return &SessionStore{Path: filepath.Join(dir, "masjidhub", "session.json")}, nil
}

// Save writes the session to disk, readable only by the owner.
func (st *SessionStore) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(st.Path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.WriteFile(st.Path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load reads a cached session and binds it to the client. Returns
// (nil, nil) when no session is cached.
func (st *SessionStore) Load(c *Client) (*Session, error) {
	raw, err := os.ReadFile(st.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Token == "" {
		return nil, nil
	}

	s.client = c
	return &s, nil
}

// Clear removes the cached session. Clearing an absent session is not an
// error.
func (st *SessionStore) Clear() error {
	if err := os.Remove(st.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
