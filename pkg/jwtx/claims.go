package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the validity window for issued tokens.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Identity is the claim set captured at login. It is a snapshot: later
// changes to the user record are not reflected until re-login.
type Identity struct {
	UserID   string
	Email    string
	Role     string
	MasjidID string // empty when the user administers no mosque yet
}

// Claims is the wire form of Identity inside a signed token.
type Claims struct {
	jwt.RegisteredClaims

	Email    string `json:"email"`
	Role     string `json:"role"`
	MasjidID string `json:"masjid_id,omitempty"`
}

// Identity converts the decoded claims back to the issue-time snapshot.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:   c.Subject,
		Email:    c.Email,
		Role:     c.Role,
		MasjidID: c.MasjidID,
	}
}
