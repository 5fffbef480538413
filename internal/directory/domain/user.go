package domain

import "time"

// Role determines which admin surfaces a user may manage.
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleAdmin       Role = "admin"
	RoleMasjidAdmin Role = "masjid_admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleMasjidAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"` // stored lowercase, unique
	Name         string    `json:"name" bson:"name"`
	PasswordHash string    `json:"-" bson:"password_hash"` // bcrypt encoded, never serialized
	Role         Role      `json:"role" bson:"role"`
	MasjidID     string    `json:"masjidId,omitempty" bson:"masjid_id,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// Sanitized returns a copy safe to embed in API responses. The password hash
// is already excluded from JSON, but handlers return this copy so a future
// sensitive field needs a single change here.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
