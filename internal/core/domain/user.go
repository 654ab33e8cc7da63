package domain

import (
	"time"
)

// User represents an authenticated FuelTrakr user.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

type Role string

const (
	// RoleAdmin reviews all entries, manages users, and exports reports.
	RoleAdmin Role = "admin"
	// RolePorter creates fuel entries for vehicles on the lot.
	RolePorter Role = "porter"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RolePorter
}

// UserRecord is the indexed form of a user as stored in the search store.
type UserRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
