package domain

import (
	"time"
)

// Role is the closed set of roles an identity can carry.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ParseRole converts a claim value to a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleViewer:
		return Role(s), true
	}
	return "", false
}

// Actor is the verified identity behind a request.
type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}

// User mirrors identities issued by the external auth provider. Rows are
// upserted from token claims; the role column is informational only.
type User struct {
	ID        string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Email     string    `gorm:"column:email;type:varchar(255);index" json:"email"`
	Role      Role      `gorm:"column:role;type:varchar(20)" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// AuthorInfo is the author shape embedded in responses
type AuthorInfo struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}
