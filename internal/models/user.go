package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles recognized by the role gate. Checks are plain set membership:
// ADMIN is never implied by a check for EDITOR.
const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
	RoleViewer = "VIEWER"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleEditor || s == RoleViewer
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	Role         string             `bson:"role" json:"role"`
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
	LastLoginAt  *time.Time         `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
}
