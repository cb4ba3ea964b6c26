package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleWorker Role = "worker"
)

// ParseRole accepts the role names the front end sends. "customer" is the
// label the login tabs use for RoleUser.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "user", "customer", "":
		return RoleUser, true
	case "worker":
		return RoleWorker, true
	}
	return "", false
}

// internal/models/user.go
type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone string    `gorm:"type:varchar(30)" json:"phone"`

	// bcrypt hash, never the plain password
	Password string `gorm:"not null" json:"password"`
	Role     Role   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	LoggedIn bool   `gorm:"default:false" json:"loggedIn"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
