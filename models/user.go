// models/user.go
package models

import (
	"time"
)

// UserRole is the closed set of roles. A gestor owns obras; an engenheiro
// is assigned to obras and performs check-ins and checklist submissions.
type UserRole string

const (
	RoleGestor     UserRole = "gestor"
	RoleEngenheiro UserRole = "engenheiro"
)

func (r UserRole) Valid() bool {
	return r == RoleGestor || r == RoleEngenheiro
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FullName     string    `gorm:"size:255;not null" json:"fullName"`
	Role         UserRole  `gorm:"size:20;not null;index" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) IsGestor() bool     { return u.Role == RoleGestor }
func (u *User) IsEngenheiro() bool { return u.Role == RoleEngenheiro }
