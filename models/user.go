package models

import "time"

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleSupervisor UserRole = "supervisor"
	RoleOperator   UserRole = "operador"
)

// AppUser is a staff account. Credentials live in a flat table; there is no
// external identity provider.
type AppUser struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'operador'"`
	Name         string    `json:"name" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName keeps the storage name the dashboard has always used.
func (AppUser) TableName() string { return "app_users" }
