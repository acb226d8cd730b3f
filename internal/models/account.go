package models

import (
	"time"
)

// Account is an identity record. The two flags jointly encode the role
// (see auth.RoleOf); the role itself is never stored. Accounts are
// deliberately disjoint from the Student/Teacher roster.
type Account struct {
	ID           uint   `gorm:"primaryKey"`
	AccountID    string `gorm:"uniqueIndex"`
	Username     string `gorm:"uniqueIndex"`
	Contact      string `gorm:"uniqueIndex"`
	Email        string
	PasswordHash string
	IsStaff      bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
