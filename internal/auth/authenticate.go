package auth

import (
	"errors"

	"gorm.io/gorm"

	"attendanceportal/internal/apperr"
	"attendanceportal/internal/models"
	"attendanceportal/internal/utils"
)

const invalidCredentialsMsg = "invalid username or password"

// Resolve finds the account a typed login identifier refers to. Order
// matters: exact username, then case-insensitive username, then contact,
// then the alternate email, all case-insensitive. Returns nil when nothing
// matches.
func Resolve(db *gorm.DB, identifier string) (*models.Account, error) {
	lookups := []string{
		"username = ?",
		"LOWER(username) = LOWER(?)",
		"LOWER(contact) = LOWER(?)",
		"LOWER(email) = LOWER(?)",
	}
	for _, cond := range lookups {
		var acct models.Account
		err := db.Where(cond, identifier).First(&acct).Error
		if err == nil {
			return &acct, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// Authenticate verifies credentials for a login identifier. When no account
// resolves, verification proceeds against the raw identifier and fails, so
// unknown-identifier and wrong-password produce the same failure.
func Authenticate(db *gorm.DB, identifier, password string) (*models.Account, error) {
	acct, err := Resolve(db, identifier)
	if err != nil {
		return nil, err
	}
	if acct == nil || !utils.CheckPassword(acct.PasswordHash, password) {
		return nil, apperr.Auth(invalidCredentialsMsg)
	}
	return acct, nil
}
