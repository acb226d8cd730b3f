package auth

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendanceportal/internal/apperr"
	"attendanceportal/internal/models"
	"attendanceportal/internal/utils"
)

// RegistrationPolicy configures how the contact field is obtained. The two
// registration flows (full form with an explicit contact, quick signup that
// synthesizes a placeholder from the username) are variants of the same
// engine, not separate engines.
type RegistrationPolicy struct {
	// ContactDefault synthesizes a contact when the form did not supply one.
	// Nil means the contact is required input.
	ContactDefault func(username string) string
}

// ExplicitContact requires the contact field on the form.
var ExplicitContact = RegistrationPolicy{}

// PlaceholderContact fills in "<username>@example.com" the way the quick
// signup flow does.
var PlaceholderContact = RegistrationPolicy{
	ContactDefault: func(username string) string { return username + "@example.com" },
}

// Register creates a student account. Staff and admin accounts are only ever
// pre-provisioned by the seeder.
func Register(db *gorm.DB, username, contact, password string, policy RegistrationPolicy) (*models.Account, error) {
	username = strings.TrimSpace(username)
	contact = strings.TrimSpace(contact)

	if contact == "" && policy.ContactDefault != nil && username != "" {
		contact = policy.ContactDefault(username)
	}
	if username == "" || contact == "" || password == "" {
		return nil, apperr.Validation("all fields are required")
	}

	var count int64
	if err := db.Model(&models.Account{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("username already exists")
	}
	if err := db.Model(&models.Account{}).Where("LOWER(contact) = LOWER(?)", contact).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("contact already registered")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	acct := models.Account{
		AccountID:    uuid.NewString(),
		Username:     username,
		Contact:      contact,
		PasswordHash: hashed,
		IsStaff:      false,
		IsSuperuser:  false,
	}
	if err := db.Create(&acct).Error; err != nil {
		// the unique indexes back up the pre-checks under concurrent signups
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("username already exists")
		}
		return nil, err
	}
	return &acct, nil
}
