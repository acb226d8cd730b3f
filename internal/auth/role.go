package auth

import (
	"strings"

	"attendanceportal/internal/apperr"
	"attendanceportal/internal/models"
)

// Role is the three-tier access level. It is derived once from the two
// account flags and passed through every authorization check; the raw
// booleans never cross this package's boundary.
type Role int

const (
	RoleStudent Role = iota
	RoleStaff
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleStaff:
		return "staff"
	default:
		return "student"
	}
}

// Title returns the role name as shown in user-facing messages.
func (r Role) Title() string {
	s := r.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseRole maps a requested role string to its variant. Unknown or empty
// input defaults to student, mirroring the login form's default selection.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "staff":
		return RoleStaff
	default:
		return RoleStudent
	}
}

// RoleOf derives the role with admin > staff > student precedence.
func RoleOf(a models.Account) Role {
	if a.IsSuperuser {
		return RoleAdmin
	}
	if a.IsStaff {
		return RoleStaff
	}
	return RoleStudent
}

// Authorize checks an authenticated role against an explicitly requested
// one. A mismatch is distinct from a credential failure and names the
// requested role in its message.
func Authorize(have, requested Role) error {
	if have == requested {
		return nil
	}
	return apperr.Role("this account does not have " + requested.Title() + " access")
}

// AuthorizeStaffArea admits staff and admin; it gates the admin console,
// which both tiers may use.
func AuthorizeStaffArea(have Role) error {
	if have == RoleStaff || have == RoleAdmin {
		return nil
	}
	return apperr.Role("this account does not have admin access")
}

// RouteFor resolves the dashboard a freshly authenticated (or already
// authenticated) account should land on.
func RouteFor(r Role) string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleStaff:
		return "/staff/dashboard"
	default:
		return "/student/dashboard"
	}
}
