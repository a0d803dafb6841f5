package models

// Role is the platform role carried in the session token
type Role string

const (
	RoleAlumni      Role = "alumni"
	RoleSchoolAdmin Role = "school_admin"
	RoleSuperAdmin  Role = "super_admin"
)

// IsAdmin returns true for school and super admins
func (r Role) IsAdmin() bool {
	return r == RoleSchoolAdmin || r == RoleSuperAdmin
}

// ParseRole falls back to alumni for empty or unknown roles
func ParseRole(value string) Role {
	switch Role(value) {
	case RoleSchoolAdmin, RoleSuperAdmin:
		return Role(value)
	default:
		return RoleAlumni
	}
}

// Actor is the authenticated caller every mentorship operation is authorized against
type Actor struct {
	UserID string
	Role   Role
}

// UserSession represents an authenticated user session
type UserSession struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}

// Actor returns the identity used for authorization
func (s *UserSession) Actor() Actor {
	return Actor{UserID: s.UserID, Role: s.Role}
}
