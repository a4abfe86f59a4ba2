package services

// Role is the authorization level attached to a caller.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Caller is the explicit identity every pipeline operation receives.
// It is resolved once at the transport boundary (session middleware) and
// passed down, so services stay testable without a live auth provider.
// A zero Caller is an anonymous visitor.
type Caller struct {
	UserID string
	Role   Role
}

// Anonymous reports whether no authenticated user backs this caller.
func (c Caller) Anonymous() bool { return c.UserID == "" }

// CanModerate reports whether the caller may approve or reject requests.
func (c Caller) CanModerate() bool {
	return !c.Anonymous() && (c.Role == RoleAdmin || c.Role == RoleModerator)
}

// IsAdmin reports whether the caller may use the admin CRUD surface.
func (c Caller) IsAdmin() bool { return !c.Anonymous() && c.Role == RoleAdmin }
