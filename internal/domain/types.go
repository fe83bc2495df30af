package domain

// ID is used across domain entities.
type ID int64

// Roles carried in auth tokens. The core trusts the caller-supplied role.
const (
	RoleOwner  = "OWNER"
	RoleWalker = "WALKER"
	RoleAdmin  = "ADMIN"
)

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// IsWalker reports whether the caller may act as the service provider.
// Admins pass every role gate.
func (rc RequestContext) IsWalker() bool {
	return rc.Role == RoleWalker || rc.Role == RoleAdmin
}

// IsOwner reports whether the caller may act as the booking owner.
func (rc RequestContext) IsOwner() bool {
	return rc.Role == RoleOwner || rc.Role == RoleAdmin
}
