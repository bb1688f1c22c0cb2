package domain

// Role values stored on users and carried in session tokens.
const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// HasManagementCapability reports whether a role may run privileged order
// operations regardless of ownership or status.
func HasManagementCapability(role string) bool {
	return role == RoleManager || role == RoleAdmin
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}
