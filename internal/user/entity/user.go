package entity

// Role is the fixed role set. The numeric values are part of the users.txt
// format and must not be reordered.
type Role int

const (
	RoleAdmin Role = iota
	RoleLandlord
	RoleTenant
)

func (r Role) Valid() bool {
	return r >= RoleAdmin && r <= RoleTenant
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleLandlord:
		return "Landlord"
	case RoleTenant:
		return "Tenant"
	default:
		return "Unknown"
	}
}

// User represents an account record. Accounts are never physically deleted;
// admins deactivate them via IsActive. The password is stored as entered
// (legacy snapshot-file compatibility) and is never serialized to JSON.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"is_active"`
}
