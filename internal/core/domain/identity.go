package domain

// Role is the closed set of user types known to the hotel chain.
type Role string

const (
	RoleClient        Role = "CLIENT"
	RoleEmployee      Role = "EMPLOYEE"
	RoleManager       Role = "MANAGER"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// ParseRole maps a role string from the gateway onto the closed enumeration.
// Anything unrecognised (including the empty string) degrades to RoleClient:
// an unknown role must never grant elevated access.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleClient, RoleEmployee, RoleManager, RoleAdministrator:
		return Role(s)
	default:
		return RoleClient
	}
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleEmployee, RoleManager, RoleAdministrator:
		return true
	}
	return false
}

// Identity models the authenticated principal as reported by the gateway.
// Profile fields beyond id/username/role carry no invariants.
type Identity struct {
	ID          ID     `json:"id"`
	Username    string `json:"username"`
	Role        Role   `json:"userType"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}
