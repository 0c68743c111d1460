package entity

// Role represents an authorization role held by a user.
type Role string

const (
	RoleFarmer  Role = "farmer"
	RoleSeller  Role = "seller"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// Roles lists every role a user may hold or request.
var Roles = []Role{RoleFarmer, RoleSeller, RoleTrainer, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }
