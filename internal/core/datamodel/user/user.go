package user

import "time"

// Roles are mutually exclusive; a user holds exactly one at a time.
const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
	RoleCustomer = "Customer"
	RoleStudent  = "Student"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone,omitempty"`
	Document     string         `json:"document,omitempty"`
	Address      string         `json:"address,omitempty"`
	Role         string         `json:"role"`
	Status       string         `json:"status"`
	Orders       int            `json:"orders"`
	// Permissions mirrors the last role cascade for API consumers;
	// effective checks always go through Effective.
	Permissions  *PermissionSet `json:"permissions,omitempty"`
	ProfilePhoto string         `json:"profilePhoto,omitempty"`
	PasswordHash string         `json:"passwordHash,omitempty"`
	RegisteredAt time.Time      `json:"registeredAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsActiveUser() bool {
	return u.Status == StatusActive
}

// PermissionSet is the fixed list of capability flags a role grants.
type PermissionSet struct {
	ManageUsers     bool `json:"manageUsers"`
	ManageEmployees bool `json:"manageEmployees"`
	ManageInventory bool `json:"manageInventory"`
	ManageOrders    bool `json:"manageOrders"`
	ManageReturns   bool `json:"manageReturns"`
	ManageServices  bool `json:"manageServices"`
	ManageQuotes    bool `json:"manageQuotes"`
	ManageWorkshops bool `json:"manageWorkshops"`
	ManageBlog      bool `json:"manageBlog"`
}

func AllPermissions() PermissionSet {
	return PermissionSet{
		ManageUsers:     true,
		ManageEmployees: true,
		ManageInventory: true,
		ManageOrders:    true,
		ManageReturns:   true,
		ManageServices:  true,
		ManageQuotes:    true,
		ManageWorkshops: true,
		ManageBlog:      true,
	}
}

func NoPermissions() PermissionSet {
	return PermissionSet{}
}

// Can reports a single capability by its flag name. Unknown capabilities
// are denied.
func (p PermissionSet) Can(capability string) bool {
	switch capability {
	case "users":
		return p.ManageUsers
	case "employees":
		return p.ManageEmployees
	case "inventory":
		return p.ManageInventory
	case "orders":
		return p.ManageOrders
	case "returns":
		return p.ManageReturns
	case "services":
		return p.ManageServices
	case "quotes":
		return p.ManageQuotes
	case "workshops":
		return p.ManageWorkshops
	case "blog":
		return p.ManageBlog
	default:
		return false
	}
}

// RolePermissions maps a role name to its capability flags. Admin is never
// stored here; its permissions are computed as all-true at check time.
type RolePermissions map[string]PermissionSet

// Effective resolves the permissions a user actually holds: Admin is
// implicitly all-true, otherwise the role mapping decides, defaulting to
// all-false. The stored Permissions field is only a mirror of the last
// cascade kept for API responses; it never grants anything on its own,
// so a role change takes effect immediately.
func Effective(u *User, mapping RolePermissions) PermissionSet {
	if u == nil {
		return NoPermissions()
	}
	if u.IsAdmin() {
		return AllPermissions()
	}
	if perms, ok := mapping[u.Role]; ok {
		return perms
	}
	return NoPermissions()
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEmployee, RoleCustomer, RoleStudent:
		return true
	}
	return false
}
