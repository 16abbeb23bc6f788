package database

import (
	"encoding/json"
	"fmt"
)

// Role is the closed set of user roles. Stored as an integer, serialized
// as its stable name so issuance and parsing cannot drift.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
	RoleRequester
	RoleApprover
	RoleReceiver
	RolePurchase
)

var roleNames = map[Role]string{
	RoleUser:      "User",
	RoleAdmin:     "Admin",
	RoleRequester: "Requester",
	RoleApprover:  "Approver",
	RoleReceiver:  "Receiver",
	RolePurchase:  "Purchase",
}

var roleDescriptions = map[Role]string{
	RoleUser:      "Basic user with limited access",
	RoleAdmin:     "Full system access with user management capabilities",
	RoleRequester: "Can create and submit shopping requests",
	RoleApprover:  "Can review and approve shopping requests",
	RoleReceiver:  "Can receive and confirm delivered items",
	RolePurchase:  "Can process approved requests and make purchases",
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) Description() string {
	if desc, ok := roleDescriptions[r]; ok {
		return desc
	}
	return "Standard user access"
}

// ParseRole maps a stable role name back to its value.
func ParseRole(name string) (Role, bool) {
	for role, n := range roleNames {
		if n == name {
			return role, true
		}
	}
	return 0, false
}

// Roles returns all defined roles in declaration order.
func Roles() []Role {
	return []Role{RoleUser, RoleAdmin, RoleRequester, RoleApprover, RoleReceiver, RolePurchase}
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts either the role name or its integer value.
func (r *Role) UnmarshalJSON(data []byte) error {
	var value int
	if err := json.Unmarshal(data, &value); err == nil {
		*r = Role(value)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	role, ok := ParseRole(name)
	if !ok {
		return fmt.Errorf("unknown role %q", name)
	}
	*r = role
	return nil
}
