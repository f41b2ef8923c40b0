package domain

// Role is the role claim embedded in a credential. The client decodes it
// for UI gating only; authorization is enforced by the remote system.
type Role string

const (
	RoleCustomer Role = "ROLE_CUSTOMER"
	RoleSeller   Role = "ROLE_SELLER"
)

// IsSeller reports whether the role unlocks the seller console.
func (r Role) IsSeller() bool {
	return r == RoleSeller
}
