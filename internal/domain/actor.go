package domain

// Role identifies the kind of caller acting on the bank.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleCustomer
}

// Actor is the authenticated caller of an operation. Identity is
// established by the enclosing service boundary; the bank only decides
// what the actor may do with it.
type Actor struct {
	Role     Role
	Username string
}
