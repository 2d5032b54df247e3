package service

import (
	"fmt"

	"github.com/BaharRaf/trading/internal/domain"
	"github.com/BaharRaf/trading/internal/store"
)

// AccessGuard decides which customer a caller may act on.
//
// Employees may act on any customer id. A customer's effective target
// is always their own id, resolved from their login username — a
// supplied target id is checked against the resolved one, never
// trusted, so a buggy or hostile client cannot trade on another
// account by sending a different id.
type AccessGuard struct {
	customers *store.CustomerStore
}

// NewAccessGuard creates an AccessGuard backed by the customer store.
func NewAccessGuard(customers *store.CustomerStore) *AccessGuard {
	return &AccessGuard{customers: customers}
}

// Resolve returns the customer id the actor is authorized to act on.
// targetID may be empty for customer self-service calls.
func (g *AccessGuard) Resolve(actor domain.Actor, targetID string) (string, error) {
	switch actor.Role {
	case domain.RoleEmployee:
		if targetID == "" {
			return "", &domain.ValidationError{Message: "customer id is required for employee operations"}
		}
		return targetID, nil

	case domain.RoleCustomer:
		c, err := g.customers.GetByUsername(actor.Username)
		if err != nil {
			return "", fmt.Errorf("%w: no customer for username %q", domain.ErrIdentityNotFound, actor.Username)
		}
		if targetID != "" && targetID != c.ID {
			return "", fmt.Errorf("%w: customer %q may only act on own account", domain.ErrAccessDenied, actor.Username)
		}
		return c.ID, nil

	default:
		return "", fmt.Errorf("%w: unknown role %q", domain.ErrAccessDenied, actor.Role)
	}
}

// RequireEmployee rejects any caller that is not an employee.
func (g *AccessGuard) RequireEmployee(actor domain.Actor) error {
	if actor.Role != domain.RoleEmployee {
		return fmt.Errorf("%w: employee role required", domain.ErrAccessDenied)
	}
	return nil
}
