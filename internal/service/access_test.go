package service

import (
	"errors"
	"testing"

	"github.com/BaharRaf/trading/internal/domain"
)

func TestAccessGuard_EmployeeActsOnAnyone(t *testing.T) {
	env := newTestEnv(t, "1000")

	id, err := env.guard.Resolve(employee(), env.alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != env.alice.ID {
		t.Errorf("resolved id = %q, want %q", id, env.alice.ID)
	}
}

func TestAccessGuard_EmployeeNeedsTarget(t *testing.T) {
	env := newTestEnv(t, "1000")

	_, err := env.guard.Resolve(employee(), "")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestAccessGuard_CustomerPinnedToOwnAccount(t *testing.T) {
	env := newTestEnv(t, "1000")

	// Empty target resolves to the caller's own id.
	id, err := env.guard.Resolve(customer("alice"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != env.alice.ID {
		t.Errorf("resolved id = %q, want alice's %q", id, env.alice.ID)
	}

	// Matching target is fine.
	if _, err := env.guard.Resolve(customer("alice"), env.alice.ID); err != nil {
		t.Errorf("own id rejected: %v", err)
	}

	// Any other target is denied, valid or not.
	if _, err := env.guard.Resolve(customer("alice"), "someone-else"); !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("err = %v, want ErrAccessDenied", err)
	}
}

func TestAccessGuard_UnknownUsername(t *testing.T) {
	env := newTestEnv(t, "1000")

	_, err := env.guard.Resolve(customer("mallory"), "")
	if !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("err = %v, want ErrIdentityNotFound", err)
	}
}

func TestAccessGuard_UnknownRole(t *testing.T) {
	env := newTestEnv(t, "1000")

	_, err := env.guard.Resolve(domain.Actor{Role: "auditor", Username: "x"}, env.alice.ID)
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}
}

func TestAccessGuard_RequireEmployee(t *testing.T) {
	env := newTestEnv(t, "1000")

	if err := env.guard.RequireEmployee(employee()); err != nil {
		t.Errorf("employee rejected: %v", err)
	}
	if err := env.guard.RequireEmployee(customer("alice")); !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("err = %v, want ErrAccessDenied", err)
	}
}
