package handler

import (
	"context"
	"net/http"

	"github.com/BaharRaf/trading/internal/domain"
)

// actorKey is the context key under which the authenticated actor is stored.
type actorKey struct{}

// headerRole and headerUsername carry the caller identity established by
// the enclosing auth boundary. The bank trusts these headers; it only
// decides what the identified caller may do.
const (
	headerRole     = "X-Role"
	headerUsername = "X-Username"
)

// identity is middleware that turns the identity headers into a
// domain.Actor in the request context. Requests with a missing username
// or an unknown role are rejected with 401 before any handler runs.
func identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := domain.Role(r.Header.Get(headerRole))
		username := r.Header.Get(headerUsername)

		if username == "" || !role.Valid() {
			WriteError(w, http.StatusUnauthorized, "unauthenticated",
				"X-Role and X-Username headers are required; X-Role must be employee or customer")
			return
		}

		actor := domain.Actor{Role: role, Username: username}
		ctx := context.WithValue(r.Context(), actorKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// actorFrom retrieves the authenticated actor placed by the identity
// middleware. The zero Actor is returned only for routes mounted
// outside the middleware, which never read it.
func actorFrom(r *http.Request) domain.Actor {
	actor, _ := r.Context().Value(actorKey{}).(domain.Actor)
	return actor
}
