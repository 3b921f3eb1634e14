package middleware

import (
	"context"
	"net/http"

	"github.com/waymarkd/waymark/internal/api/apierr"
	"github.com/waymarkd/waymark/internal/model"
	"github.com/waymarkd/waymark/internal/services/identity"
)

// SessionHeader carries the client-generated session code.
// Possession of the code is the whole credential.
const SessionHeader = "X-Session-Code"

type contextKey string

const actorContextKey contextKey = "actor"

// WithActor resolves the request's session code into an Actor and stores it
// in the context. Requests without a session code pass through with an
// anonymous actor; presence is enforced by the Require* middlewares.
func WithActor(resolver *identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := model.SessionCode(r.Header.Get(SessionHeader))

			role, err := resolver.Resolve(r.Context(), session)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			actor := model.Actor{Session: session, Role: role}
			ctx := context.WithValue(r.Context(), actorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that carry no session code
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := GetActor(r.Context())
		if actor.Session == "" {
			apierr.WriteError(w, apierr.NewUnauthorizedError())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from actors without moderation privileges
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := GetActor(r.Context())
		if actor.Session == "" {
			apierr.WriteError(w, apierr.NewUnauthorizedError())
			return
		}
		if !actor.Role.IsAdmin() {
			apierr.WriteError(w, model.ErrAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOwner rejects requests from anyone but the configured owner
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := GetActor(r.Context())
		if actor.Session == "" {
			apierr.WriteError(w, apierr.NewUnauthorizedError())
			return
		}
		if !actor.Role.IsOwner() {
			apierr.WriteError(w, model.ErrOwnerRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetActor returns the actor resolved for the request.
// Outside WithActor it returns the zero anonymous actor.
func GetActor(ctx context.Context) model.Actor {
	actor, ok := ctx.Value(actorContextKey).(model.Actor)
	if !ok {
		return model.Actor{Role: model.RoleUser}
	}
	return actor
}
