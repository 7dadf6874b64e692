package middleware

import (
	"context"
	"errors"
	"net/http"

	"bloghub/internal/common"
	"bloghub/internal/common/security"
	"bloghub/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const userCtxKey contextKey = "authUser"

// AuthUser is the identity attached to a request after authentication. It is
// a value, not a pointer: handlers get a copy they cannot mutate, and it never
// carries the password hash.
type AuthUser struct {
	ID    string
	Name  string
	Email string
}

// Authenticator rejects requests without a valid bearer token, then resolves
// the token's subject through the user store. A token whose subject no longer
// exists is refused even when its signature and expiry check out; the store is
// the authority on who currently exists, not the token.
func Authenticator(users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context()) // set by jwtauth.Verifier
			if err != nil || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
					return
				}
				common.RespondWithError(w, http.StatusInternalServerError, common.ErrInternalServer.Error())
				return
			}

			ctx := withUser(r.Context(), AuthUser{ID: user.ID, Name: user.Name, Email: user.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func withUser(ctx context.Context, user AuthUser) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// UserFromContext returns the authenticated identity for the request, if any.
func UserFromContext(ctx context.Context) (AuthUser, bool) {
	user, ok := ctx.Value(userCtxKey).(AuthUser)
	return user, ok
}
