package middleware

import (
	"context"
	"net/http"
	"strings"

	"pourpal/internal/auth"
	"pourpal/internal/model"
	"pourpal/internal/repository"

	"github.com/rs/zerolog"
)

type contextKey string

const userContextKey contextKey = "user"

// WithUser stores an authenticated user on the context.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user stored by RequireUser or
// RequireAdmin, or nil outside a guarded route.
func UserFromContext(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// Auth guards routes that need an authenticated user. It decodes the bearer
// token, loads the account and stashes it in the request context.
type Auth struct {
	tokens *auth.Manager
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewAuth creates the authentication middleware.
func NewAuth(tokens *auth.Manager, users repository.UserRepository, logger zerolog.Logger) *Auth {
	return &Auth{
		tokens: tokens,
		users:  users,
		logger: logger.With().Str("middleware", "auth").Logger(),
	}
}

// RequireUser rejects requests without a valid access token for an active
// account.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := a.authenticate(r)
		if user == nil {
			unauthorised(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireAdmin additionally rejects non-admin accounts.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := a.authenticate(r)
		if user == nil {
			unauthorised(w)
			return
		}
		if user.Role != model.RoleAdmin {
			forbidden(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (a *Auth) authenticate(r *http.Request) *model.User {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil
	}

	userID, err := a.tokens.Decode(strings.TrimSpace(parts[1]))
	if err != nil {
		a.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("token rejected")
		return nil
	}

	user, err := a.users.FindByID(r.Context(), userID)
	if err != nil {
		a.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load user")
		return nil
	}
	if user == nil || !user.IsActive {
		return nil
	}
	return user
}

func unauthorised(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message": "Authentication required"}`))
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"message": "Administrator rights required"}`))
}
