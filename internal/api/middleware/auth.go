package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/rohits-web03/folio/internal/api/services"
	"github.com/rohits-web03/folio/internal/models"
	"github.com/rohits-web03/folio/internal/utils"
)

type contextKey string

const (
	userKey   contextKey = "user"
	claimsKey contextKey = "claims"
)

// TokenCookie holds the signed session token.
const TokenCookie = "token"

type SessionLookup interface {
	Get(ctx context.Context, sid string) (*models.Session, error)
}

type UserLookup interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// Auth resolves the session cookie to a user.
type Auth struct {
	Tokens   *services.TokenService
	Sessions SessionLookup
	Users    UserLookup
}

// Claims returns the verified token claims from the request cookie, or nil.
// The session behind them may already be gone.
func (a *Auth) Claims(r *http.Request) *services.Claims {
	cookie, err := r.Cookie(TokenCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := a.Tokens.Parse(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

// resolve returns the user behind a live session, or nil.
func (a *Auth) resolve(r *http.Request) (*models.User, *services.Claims, error) {
	claims := a.Claims(r)
	if claims == nil {
		return nil, nil, nil
	}
	session, err := a.Sessions.Get(r.Context(), claims.ID)
	if err != nil || session == nil {
		return nil, nil, err
	}
	if session.Data().UserID != claims.UserID {
		return nil, nil, nil
	}
	user, err := a.Users.GetUser(r.Context(), claims.UserID)
	if err != nil || user == nil {
		return nil, nil, err
	}
	return user, claims, nil
}

// Authenticate rejects requests without a live session with 401.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		user, claims, err := a.resolve(r)
		if err != nil {
			log.Printf("[auth] resolve session: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to verify session")
			return
		}
		if user == nil {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin is Authenticate plus a 403 for non-admin users.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return a.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodOptions {
			if user := UserFromContext(r.Context()); user == nil || !user.IsAdmin {
				utils.Error(w, http.StatusForbidden, "Admin access required")
				return
			}
		}
		next.ServeHTTP(w, r)
	}))
}

// UserFromContext returns the user set by Authenticate.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}
