package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvalodim/pet_shop/internal/models"
	"github.com/mvalodim/pet_shop/internal/repo"
	"github.com/mvalodim/pet_shop/internal/session"
	"github.com/mvalodim/pet_shop/internal/tokens"
)

const CookieName = "session"

// SessionMiddleware guards protected procedures: it resolves the caller's
// identity from the session cookie and rejects revoked or invalid sessions.
type SessionMiddleware struct {
	Secret  []byte
	Revoker session.Revoker
	Repo    *repo.GormRepo
}

func NewSessionMiddleware(secret []byte, revoker session.Revoker, r *repo.GormRepo) *SessionMiddleware {
	return &SessionMiddleware{Secret: secret, Revoker: revoker, Repo: r}
}

func (m *SessionMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.resolve(c)
		if err != nil {
			return err
		}
		setUserContext(c, claims)
		return next(c)
	}
}

// RequireAdmin additionally checks the stored role; roles live in the users
// table, never in the token.
func (m *SessionMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.resolve(c)
		if err != nil {
			return err
		}

		user, err := m.Repo.GetUser(c.Request().Context(), claims.Subject)
		if err != nil || user.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}

		setUserContext(c, claims)
		return next(c)
	}
}

func (m *SessionMiddleware) resolve(c echo.Context) (*tokens.SessionClaims, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	claims, err := tokens.ParseSession(cookie.Value, m.Secret)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
	}

	revoked, err := m.Revoker.IsRevoked(c.Request().Context(), claims.ID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session check failed")
	}
	if revoked {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "session revoked")
	}

	return claims, nil
}

func setUserContext(c echo.Context, claims *tokens.SessionClaims) {
	c.Set("user_id", claims.Subject)
	c.Set("session_id", claims.ID)
}
