package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	authmw "github.com/mvalodim/pet_shop/internal/middleware/auth"
	"github.com/mvalodim/pet_shop/internal/logging"
	"github.com/mvalodim/pet_shop/internal/service"
	"github.com/mvalodim/pet_shop/internal/transport"
)

type AuthHTTP struct {
	Svc *service.UserService
}

// EstablishSession accepts the identity token minted by the external auth
// provider, upserts the user and sets it as the session cookie.
func (h *AuthHTTP) EstablishSession(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.session")

	var req transport.SessionRequest
	if err := c.Bind(&req); err != nil || req.Token == "" {
		l.Warn("establish_session_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "token required")
	}

	user, claims, err := h.Svc.EstablishSession(ctx, req.Token)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			l.Warn("establish_session_error", "status", 401, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		l.Error("establish_session_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot establish session")
	}

	expires := time.Now().Add(7 * 24 * time.Hour)
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	c.SetCookie(sessionCookie(req.Token, expires))

	l.Info("establish_session_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.me")

	userID, err := getID(c)
	if err != nil {
		l.Warn("me_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := h.Svc.Me(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("me_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("me_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load user")
	}
	return c.JSON(http.StatusOK, user)
}

// Logout revokes the current session and clears the cookie. Succeeds even
// without a valid session.
func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if cookie, err := c.Cookie(authmw.CookieName); err == nil && cookie.Value != "" {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			l.Error("logout_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot revoke session")
		}
	}

	c.SetCookie(expiredSessionCookie())

	l.Info("logout_success")
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     authmw.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     authmw.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
