package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"teabloom-be/internal/identity"
	"teabloom-be/internal/session"
)

const (
	SessionCookie = "tb_session"

	sessionContextKey = "session"
)

// WithSession attaches a browser session to every request, minting a new
// one (and its cookie) when none exists yet. The session carries the
// shopper's cart across requests.
func WithSession(manager *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie.Value
			}

			sess := manager.GetOrCreate(id)
			if sess.ID != id {
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(sessionContextKey, sess)

			ctx := identity.WithContext(c.Request().Context(), sess.Identity)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// SessionFrom returns the request's session, or nil outside the
// session middleware.
func SessionFrom(c echo.Context) *session.Session {
	if sess, ok := c.Get(sessionContextKey).(*session.Session); ok {
		return sess
	}
	return nil
}
