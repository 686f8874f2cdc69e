package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"teabloom-be/internal/identity"
)

// Auth resolves an optional bearer token into a registered identity.
// Requests without a token, or with one that does not verify, continue
// as guests; route handlers decide what guests may do.
func Auth(secret string) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				return next(c)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return next(c)
			}

			ident := identityFromClaims(claims)
			if ident.UserID == "" {
				return next(c)
			}

			if sess := SessionFrom(c); sess != nil {
				sess.Identity = ident
			}

			ctx := identity.WithContext(c.Request().Context(), ident)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func identityFromClaims(claims jwt.MapClaims) identity.Identity {
	ident := identity.Identity{Kind: identity.KindRegistered}

	if id, ok := claims["id"].(string); ok {
		ident.UserID = id
	}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		ident.Name = name
	}
	if admin, ok := claims["admin"].(bool); ok {
		ident.Admin = admin
	}

	return ident
}
