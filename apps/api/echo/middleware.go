package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/Kings001-stack/SMS/core/session"
)

// loginRequiredMiddleware protects the JSON API; an absent session is a 401,
// not a redirect, since the caller is script code.
func loginRequiredMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if _, ok := getContextSession(ctx); !ok {
			return errUnauthorized
		}
		return next(ctx)
	}
}

// roleRequiredMiddleware gates an endpoint to the listed roles.
func roleRequiredMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess, ok := getContextSession(ctx)
			if !ok {
				return errUnauthorized
			}
			for _, role := range roles {
				if sess.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

func adminRequiredMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return roleRequiredMiddleware(session.RoleAdmin)(next)
}
