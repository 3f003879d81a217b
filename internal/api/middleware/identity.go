package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vanguard/directory/internal/core/domain"
	"github.com/vanguard/directory/internal/core/ports"
)

const actorKey = "actor"

// Identity resolves the acting identity and injects it into the context.
func Identity(provider ports.IdentityProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := provider.Resolve(c.Request())
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
				}
				return err
			}
			WithActor(c, actor)
			return next(c)
		}
	}
}

// ActorFrom returns the identity injected by Identity, or the anonymous
// actor when the middleware did not run.
func ActorFrom(c echo.Context) domain.Actor {
	if a, ok := c.Get(actorKey).(domain.Actor); ok {
		return a
	}
	return domain.AnonymousActor
}

// WithActor stores actor on c.
func WithActor(c echo.Context, actor domain.Actor) {
	c.Set(actorKey, actor)
}
