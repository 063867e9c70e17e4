package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolrecords/records-portal/internal/api/metrics"
	"github.com/schoolrecords/records-portal/internal/core/gate"
)

// Gate applies the route gate to every request. It must run after Session.
func Gate(g *gate.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, authenticated := CurrentSession(c)
			req := c.Request()

			d := g.Evaluate(gate.Request{
				Path:          req.URL.Path,
				RawQuery:      req.URL.RawQuery,
				Authenticated: authenticated,
			})
			metrics.GateDecisionsTotal.WithLabelValues(d.Action.String(), d.Rule).Inc()

			if d.Action == gate.Redirect {
				return c.Redirect(http.StatusTemporaryRedirect, d.Location)
			}
			return next(c)
		}
	}
}
