package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// HTTPRecorder receives one observation per served request.
type HTTPRecorder interface {
	RecordHTTPRequest(method, route, status string, duration time.Duration)
}

// unmatchedRoute labels requests that matched no registered route, keeping label cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics returns middleware that reports every request to rec, labelled by the
// registered route pattern rather than the raw path.
func Metrics(rec HTTPRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}

			rec.RecordHTTPRequest(c.Request().Method, route, strconv.Itoa(status), time.Since(start))
			return err
		}
	}
}
