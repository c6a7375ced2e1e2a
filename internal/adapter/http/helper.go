package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fleet-fuel-backend/internal/adapter/middleware"
)

const dateLayout = "2006-01-02"

// actorID is empty when the route is mounted without the identity middleware;
// the usecases reject an empty approver where one is required.
func actorID(c echo.Context) string {
	a, _ := middleware.ActorFrom(c)
	return a.ID
}

// queryLimit returns 0 (usecase default) when ?limit is absent or not a number.
func queryLimit(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		return 0
	}
	return n
}

// parseOptional parses a value that already passed the datetime validator.
func parseOptional(layout, raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(layout, raw)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
