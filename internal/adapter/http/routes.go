package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"fleet-fuel-backend/internal/adapter/middleware"
)

type Deps struct {
	Health   *Handler
	Tickets  *TicketHandler
	Accounts *AccountHandler
	Fuel     *FuelHandler

	JWTSecret      []byte
	Redis          redis.Cmdable
	IdempotencyTTL time.Duration
	Log            logrus.FieldLogger
}

// Register mounts every route on e. Everything but /health requires a bearer token;
// mutating routes are idempotent on X-Request-Id.
func Register(e *echo.Echo, d Deps) {
	e.Validator = NewValidator()

	identity := middleware.Identity(d.JWTSecret, d.Log)
	idem := middleware.Idempotency(d.Redis, d.IdempotencyTTL, d.Log)
	approver := middleware.RequireRole(middleware.RoleApprover)
	admin := middleware.RequireRole()

	e.GET("/health", d.Health.Health)

	e.POST("/tickets", d.Tickets.Submit, identity, idem)
	e.GET("/tickets", d.Tickets.List, identity)
	e.GET("/tickets/:ticket_id", d.Tickets.Get, identity)
	e.POST("/tickets/:ticket_id/approve", d.Tickets.Approve, identity, approver, idem)
	e.POST("/tickets/:ticket_id/reject", d.Tickets.Reject, identity, approver, idem)

	e.POST("/accounts", d.Accounts.Create, identity, admin, idem)
	e.GET("/accounts/:account_id", d.Accounts.Get, identity)
	e.POST("/accounts/:account_id/adjust", d.Accounts.Adjust, identity, admin, idem)
	e.POST("/accounts/:account_id/status", d.Accounts.SetStatus, identity, admin, idem)
	e.GET("/accounts/:account_id/entries", d.Accounts.Entries, identity)
	e.GET("/accounts/:account_id/reconcile", d.Accounts.Reconcile, identity)

	e.POST("/fuel-records", d.Fuel.Record, identity, idem)
	e.GET("/fuel-records/:record_id", d.Fuel.Get, identity)
}
