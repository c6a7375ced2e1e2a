package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fleet-fuel-backend/internal/usecase/approval"
)

type TicketHandler struct {
	uc  *approval.Usecase
	log logrus.FieldLogger
}

func NewTicketHandler(uc *approval.Usecase, log logrus.FieldLogger) *TicketHandler {
	return &TicketHandler{uc: uc, log: log}
}

type submitTicketReq struct {
	DriverID          string          `json:"driver_id"          validate:"required,hex32"`
	VehicleID         string          `json:"vehicle_id"         validate:"required,hex32"`
	Destination       string          `json:"destination"        validate:"required,max=255"`
	Purpose           string          `json:"purpose"            validate:"required,max=255"`
	FuelRequired      decimal.Decimal `json:"fuel_required"`
	EstimatedDistance decimal.Decimal `json:"estimated_distance"`
	// Dates are calendar days, YYYY-MM-DD.
	DepartureDate string `json:"departure_date" validate:"omitempty,datetime=2006-01-02"`
	ReturnDate    string `json:"return_date"    validate:"omitempty,datetime=2006-01-02"`
	Notes         string `json:"notes"          validate:"max=1000"`
}

type rejectTicketReq struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

func (h *TicketHandler) Submit(c echo.Context) error {
	var req submitTicketReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}

	dto, err := h.uc.Submit(c.Request().Context(), approval.SubmitInput{
		DriverID:          req.DriverID,
		VehicleID:         req.VehicleID,
		Destination:       req.Destination,
		Purpose:           req.Purpose,
		FuelRequired:      req.FuelRequired,
		EstimatedDistance: req.EstimatedDistance,
		DepartureDate:     parseOptional(dateLayout, req.DepartureDate),
		ReturnDate:        parseOptional(dateLayout, req.ReturnDate),
		Notes:             req.Notes,
		SubmittedBy:       actorID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// List serves the approver queue: ?status=pending&limit=50.
func (h *TicketHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("status")), queryLimit(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": out, "count": len(out)})
}

func (h *TicketHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("ticket_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *TicketHandler) Approve(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("ticket_id"), actorID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *TicketHandler) Reject(c echo.Context) error {
	var req rejectTicketReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("ticket_id"), actorID(c), req.Reason)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
