package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fleet-fuel-backend/internal/usecase/fueltx"
)

type FuelHandler struct {
	uc  *fueltx.Usecase
	log logrus.FieldLogger
}

func NewFuelHandler(uc *fueltx.Usecase, log logrus.FieldLogger) *FuelHandler {
	return &FuelHandler{uc: uc, log: log}
}

type recordFuelReq struct {
	VehicleID       string           `json:"vehicle_id"       validate:"required,hex32"`
	DriverID        string           `json:"driver_id"        validate:"required,hex32"`
	FuelType        string           `json:"fuel_type"        validate:"required,max=32"`
	Quantity        decimal.Decimal  `json:"quantity"         validate:"dec3"`
	CostPerLiter    decimal.Decimal  `json:"cost_per_liter"   validate:"dec4"`
	OdometerReading *decimal.Decimal `json:"odometer_reading"`
	Station         string           `json:"station"          validate:"max=120"`
	ReceiptNumber   string           `json:"receipt_number"   validate:"max=64"`
	// RFC3339 with zone; defaults to now.
	FueledAt      string `json:"fueled_at"       validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	BulkAccountID string `json:"bulk_account_id" validate:"omitempty,hex32"`
	WorkTicketID  string `json:"work_ticket_id"  validate:"omitempty,hex32"`
}

// Record stores a fueling event, debiting the bulk account and completing the work ticket
// when they are referenced. All of it commits together or not at all.
func (h *FuelHandler) Record(c echo.Context) error {
	var req recordFuelReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}

	var fueledAt time.Time
	if t := parseOptional(time.RFC3339, req.FueledAt); t != nil {
		fueledAt = *t
	}
	dto, err := h.uc.RecordFuel(c.Request().Context(), fueltx.RecordFuelInput{
		VehicleID:       req.VehicleID,
		DriverID:        req.DriverID,
		FuelType:        req.FuelType,
		Quantity:        req.Quantity,
		CostPerLiter:    req.CostPerLiter,
		OdometerReading: req.OdometerReading,
		Station:         req.Station,
		ReceiptNumber:   req.ReceiptNumber,
		FueledAt:        fueledAt,
		BulkAccountID:   req.BulkAccountID,
		WorkTicketID:    req.WorkTicketID,
		RecordedBy:      actorID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *FuelHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("record_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
