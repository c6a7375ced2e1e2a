package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fleet-fuel-backend/internal/usecase/ledger"
)

type AccountHandler struct {
	uc  *ledger.Usecase
	log logrus.FieldLogger
}

func NewAccountHandler(uc *ledger.Usecase, log logrus.FieldLogger) *AccountHandler {
	return &AccountHandler{uc: uc, log: log}
}

type createAccountReq struct {
	AccountName    string          `json:"account_name"    validate:"required,max=120"`
	SupplierName   string          `json:"supplier_name"   validate:"max=120"`
	AccountNumber  string          `json:"account_number"  validate:"max=64"`
	ContactPerson  string          `json:"contact_person"  validate:"max=120"`
	ContactPhone   string          `json:"contact_phone"   validate:"max=32"`
	ContactEmail   string          `json:"contact_email"   validate:"omitempty,email,max=120"`
	InitialBalance decimal.Decimal `json:"initial_balance" validate:"dec2"`
	CreditLimit    decimal.Decimal `json:"credit_limit"    validate:"dec2"`
	FuelTypes      []string        `json:"fuel_types"      validate:"dive,required,max=32"`
}

type adjustReq struct {
	Delta  decimal.Decimal `json:"delta"  validate:"dec2"`
	Reason string          `json:"reason" validate:"required,max=500"`
}

type setStatusReq struct {
	Status string `json:"status" validate:"required,oneof=active suspended closed"`
}

func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}
	dto, err := h.uc.CreateAccount(c.Request().Context(), ledger.CreateAccountInput{
		AccountName:    req.AccountName,
		SupplierName:   req.SupplierName,
		AccountNumber:  req.AccountNumber,
		ContactPerson:  req.ContactPerson,
		ContactPhone:   req.ContactPhone,
		ContactEmail:   req.ContactEmail,
		InitialBalance: req.InitialBalance,
		CreditLimit:    req.CreditLimit,
		FuelTypes:      req.FuelTypes,
		CreatedBy:      actorID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AccountHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("account_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AccountHandler) Adjust(c echo.Context) error {
	var req adjustReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}
	dto, err := h.uc.Adjust(c.Request().Context(), c.Param("account_id"), req.Delta, req.Reason, actorID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AccountHandler) SetStatus(c echo.Context) error {
	var req setStatusReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}
	dto, err := h.uc.SetStatus(c.Request().Context(), c.Param("account_id"), req.Status, actorID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AccountHandler) Entries(c echo.Context) error {
	out, err := h.uc.Entries(c.Request().Context(), c.Param("account_id"), queryLimit(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": out, "count": len(out)})
}

func (h *AccountHandler) Reconcile(c echo.Context) error {
	rep, err := h.uc.Reconcile(c.Request().Context(), c.Param("account_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, rep)
}
