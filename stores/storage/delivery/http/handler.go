package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/delivery"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/storage"
	"github.com/bidmarket/goapi/middleware"
)

const headerSigner = "X-Signer-Id"

type handler struct {
	ledger storage.Ledger
}

// New registers the storage quota routes.
func New(e *echo.Echo, ledger storage.Ledger) {
	h := &handler{ledger}
	g := e.Group("/storage")
	g.GET("/:account", h.getBalance, middleware.IsValidAccount("account"))
	g.POST("/deposit", h.deposit)
	g.POST("/withdraw", h.withdraw)
}

func (h *handler) getBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	balance, err := h.ledger.GetBalance(ctx, domain.AccountId(c.Param("account")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, balance)
}

func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	signer := domain.AccountId(c.Request().Header.Get(headerSigner))
	if !signer.IsValid() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAccountId)
	}

	type payload struct {
		Amount domain.TokenAmount `json:"amount" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	balance, err := h.ledger.Deposit(ctx, signer, p.Amount)
	if err != nil {
		if err == domain.ErrInvalidAmountFormat || err == domain.ErrZeroAmount {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, balance)
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	signer := domain.AccountId(c.Request().Header.Get(headerSigner))
	if !signer.IsValid() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAccountId)
	}

	refund, err := h.ledger.Withdraw(ctx, signer)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	type response struct {
		Refund domain.TokenAmount `json:"refund"`
	}
	return delivery.MakeJsonResp(c, http.StatusOK, response{Refund: refund})
}
