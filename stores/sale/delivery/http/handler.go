package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/delivery"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/paytoken"
	"github.com/bidmarket/goapi/domain/sale"
	"github.com/bidmarket/goapi/middleware"
)

const (
	headerPredecessor = "X-Predecessor-Id"
	headerSigner      = "X-Signer-Id"
)

type handler struct {
	market   sale.MarketUsecase
	paytoken paytoken.Usecase
}

// New registers the market routes: the two collaborator callbacks, the
// removal endpoint and the index-backed views.
func New(e *echo.Echo, market sale.MarketUsecase, paytokenUC paytoken.Usecase) {
	h := &handler{
		market:   market,
		paytoken: paytokenUC,
	}
	g := e.Group("/market")
	g.POST("/nft-approval", h.nftOnApprove)
	g.POST("/ft-transfer", h.ftOnTransfer)
	g.DELETE("/sale/:collection/:token", h.removeSale, middleware.IsValidAccount("collection"))
	g.GET("/sale/:collection/:token", h.getSale, middleware.IsValidAccount("collection"))
	g.GET("/sales/owner/:account", h.getSalesByOwner, middleware.IsValidAccount("account"))
	g.GET("/sales/collection/:collection", h.getSalesByCollection, middleware.IsValidAccount("collection"))
	g.GET("/supply/owner/:account", h.getSupplyByOwner, middleware.IsValidAccount("account"))
	g.GET("/supply/collection/:collection", h.getSupplyByCollection, middleware.IsValidAccount("collection"))
	g.GET("/paytokens", h.getPayTokens, middleware.CacheHttp(1*time.Minute))
	g.POST("/paytokens", h.registerPayToken)
}

// statusOf maps the market error taxonomy onto http statuses. Not-found is
// handled inside MakeJsonResp already.
func statusOf(err error) int {
	switch err {
	case domain.ErrCallerMismatch, domain.ErrSignerMismatch, domain.ErrSelfBid, domain.ErrNotSaleOwner:
		return http.StatusForbidden
	case domain.ErrStorageAdmissionRace:
		return http.StatusConflict
	case domain.ErrZeroDuration, domain.ErrZeroAmount, domain.ErrBidBelowReserve,
		domain.ErrUnsupportedPayToken, domain.ErrSaleWithoutPayments, domain.ErrSaleEnded,
		domain.ErrInvalidAmountFormat, domain.ErrInvalidAccountId, domain.ErrBadParamInput:
		return http.StatusBadRequest
	case domain.ErrConflict:
		return http.StatusConflict
	}
	if domain.IsInsufficientStorage(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *handler) nftOnApprove(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		TokenId    domain.TokenId   `json:"tokenId" validate:"required"`
		OwnerId    domain.AccountId `json:"ownerId" validate:"required,accountid"`
		ApprovalId uint64           `json:"approvalId"`
		Msg        string           `json:"msg" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	args := sale.SaleArgs{}
	if err := json.Unmarshal([]byte(p.Msg), &args); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	s, err := h.market.NftOnApprove(ctx, sale.ApproveArgs{
		CallerId:   domain.AccountId(c.Request().Header.Get(headerPredecessor)),
		SignerId:   domain.AccountId(c.Request().Header.Get(headerSigner)),
		OwnerId:    p.OwnerId,
		TokenId:    p.TokenId,
		ApprovalId: p.ApprovalId,
		Sale:       args,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, s)
}

func (h *handler) ftOnTransfer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		SenderId domain.AccountId   `json:"senderId" validate:"required,accountid"`
		Amount   domain.TokenAmount `json:"amount" validate:"required"`
		Msg      string             `json:"msg" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	purchase := sale.PurchaseArgs{}
	if err := json.Unmarshal([]byte(p.Msg), &purchase); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	refund, err := h.market.FtOnTransfer(ctx, sale.TransferArgs{
		CallerId: domain.AccountId(c.Request().Header.Get(headerPredecessor)),
		SenderId: p.SenderId,
		Amount:   p.Amount,
		Purchase: purchase,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	type response struct {
		Refund domain.TokenAmount `json:"refund"`
	}
	return delivery.MakeJsonResp(c, http.StatusOK, response{Refund: refund})
}

func (h *handler) removeSale(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	signer := domain.AccountId(c.Request().Header.Get(headerSigner))
	id := sale.MakeListingId(
		domain.AccountId(c.Param("collection")),
		domain.TokenId(c.Param("token")),
	)

	if err := h.market.RemoveSale(ctx, signer, id); err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, id)
}

func (h *handler) getSale(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id := sale.MakeListingId(
		domain.AccountId(c.Param("collection")),
		domain.TokenId(c.Param("token")),
	)

	s, err := h.market.GetSale(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, s)
}

type paginationParams struct {
	Offset int32 `query:"offset"`
	Limit  int32 `query:"limit"`
}

func (p *paginationParams) normalize() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

func (h *handler) getSalesByOwner(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &paginationParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.normalize()

	res, err := h.market.GetSalesByOwner(ctx, domain.AccountId(c.Param("account")), p.Offset, p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getSalesByCollection(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &paginationParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.normalize()

	res, err := h.market.GetSalesByCollection(ctx, domain.AccountId(c.Param("collection")), p.Offset, p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getSupplyByOwner(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	cnt, err := h.market.SupplyByOwner(ctx, domain.AccountId(c.Param("account")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cnt)
}

func (h *handler) getSupplyByCollection(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	cnt, err := h.market.SupplyByCollection(ctx, domain.AccountId(c.Param("collection")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cnt)
}

func (h *handler) getPayTokens(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.paytoken.List(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) registerPayToken(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &paytoken.PayToken{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.paytoken.Register(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, p)
}
