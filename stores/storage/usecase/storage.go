package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/sale"
	"github.com/bidmarket/goapi/domain/storage"
)

type StorageLedgerCfg struct {
	Repo        storage.Repo
	IndexRepo   sale.IndexRepo
	CostPerSale decimal.Decimal
}

type impl struct {
	repo        storage.Repo
	indexRepo   sale.IndexRepo
	costPerSale decimal.Decimal
}

func New(cfg *StorageLedgerCfg) storage.Ledger {
	return &impl{
		repo:        cfg.Repo,
		indexRepo:   cfg.IndexRepo,
		costPerSale: cfg.CostPerSale,
	}
}

func (im *impl) PaidAmount(c ctx.Ctx, accountId domain.AccountId) (decimal.Decimal, error) {
	deposit, err := im.repo.Get(c, accountId)
	if err == domain.ErrNotFound {
		return decimal.Zero, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"accountId": accountId,
		}).Error("repo.Get failed")
		return decimal.Zero, err
	}
	return deposit.Amount.Decimal()
}

func (im *impl) CostPerSale() decimal.Decimal {
	return im.costPerSale
}

func (im *impl) RequiredFor(nSales int) decimal.Decimal {
	if nSales <= 0 {
		return decimal.Zero
	}
	return im.costPerSale.Mul(decimal.NewFromInt(int64(nSales)))
}

func (im *impl) Deposit(c ctx.Ctx, accountId domain.AccountId, amount domain.TokenAmount) (*storage.Balance, error) {
	d, err := amount.Decimal()
	if err != nil {
		return nil, domain.ErrInvalidAmountFormat
	}
	if !d.IsPositive() {
		return nil, domain.ErrZeroAmount
	}

	if err := im.repo.Add(c, accountId, d); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"accountId": accountId,
		}).Error("repo.Add failed")
		return nil, err
	}

	return im.GetBalance(c, accountId)
}

// Withdraw refunds everything above the quota covering the account's active
// sales. An account with no surplus gets "0" back and keeps its balance.
func (im *impl) Withdraw(c ctx.Ctx, accountId domain.AccountId) (domain.TokenAmount, error) {
	paid, err := im.PaidAmount(c, accountId)
	if err != nil {
		return "0", err
	}

	active, err := im.indexRepo.Count(c, sale.IndexByOwner, accountId)
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"accountId": accountId,
		}).Error("indexRepo.Count failed")
		return "0", err
	}

	needed := im.RequiredFor(active)
	refund := paid.Sub(needed)
	if !refund.IsPositive() {
		return "0", nil
	}

	if err := im.repo.Set(c, accountId, needed); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"accountId": accountId,
		}).Error("repo.Set failed")
		return "0", err
	}

	return domain.AmountFromDecimal(refund), nil
}

func (im *impl) GetBalance(c ctx.Ctx, accountId domain.AccountId) (*storage.Balance, error) {
	paid, err := im.PaidAmount(c, accountId)
	if err != nil {
		return nil, err
	}

	active, err := im.indexRepo.Count(c, sale.IndexByOwner, accountId)
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"accountId": accountId,
		}).Error("indexRepo.Count failed")
		return nil, err
	}

	return &storage.Balance{
		AccountId:   accountId.ToLower(),
		Paid:        domain.AmountFromDecimal(paid),
		CostPerSale: domain.AmountFromDecimal(im.costPerSale),
		ActiveSales: active,
	}, nil
}
