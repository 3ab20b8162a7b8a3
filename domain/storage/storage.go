package storage

import (
	"github.com/shopspring/decimal"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
)

// Deposit is the cumulative storage balance one account has paid in.
type Deposit struct {
	AccountId domain.AccountId   `json:"accountId" bson:"accountId"`
	Amount    domain.TokenAmount `json:"amount" bson:"amount"`
}

// Balance is the read view exposed to accounts: what they paid, the per-sale
// rate, and how many active sales currently consume the quota.
type Balance struct {
	AccountId   domain.AccountId   `json:"accountId"`
	Paid        domain.TokenAmount `json:"paid"`
	CostPerSale domain.TokenAmount `json:"costPerSale"`
	ActiveSales int                `json:"activeSales"`
}

type Repo interface {
	// Get returns domain.ErrNotFound for an account with no deposit.
	Get(ctx.Ctx, domain.AccountId) (*Deposit, error)
	// Add increases the deposit, creating it when absent.
	Add(c ctx.Ctx, accountId domain.AccountId, amount decimal.Decimal) error
	// Set overwrites the deposit balance.
	Set(c ctx.Ctx, accountId domain.AccountId, amount decimal.Decimal) error
}

// Ledger answers storage admission checks and handles deposits. Reads treat
// an absent account as a zero balance.
type Ledger interface {
	PaidAmount(ctx.Ctx, domain.AccountId) (decimal.Decimal, error)
	CostPerSale() decimal.Decimal
	RequiredFor(nSales int) decimal.Decimal

	Deposit(c ctx.Ctx, accountId domain.AccountId, amount domain.TokenAmount) (*Balance, error)
	// Withdraw refunds everything above the quota covering the account's
	// active sales and returns the refunded amount.
	Withdraw(c ctx.Ctx, accountId domain.AccountId) (domain.TokenAmount, error)
	GetBalance(ctx.Ctx, domain.AccountId) (*Balance, error)
}
