package paytoken

import (
	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
)

// PayToken is a fungible token contract this market accepts bids in.
type PayToken struct {
	AccountId domain.AccountId `json:"accountId" bson:"accountId"`
	Symbol    string           `json:"symbol" bson:"symbol"`
	Decimals  int32            `json:"decimals" bson:"decimals"`
}

type Repo interface {
	FindOne(ctx.Ctx, domain.AccountId) (*PayToken, error)
	FindAll(ctx.Ctx) ([]*PayToken, error)
	Upsert(ctx.Ctx, *PayToken) error
}

type Usecase interface {
	IsSupported(ctx.Ctx, domain.AccountId) (bool, error)
	List(ctx.Ctx) ([]*PayToken, error)
	Register(ctx.Ctx, *PayToken) error
}
