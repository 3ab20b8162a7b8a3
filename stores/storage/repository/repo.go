package repository

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/storage"
	"github.com/bidmarket/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

// New creates new storage deposit repo. Deposits are intentionally not
// cached: they gate listing admission and must reflect the latest write.
func New(q query.Mongo) storage.Repo {
	return &impl{q}
}

func (im *impl) Get(c ctx.Ctx, accountId domain.AccountId) (*storage.Deposit, error) {
	res := &storage.Deposit{}
	err := im.q.FindOne(c, domain.TableStorageDeposits, bson.M{"accountId": accountId.ToLower()}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"accountId": accountId,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Add(c ctx.Ctx, accountId domain.AccountId, amount decimal.Decimal) error {
	cur, err := im.Get(c, accountId)
	if err == domain.ErrNotFound {
		cur = &storage.Deposit{AccountId: accountId.ToLower(), Amount: "0"}
	} else if err != nil {
		return err
	}

	next := cur.Amount.DecimalOrZero().Add(amount)
	return im.Set(c, accountId, next)
}

func (im *impl) Set(c ctx.Ctx, accountId domain.AccountId, amount decimal.Decimal) error {
	deposit := storage.Deposit{
		AccountId: accountId.ToLower(),
		Amount:    domain.AmountFromDecimal(amount),
	}
	if err := im.q.Upsert(c, domain.TableStorageDeposits, bson.M{"accountId": accountId.ToLower()}, deposit); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"accountId": accountId,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
