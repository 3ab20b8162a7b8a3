package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/paytoken"
	"github.com/bidmarket/goapi/service/cache"
	"github.com/bidmarket/goapi/service/cache/provider"
	"github.com/bidmarket/goapi/service/cache/provider/compound"
	"github.com/bidmarket/goapi/service/cache/provider/primitive"
	redisCache "github.com/bidmarket/goapi/service/cache/provider/redis"
	"github.com/bidmarket/goapi/service/query"
	"github.com/bidmarket/goapi/service/redis"
)

type impl struct {
	q          query.Mongo
	tokenCache cache.Service
}

// NewPayTokenRepo creates new pay token repo. Accepted token types change
// rarely, so reads go through the compound cache.
func NewPayTokenRepo(q query.Mongo, redisSvc redis.Service) paytoken.Repo {
	cacheProviders := []provider.Provider{
		primitive.NewPrimitive("paytoken", 16),
	}

	if redisSvc != nil {
		cacheProviders = append(cacheProviders, redisCache.NewRedis(redisSvc))
	}

	return &impl{
		q: q,
		tokenCache: cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Minute,
			Pfx:   "paytoken",
			Cache: compound.NewCompound(cacheProviders),
		}),
	}
}

func (im *impl) FindOne(c ctx.Ctx, accountId domain.AccountId) (*paytoken.PayToken, error) {
	res := &paytoken.PayToken{}

	if err := im.tokenCache.GetByFunc(c, accountId.ToLowerStr(), res, func() (interface{}, error) {
		return im.findOne(c, accountId)
	}); err != nil {
		if err == domain.ErrNotFound {
			return nil, err
		}
		c.WithFields(log.Fields{
			"err":       err,
			"accountId": accountId,
		}).Error("tokenCache.GetByFunc failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) findOne(c ctx.Ctx, accountId domain.AccountId) (*paytoken.PayToken, error) {
	res := &paytoken.PayToken{}
	err := im.q.FindOne(c, domain.TablePayTokens, bson.M{"accountId": accountId.ToLower()}, res)
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

func (im *impl) FindAll(c ctx.Ctx) ([]*paytoken.PayToken, error) {
	res := []*paytoken.PayToken{}
	if err := im.q.Search(c, domain.TablePayTokens, 0, 0, "accountId", bson.M{}, &res); err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Upsert(c ctx.Ctx, t *paytoken.PayToken) error {
	t.AccountId = t.AccountId.ToLower()
	if err := im.q.Upsert(c, domain.TablePayTokens, bson.M{"accountId": t.AccountId}, t); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"accountId": t.AccountId,
		}).Error("q.Upsert failed")
		return err
	}
	if err := im.tokenCache.Del(c, t.AccountId.ToLowerStr()); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"accountId": t.AccountId,
		}).Error("tokenCache.Del failed")
	}
	return nil
}
