package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/sale"
	"github.com/bidmarket/goapi/service/query"
)

type saleRepoImpl struct {
	q query.Mongo
}

func NewSaleRepo(q query.Mongo) sale.Repo {
	return &saleRepoImpl{q}
}

func (im *saleRepoImpl) makeQuery(opts ...sale.FindAllOptionsFunc) (bson.M, error) {
	options, err := sale.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.OwnerId != nil {
		query["ownerId"] = options.OwnerId.ToLower()
	}

	if options.CollectionId != nil {
		query["collectionId"] = options.CollectionId.ToLower()
	}

	if options.EndTimeLT != nil {
		query["endAt"] = bson.M{"$lt": *options.EndTimeLT}
	}

	return query, nil
}

func (im *saleRepoImpl) FindOne(c ctx.Ctx, id sale.ListingId) (*sale.Sale, error) {
	res := &sale.Sale{}
	err := im.q.FindOne(c, domain.TableSales, bson.M{"listingId": id}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *saleRepoImpl) FindAll(c ctx.Ctx, opts ...sale.FindAllOptionsFunc) ([]*sale.Sale, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery failed")
		return nil, err
	}

	options, _ := sale.GetFindAllOptions(opts...)
	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}
	sort := "endAt"
	if options.Sort != nil {
		sort = *options.Sort
	}

	res := []*sale.Sale{}
	if err := im.q.Search(c, domain.TableSales, offset, limit, sort, query, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (im *saleRepoImpl) Create(c ctx.Ctx, s *sale.Sale) error {
	if err := im.q.Insert(c, domain.TableSales, s); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": s.ListingId,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *saleRepoImpl) UpdateBids(c ctx.Ctx, id sale.ListingId, bids []sale.Bid) error {
	err := im.q.Patch(c, domain.TableSales, bson.M{"listingId": id}, bson.M{"bids": bids})
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *saleRepoImpl) Delete(c ctx.Ctx, id sale.ListingId) error {
	err := im.q.Remove(c, domain.TableSales, bson.M{"listingId": id})
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}
