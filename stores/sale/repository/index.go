package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/sale"
	"github.com/bidmarket/goapi/service/query"
)

type indexRepoImpl struct {
	q query.Mongo
}

func NewIndexRepo(q query.Mongo) sale.IndexRepo {
	return &indexRepoImpl{q}
}

func (im *indexRepoImpl) selector(kind sale.IndexKind, key domain.AccountId, id sale.ListingId) bson.M {
	return bson.M{
		"kind":      kind,
		"key":       key.ToLower(),
		"listingId": id,
	}
}

func (im *indexRepoImpl) Add(c ctx.Ctx, kind sale.IndexKind, key domain.AccountId, id sale.ListingId) error {
	entry := sale.IndexEntry{
		Kind:      kind,
		Key:       key.ToLower(),
		ListingId: id,
	}
	// upsert on the full tuple makes duplicate adds a no-op
	if err := im.q.Upsert(c, domain.TableSaleIndexes, im.selector(kind, key, id), entry); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"kind":      kind,
			"key":       key,
			"listingId": id,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *indexRepoImpl) Remove(c ctx.Ctx, kind sale.IndexKind, key domain.AccountId, id sale.ListingId) error {
	err := im.q.Remove(c, domain.TableSaleIndexes, im.selector(kind, key, id))
	if err == query.ErrNotFound {
		// removing an absent member is a no-op
		return nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"kind":      kind,
			"key":       key,
			"listingId": id,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *indexRepoImpl) Count(c ctx.Ctx, kind sale.IndexKind, key domain.AccountId) (int, error) {
	cnt, err := im.q.Count(c, domain.TableSaleIndexes, bson.M{"kind": kind, "key": key.ToLower()})
	if err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"kind": kind,
			"key":  key,
		}).Error("q.Count failed")
		return 0, err
	}
	return cnt, nil
}

func (im *indexRepoImpl) List(c ctx.Ctx, kind sale.IndexKind, key domain.AccountId) ([]sale.ListingId, error) {
	entries := []*sale.IndexEntry{}
	if err := im.q.Search(c, domain.TableSaleIndexes, 0, 0, "listingId", bson.M{"kind": kind, "key": key.ToLower()}, &entries); err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"kind": kind,
			"key":  key,
		}).Error("q.Search failed")
		return nil, err
	}

	ids := make([]sale.ListingId, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ListingId)
	}
	return ids, nil
}
