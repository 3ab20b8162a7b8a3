package sale

import (
	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
)

// IndexKind selects one of the two secondary indexes over active sales.
type IndexKind string

const (
	IndexByOwner      IndexKind = "byOwner"
	IndexByCollection IndexKind = "byCollection"
)

// IndexEntry is one `(kind, key) -> listingId` membership record. The tuple
// is unique, which is what makes Add idempotent.
type IndexEntry struct {
	Kind      IndexKind        `json:"kind" bson:"kind"`
	Key       domain.AccountId `json:"key" bson:"key"`
	ListingId ListingId        `json:"listingId" bson:"listingId"`
}

// IndexRepo maintains the by-owner and by-collection sale indexes.
// Add is a no-op for an already-present id, Remove for an absent one.
// Count must not scan the member set.
type IndexRepo interface {
	Add(c ctx.Ctx, kind IndexKind, key domain.AccountId, id ListingId) error
	Remove(c ctx.Ctx, kind IndexKind, key domain.AccountId, id ListingId) error
	Count(c ctx.Ctx, kind IndexKind, key domain.AccountId) (int, error)
	List(c ctx.Ctx, kind IndexKind, key domain.AccountId) ([]ListingId, error)
}
