package sale

import (
	"fmt"
	"time"

	"golang.org/x/xerrors"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
)

// Delimiter joins a collection contract id and a token id into a listing id.
// It never appears inside a valid account id (see domain.AccountId.IsValid).
const Delimiter = ":"

// ListingId is the composite registry key `collectionId:tokenId`.
type ListingId string

func MakeListingId(collection domain.AccountId, token domain.TokenId) ListingId {
	return ListingId(fmt.Sprintf("%s%s%s", collection, Delimiter, token))
}

func (id ListingId) String() string {
	return string(id)
}

// Kind tags whether a sale carries a payment mechanism. A sale listed without
// an accepted pay token is created but rejects every bid.
type Kind string

const (
	KindWithPayments Kind = "withPayments"
	KindNoPayments   Kind = "noPayments"
)

// Bid is the current highest offer for one pay token.
type Bid struct {
	PayToken domain.AccountId   `json:"payToken" bson:"payToken"`
	Bidder   domain.AccountId   `json:"bidder" bson:"bidder"`
	Price    domain.TokenAmount `json:"price" bson:"price"`
}

type Sale struct {
	ListingId    ListingId          `json:"listingId" bson:"listingId"`
	OwnerId      domain.AccountId   `json:"ownerId" bson:"ownerId"`
	ApprovalId   uint64             `json:"approvalId" bson:"approvalId"`
	CollectionId domain.AccountId   `json:"collectionId" bson:"collectionId"`
	TokenId      domain.TokenId     `json:"tokenId" bson:"tokenId"`
	Kind         Kind               `json:"kind" bson:"kind"`
	PayToken     *domain.AccountId  `json:"payToken,omitempty" bson:"payToken,omitempty"`
	// Price is the reserve price. "0" disables the reserve check.
	Price     domain.TokenAmount `json:"price" bson:"price"`
	Bids      []Bid              `json:"bids" bson:"bids"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	EndAt     time.Time          `json:"endAt" bson:"endAt"`
}

// AcceptsPayToken reports whether a bid denominated in token may be applied.
func (s *Sale) AcceptsPayToken(token domain.AccountId) bool {
	if s.Kind != KindWithPayments || s.PayToken == nil {
		return false
	}
	return s.PayToken.Equals(token)
}

func (s *Sale) IsExpired(now time.Time) bool {
	return now.After(s.EndAt)
}

// BidFor returns the current highest bid for the pay token, if any.
func (s *Sale) BidFor(token domain.AccountId) (Bid, bool) {
	for _, b := range s.Bids {
		if b.PayToken.Equals(token) {
			return b, true
		}
	}
	return Bid{}, false
}

// PutBid records or replaces the bid slot for bid.PayToken. The latest value
// wins unconditionally; superseded bids are not refunded here.
func (s *Sale) PutBid(bid Bid) {
	for i, b := range s.Bids {
		if b.PayToken.Equals(bid.PayToken) {
			s.Bids[i] = bid
			return
		}
	}
	s.Bids = append(s.Bids, bid)
}

type FindAllOptions struct {
	OwnerId      *domain.AccountId
	CollectionId *domain.AccountId
	EndTimeLT    *time.Time
	Offset       *int32
	Limit        *int32
	Sort         *string
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithOwnerId(ownerId domain.AccountId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.OwnerId = &ownerId
		return nil
	}
}

func WithCollectionId(collectionId domain.AccountId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.CollectionId = &collectionId
		return nil
	}
}

func WithEndTimeLT(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.EndTimeLT = &t
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if offset < 0 || limit < 0 {
			return xerrors.Errorf("invalid pagination")
		}
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Sort = &sort
		return nil
	}
}

// Repo is the sale registry. Composite mutations spanning the registry and
// the secondary indexes are composed by the usecase inside one transaction.
type Repo interface {
	FindOne(ctx.Ctx, ListingId) (*Sale, error)
	FindAll(ctx.Ctx, ...FindAllOptionsFunc) ([]*Sale, error)
	Create(ctx.Ctx, *Sale) error
	UpdateBids(ctx.Ctx, ListingId, []Bid) error
	Delete(ctx.Ctx, ListingId) error
}
