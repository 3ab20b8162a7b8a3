package sale

import (
	"time"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
)

// SaleArgs is the listing payload relayed inside the nft approval callback.
type SaleArgs struct {
	// Price is the reserve price; "0" means no reserve.
	Price domain.TokenAmount `json:"price"`
	// Period is the requested sale duration in milliseconds.
	Period int64 `json:"period"`
	// TokenType is the fungible token contract accepted for bids. When nil
	// the sale is created without a payment mechanism.
	TokenType    *domain.AccountId `json:"tokenType,omitempty"`
	CollectionId domain.AccountId  `json:"collectionId"`
}

// ApproveArgs carries one nft approval callback: the relaying caller, the
// transaction signer, and the approval itself.
type ApproveArgs struct {
	CallerId   domain.AccountId
	SignerId   domain.AccountId
	OwnerId    domain.AccountId
	TokenId    domain.TokenId
	ApprovalId uint64
	Sale       SaleArgs
}

// PurchaseArgs identifies the listing a fungible token transfer is bidding on.
type PurchaseArgs struct {
	CollectionId domain.AccountId `json:"collectionId"`
	TokenId      domain.TokenId   `json:"tokenId"`
}

// TransferArgs carries one ft transfer callback. CallerId is the fungible
// token contract that relayed it and doubles as the pay token identity.
type TransferArgs struct {
	CallerId domain.AccountId
	SenderId domain.AccountId
	Amount   domain.TokenAmount
	Purchase PurchaseArgs
}

// MarketUsecase is the accounting core: listing intake, bid intake, the
// atomic removal contract and the index-backed views.
type MarketUsecase interface {
	// NftOnApprove validates a listing request and commits the new sale
	// together with both index entries in one transaction.
	NftOnApprove(ctx.Ctx, ApproveArgs) (*Sale, error)

	// FtOnTransfer validates an incoming bid and applies it to the matching
	// sale. It returns the unconsumed amount, which is "0" on success.
	FtOnTransfer(ctx.Ctx, TransferArgs) (domain.TokenAmount, error)

	// RemoveSale deletes the sale and both index entries atomically. Only
	// the sale owner may remove it; the sweeper passes the owner itself.
	RemoveSale(c ctx.Ctx, signerId domain.AccountId, id ListingId) error

	// RemoveExpired evicts up to limit sales whose end time has passed,
	// each through the same atomic removal contract.
	RemoveExpired(c ctx.Ctx, now time.Time, limit int32) (int, error)

	GetSale(ctx.Ctx, ListingId) (*Sale, error)
	GetSalesByOwner(c ctx.Ctx, ownerId domain.AccountId, offset, limit int32) ([]*Sale, error)
	GetSalesByCollection(c ctx.Ctx, collectionId domain.AccountId, offset, limit int32) ([]*Sale, error)
	SupplyByOwner(c ctx.Ctx, ownerId domain.AccountId) (int, error)
	SupplyByCollection(c ctx.Ctx, collectionId domain.AccountId) (int, error)
}
