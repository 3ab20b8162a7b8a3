package usecase

import (
	"time"

	"github.com/viney-shih/goroutines"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/paytoken"
	"github.com/bidmarket/goapi/domain/sale"
	"github.com/bidmarket/goapi/domain/storage"
	"github.com/bidmarket/goapi/service/query"
)

type MarketUsecaseCfg struct {
	SaleRepo   sale.Repo
	IndexRepo  sale.IndexRepo
	Ledger     storage.Ledger
	PaytokenUC paytoken.Usecase
	Query      query.Mongo
}

type impl struct {
	saleRepo   sale.Repo
	indexRepo  sale.IndexRepo
	ledger     storage.Ledger
	paytokenUC paytoken.Usecase
	q          query.Mongo
	timeNow    func() time.Time
}

func New(cfg *MarketUsecaseCfg) sale.MarketUsecase {
	return &impl{
		saleRepo:   cfg.SaleRepo,
		indexRepo:  cfg.IndexRepo,
		ledger:     cfg.Ledger,
		paytokenUC: cfg.PaytokenUC,
		q:          cfg.Query,
		timeNow:    time.Now,
	}
}

// NftOnApprove validates the listing request fully before any write, then
// commits the sale and both index entries in one transaction. The storage
// re-check inside the transaction turns a lost admission race into an abort
// instead of an over-quota listing.
func (im *impl) NftOnApprove(c ctx.Ctx, args sale.ApproveArgs) (*sale.Sale, error) {
	if !args.CallerId.Equals(args.Sale.CollectionId) {
		return nil, domain.ErrCallerMismatch
	}

	if !args.OwnerId.Equals(args.SignerId) {
		return nil, domain.ErrSignerMismatch
	}

	if args.Sale.Period <= 0 {
		return nil, domain.ErrZeroDuration
	}

	price, err := args.Sale.Price.Decimal()
	if err != nil || price.IsNegative() {
		return nil, domain.ErrInvalidAmountFormat
	}

	kind := sale.KindNoPayments
	if args.Sale.TokenType != nil {
		supported, err := im.paytokenUC.IsSupported(c, *args.Sale.TokenType)
		if err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"tokenType": *args.Sale.TokenType,
			}).Error("paytokenUC.IsSupported failed")
			return nil, err
		}
		if !supported {
			return nil, domain.ErrUnsupportedPayToken
		}
		kind = sale.KindWithPayments
	}

	paid, err := im.ledger.PaidAmount(c, args.OwnerId)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"ownerId": args.OwnerId,
		}).Error("ledger.PaidAmount failed")
		return nil, err
	}

	supply, err := im.indexRepo.Count(c, sale.IndexByOwner, args.OwnerId)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"ownerId": args.OwnerId,
		}).Error("indexRepo.Count failed")
		return nil, err
	}

	required := im.ledger.RequiredFor(supply + 1)
	if paid.LessThan(required) {
		return nil, &domain.InsufficientStorageError{
			Paid:     paid,
			Required: required,
			Rate:     im.ledger.CostPerSale(),
		}
	}

	var payToken *domain.AccountId
	if args.Sale.TokenType != nil {
		payToken = args.Sale.TokenType.ToLower().Ptr()
	}

	now := im.timeNow()
	s := &sale.Sale{
		ListingId:    sale.MakeListingId(args.Sale.CollectionId, args.TokenId),
		OwnerId:      args.OwnerId.ToLower(),
		ApprovalId:   args.ApprovalId,
		CollectionId: args.Sale.CollectionId.ToLower(),
		TokenId:      args.TokenId,
		Kind:         kind,
		PayToken:     payToken,
		Price:        args.Sale.Price,
		Bids:         []sale.Bid{},
		CreatedAt:    now,
		EndAt:        now.Add(time.Duration(args.Sale.Period) * time.Millisecond),
	}

	err = im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.saleRepo.Create(c, s); err != nil {
			return err
		}
		if err := im.indexRepo.Add(c, sale.IndexByOwner, s.OwnerId, s.ListingId); err != nil {
			return err
		}
		if err := im.indexRepo.Add(c, sale.IndexByCollection, s.CollectionId, s.ListingId); err != nil {
			return err
		}

		// re-check against the occupancy the other listings reached while we
		// were validating; losing the race aborts the whole commit
		cnt, err := im.indexRepo.Count(c, sale.IndexByOwner, s.OwnerId)
		if err != nil {
			return err
		}
		occupied := im.ledger.RequiredFor(cnt - 1)
		if !paid.GreaterThan(occupied) {
			return domain.ErrStorageAdmissionRace
		}
		return nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": s.ListingId,
		}).Error("listing commit failed")
		return nil, err
	}

	return s, nil
}

// FtOnTransfer applies an incoming bid. The read and the single write run in
// one transaction so no caller observes a partially updated sale. It reports
// full consumption ("0" refund) on success.
func (im *impl) FtOnTransfer(c ctx.Ctx, args sale.TransferArgs) (domain.TokenAmount, error) {
	id := sale.MakeListingId(args.Purchase.CollectionId, args.Purchase.TokenId)

	amount, err := args.Amount.Decimal()
	if err != nil {
		return args.Amount, domain.ErrInvalidAmountFormat
	}

	err = im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		s, err := im.saleRepo.FindOne(c, id)
		if err != nil {
			return err
		}

		if s.OwnerId.Equals(args.SenderId) {
			return domain.ErrSelfBid
		}

		if !amount.IsPositive() {
			return domain.ErrZeroAmount
		}

		if s.IsExpired(im.timeNow()) {
			return domain.ErrSaleEnded
		}

		if s.Kind != sale.KindWithPayments {
			return domain.ErrSaleWithoutPayments
		}
		if !s.AcceptsPayToken(args.CallerId) {
			return domain.ErrUnsupportedPayToken
		}

		reserve := s.Price.DecimalOrZero()
		if reserve.IsPositive() && amount.LessThan(reserve) {
			return domain.ErrBidBelowReserve
		}

		// latest bid per pay token wins; superseded bids are not refunded
		s.PutBid(sale.Bid{
			PayToken: args.CallerId.ToLower(),
			Bidder:   args.SenderId.ToLower(),
			Price:    args.Amount,
		})
		return im.saleRepo.UpdateBids(c, id, s.Bids)
	})
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
				"senderId":  args.SenderId,
			}).Error("bid commit failed")
		}
		return args.Amount, err
	}

	return domain.TokenAmount("0"), nil
}

func (im *impl) RemoveSale(c ctx.Ctx, signerId domain.AccountId, id sale.ListingId) error {
	s, err := im.saleRepo.FindOne(c, id)
	if err != nil {
		return err
	}

	if !s.OwnerId.Equals(signerId) {
		return domain.ErrNotSaleOwner
	}

	return im.removeSale(c, s)
}

// removeSale is the atomic deletion contract: registry entry and both index
// entries go in one transaction.
func (im *impl) removeSale(c ctx.Ctx, s *sale.Sale) error {
	err := im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.saleRepo.Delete(c, s.ListingId); err != nil {
			return err
		}
		if err := im.indexRepo.Remove(c, sale.IndexByOwner, s.OwnerId, s.ListingId); err != nil {
			return err
		}
		return im.indexRepo.Remove(c, sale.IndexByCollection, s.CollectionId, s.ListingId)
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": s.ListingId,
		}).Error("removal commit failed")
		return err
	}
	return nil
}

func (im *impl) RemoveExpired(c ctx.Ctx, now time.Time, limit int32) (int, error) {
	expired, err := im.saleRepo.FindAll(c,
		sale.WithEndTimeLT(now),
		sale.WithPagination(0, limit),
	)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("saleRepo.FindAll failed")
		return 0, err
	}

	if len(expired) == 0 {
		return 0, nil
	}

	// batch remove expired sales
	b := goroutines.NewBatch(10, goroutines.WithBatchSize(len(expired)))
	defer b.Close()
	for i := 0; i < len(expired); i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			return nil, im.removeSale(c, expired[idx])
		})
	}
	b.QueueComplete()

	removed := 0
	var removeErr error
	for ret := range b.Results() {
		if err := ret.Error(); err != nil {
			// an already-removed sale lost a race with another sweep pass
			if err == domain.ErrNotFound {
				continue
			}
			removeErr = err
			continue
		}
		removed++
	}
	return removed, removeErr
}

func (im *impl) GetSale(c ctx.Ctx, id sale.ListingId) (*sale.Sale, error) {
	return im.saleRepo.FindOne(c, id)
}

func (im *impl) GetSalesByOwner(c ctx.Ctx, ownerId domain.AccountId, offset, limit int32) ([]*sale.Sale, error) {
	return im.saleRepo.FindAll(c,
		sale.WithOwnerId(ownerId),
		sale.WithPagination(offset, limit),
	)
}

func (im *impl) GetSalesByCollection(c ctx.Ctx, collectionId domain.AccountId, offset, limit int32) ([]*sale.Sale, error) {
	return im.saleRepo.FindAll(c,
		sale.WithCollectionId(collectionId),
		sale.WithPagination(offset, limit),
	)
}

func (im *impl) SupplyByOwner(c ctx.Ctx, ownerId domain.AccountId) (int, error) {
	return im.indexRepo.Count(c, sale.IndexByOwner, ownerId)
}

func (im *impl) SupplyByCollection(c ctx.Ctx, collectionId domain.AccountId) (int, error) {
	return im.indexRepo.Count(c, sale.IndexByCollection, collectionId)
}
