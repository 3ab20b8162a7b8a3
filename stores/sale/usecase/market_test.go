package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
	mPaytoken "github.com/bidmarket/goapi/domain/paytoken/mocks"
	"github.com/bidmarket/goapi/domain/sale"
	mSale "github.com/bidmarket/goapi/domain/sale/mocks"
	mStorage "github.com/bidmarket/goapi/domain/storage/mocks"
	mQuery "github.com/bidmarket/goapi/service/query/mocks"
)

var (
	testNow  = time.Unix(1700000000, 0).UTC()
	costUnit = decimal.RequireFromString("10000000000000000000000")

	alice  = domain.AccountId("alice")
	bob    = domain.AccountId("bob")
	nft    = domain.AccountId("nft.market")
	usdt   = domain.AccountId("usdt.tether-token")
	wnear  = domain.AccountId("wrap.near")
	token1 = domain.TokenId("token-1")
)

type marketSuite struct {
	suite.Suite

	saleRepo   *mSale.Repo
	indexRepo  *mSale.IndexRepo
	ledger     *mStorage.Ledger
	paytokenUC *mPaytoken.Usecase
	query      *mQuery.Mongo

	im *impl
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(marketSuite))
}

func (s *marketSuite) SetupTest() {
	s.saleRepo = &mSale.Repo{}
	s.indexRepo = &mSale.IndexRepo{}
	s.ledger = &mStorage.Ledger{}
	s.paytokenUC = &mPaytoken.Usecase{}
	s.query = &mQuery.Mongo{}

	s.im = New(&MarketUsecaseCfg{
		SaleRepo:   s.saleRepo,
		IndexRepo:  s.indexRepo,
		Ledger:     s.ledger,
		PaytokenUC: s.paytokenUC,
		Query:      s.query,
	}).(*impl)
	s.im.timeNow = func() time.Time { return testNow }
}

// passthroughTxn makes the mocked transaction execute its body.
func (s *marketSuite) passthroughTxn() {
	s.query.On("RunWithTransaction", mock.Anything, mock.Anything).Return(
		func(c ctx.Ctx, run func(ctx.Ctx) error) error {
			return run(c)
		},
	)
}

func (s *marketSuite) approveArgs() sale.ApproveArgs {
	return sale.ApproveArgs{
		CallerId:   nft,
		SignerId:   alice,
		OwnerId:    alice,
		TokenId:    token1,
		ApprovalId: 7,
		Sale: sale.SaleArgs{
			Price:        "100",
			Period:       3600000,
			TokenType:    &usdt,
			CollectionId: nft,
		},
	}
}

func (s *marketSuite) TestNftOnApprove() {
	c := ctx.Background()

	s.passthroughTxn()
	s.paytokenUC.On("IsSupported", mock.Anything, usdt).Return(true, nil)
	s.ledger.On("PaidAmount", mock.Anything, alice).Return(costUnit, nil)
	s.ledger.On("RequiredFor", 1).Return(costUnit)
	s.ledger.On("RequiredFor", 0).Return(decimal.Zero)
	s.indexRepo.On("Count", mock.Anything, sale.IndexByOwner, alice).Return(0, nil).Once()
	s.saleRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	s.indexRepo.On("Add", mock.Anything, sale.IndexByOwner, alice, mock.Anything).Return(nil)
	s.indexRepo.On("Add", mock.Anything, sale.IndexByCollection, nft, mock.Anything).Return(nil)
	s.indexRepo.On("Count", mock.Anything, sale.IndexByOwner, alice).Return(1, nil).Once()

	res, err := s.im.NftOnApprove(c, s.approveArgs())
	s.NoError(err)
	s.Equal(sale.MakeListingId(nft, token1), res.ListingId)
	s.Equal(alice, res.OwnerId)
	s.Equal(sale.KindWithPayments, res.Kind)
	s.Equal(usdt, *res.PayToken)
	s.Equal(testNow, res.CreatedAt)
	s.Equal(testNow.Add(time.Hour), res.EndAt)
	s.True(res.EndAt.After(res.CreatedAt))
	s.Empty(res.Bids)
}

func (s *marketSuite) TestNftOnApproveWithoutPayToken() {
	c := ctx.Background()

	args := s.approveArgs()
	args.Sale.TokenType = nil

	s.passthroughTxn()
	s.ledger.On("PaidAmount", mock.Anything, alice).Return(costUnit, nil)
	s.ledger.On("RequiredFor", 1).Return(costUnit)
	s.ledger.On("RequiredFor", 0).Return(decimal.Zero)
	s.indexRepo.On("Count", mock.Anything, sale.IndexByOwner, alice).Return(0, nil).Once()
	s.saleRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	s.indexRepo.On("Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.indexRepo.On("Count", mock.Anything, sale.IndexByOwner, alice).Return(1, nil).Once()

	res, err := s.im.NftOnApprove(c, args)
	s.NoError(err)
	s.Equal(sale.KindNoPayments, res.Kind)
	s.Nil(res.PayToken)
	s.paytokenUC.AssertNotCalled(s.T(), "IsSupported", mock.Anything, mock.Anything)
}

func (s *marketSuite) TestNftOnApproveCallerMismatch() {
	args := s.approveArgs()
	args.CallerId = usdt

	_, err := s.im.NftOnApprove(ctx.Background(), args)
	s.Equal(domain.ErrCallerMismatch, err)
}

func (s *marketSuite) TestNftOnApproveSignerMismatch() {
	args := s.approveArgs()
	args.SignerId = bob

	_, err := s.im.NftOnApprove(ctx.Background(), args)
	s.Equal(domain.ErrSignerMismatch, err)
}

func (s *marketSuite) TestNftOnApproveZeroDuration() {
	args := s.approveArgs()
	args.Sale.Period = 0

	_, err := s.im.NftOnApprove(ctx.Background(), args)
	s.Equal(domain.ErrZeroDuration, err)
}

func (s *marketSuite) TestNftOnApproveBadPrice() {
	args := s.approveArgs()
	args.Sale.Price = "1.5"

	_, err := s.im.NftOnApprove(ctx.Background(), args)
	s.Equal(domain.ErrInvalidAmountFormat, err)
}

func (s *marketSuite) TestNftOnApproveUnsupportedPayToken() {
	s.paytokenUC.On("IsSupported", mock.Anything, usdt).Return(false, nil)

	_, err := s.im.NftOnApprove(ctx.Background(), s.approveArgs())
	s.Equal(domain.ErrUnsupportedPayToken, err)
}

func (s *marketSuite) TestNftOnApproveInsufficientStorage() {
	s.paytokenUC.On("IsSupported", mock.Anything, usdt).Return(true, nil)
	s.ledger.On("PaidAmount", mock.Anything, alice).Return(costUnit, nil)
	s.ledger.On("CostPerSale").Return(costUnit)
	s.ledger.On("RequiredFor", 2).Return(costUnit.Mul(decimal.NewFromInt(2)))
	s.indexRepo.On("Count", mock.Anything, sale.IndexByOwner, alice).Return(1, nil)

	_, err := s.im.NftOnApprove(ctx.Background(), s.approveArgs())
	s.True(domain.IsInsufficientStorage(err))

	// a rejected listing leaves no partial state behind
	s.saleRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	s.indexRepo.AssertNotCalled(s.T(), "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *marketSuite) TestNftOnApproveAdmissionRace() {
	c := ctx.Background()

	s.passthroughTxn()
	s.paytokenUC.On("IsSupported", mock.Anything, usdt).Return(true, nil)
	s.ledger.On("PaidAmount", mock.Anything, alice).Return(costUnit, nil)
	s.ledger.On("RequiredFor", 1).Return(costUnit)
	s.indexRepo.On("Count", mock.Anything, sale.IndexByOwner, alice).Return(0, nil).Once()
	s.saleRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	s.indexRepo.On("Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	// another listing squeezed in between validation and commit
	s.indexRepo.On("Count", mock.Anything, sale.IndexByOwner, alice).Return(2, nil).Once()

	_, err := s.im.NftOnApprove(c, s.approveArgs())
	s.Equal(domain.ErrStorageAdmissionRace, err)
}

func (s *marketSuite) listedSale() *sale.Sale {
	return &sale.Sale{
		ListingId:    sale.MakeListingId(nft, token1),
		OwnerId:      alice,
		ApprovalId:   7,
		CollectionId: nft,
		TokenId:      token1,
		Kind:         sale.KindWithPayments,
		PayToken:     &usdt,
		Price:        "100",
		Bids:         []sale.Bid{},
		CreatedAt:    testNow.Add(-time.Hour),
		EndAt:        testNow.Add(time.Hour),
	}
}

func (s *marketSuite) transferArgs() sale.TransferArgs {
	return sale.TransferArgs{
		CallerId: usdt,
		SenderId: bob,
		Amount:   "150",
		Purchase: sale.PurchaseArgs{
			CollectionId: nft,
			TokenId:      token1,
		},
	}
}

func (s *marketSuite) TestFtOnTransfer() {
	c := ctx.Background()
	id := sale.MakeListingId(nft, token1)

	s.passthroughTxn()
	s.saleRepo.On("FindOne", mock.Anything, id).Return(s.listedSale(), nil)
	s.saleRepo.On("UpdateBids", mock.Anything, id, []sale.Bid{
		{PayToken: usdt, Bidder: bob, Price: "150"},
	}).Return(nil)

	refund, err := s.im.FtOnTransfer(c, s.transferArgs())
	s.NoError(err)
	s.Equal(domain.TokenAmount("0"), refund)
}

func (s *marketSuite) TestFtOnTransferReplacesBidPerPayToken() {
	c := ctx.Background()
	id := sale.MakeListingId(nft, token1)

	listed := s.listedSale()
	listed.Bids = []sale.Bid{{PayToken: usdt, Bidder: alice, Price: "120"}}

	s.passthroughTxn()
	s.saleRepo.On("FindOne", mock.Anything, id).Return(listed, nil)
	// the previous bid slot is overwritten, not appended to
	s.saleRepo.On("UpdateBids", mock.Anything, id, []sale.Bid{
		{PayToken: usdt, Bidder: bob, Price: "150"},
	}).Return(nil)

	refund, err := s.im.FtOnTransfer(c, s.transferArgs())
	s.NoError(err)
	s.Equal(domain.TokenAmount("0"), refund)
}

func (s *marketSuite) TestFtOnTransferEqualToReserve() {
	c := ctx.Background()
	id := sale.MakeListingId(nft, token1)

	s.passthroughTxn()
	s.saleRepo.On("FindOne", mock.Anything, id).Return(s.listedSale(), nil)
	s.saleRepo.On("UpdateBids", mock.Anything, id, mock.Anything).Return(nil)

	args := s.transferArgs()
	args.Amount = "100"

	refund, err := s.im.FtOnTransfer(c, args)
	s.NoError(err)
	s.Equal(domain.TokenAmount("0"), refund)
}

func (s *marketSuite) TestFtOnTransferBelowReserve() {
	s.passthroughTxn()
	s.saleRepo.On("FindOne", mock.Anything, mock.Anything).Return(s.listedSale(), nil)

	args := s.transferArgs()
	args.Amount = "99"

	refund, err := s.im.FtOnTransfer(ctx.Background(), args)
	s.Equal(domain.ErrBidBelowReserve, err)
	s.Equal(args.Amount, refund)
	s.saleRepo.AssertNotCalled(s.T(), "UpdateBids", mock.Anything, mock.Anything, mock.Anything)
}

func (s *marketSuite) TestFtOnTransferSelfBid() {
	s.passthroughTxn()
	s.saleRepo.On("FindOne", mock.Anything, mock.Anything).Return(s.listedSale(), nil)

	args := s.transferArgs()
	args.SenderId = alice

	refund, err := s.im.FtOnTransfer(ctx.Background(), args)
	s.Equal(domain.ErrSelfBid, err)
	s.Equal(args.Amount, refund)
}

func (s *marketSuite) TestFtOnTransferZeroAmount() {
	s.passthroughTxn()
	s.saleRepo.On("FindOne", mock.Anything, mock.Anything).Return(s.listedSale(), nil)

	args := s.transferArgs()
	args.Amount = "0"

	refund, err := s.im.FtOnTransfer(ctx.Background(), args)
	s.Equal(domain.ErrZeroAmount, err)
	s.Equal(args.Amount, refund)
}

func (s *marketSuite) TestFtOnTransferExpiredSale() {
	listed := s.listedSale()
	listed.EndAt = testNow.Add(-time.Minute)

	s.passthroughTxn()
	s.saleRepo.On("FindOne", mock.Anything, mock.Anything).Return(listed, nil)

	refund, err := s.im.FtOnTransfer(ctx.Background(), s.transferArgs())
	s.Equal(domain.ErrSaleEnded, err)
	s.Equal(domain.TokenAmount("150"), refund)
}

func (s *marketSuite) TestFtOnTransferSaleWithoutPayments() {
	listed := s.listedSale()
	listed.Kind = sale.KindNoPayments
	listed.PayToken = nil

	s.passthroughTxn()
	s.saleRepo.On("FindOne", mock.Anything, mock.Anything).Return(listed, nil)

	refund, err := s.im.FtOnTransfer(ctx.Background(), s.transferArgs())
	s.Equal(domain.ErrSaleWithoutPayments, err)
	s.Equal(domain.TokenAmount("150"), refund)
}

func (s *marketSuite) TestFtOnTransferWrongPayToken() {
	s.passthroughTxn()
	s.saleRepo.On("FindOne", mock.Anything, mock.Anything).Return(s.listedSale(), nil)

	args := s.transferArgs()
	args.CallerId = wnear

	refund, err := s.im.FtOnTransfer(ctx.Background(), args)
	s.Equal(domain.ErrUnsupportedPayToken, err)
	s.Equal(args.Amount, refund)
}

func (s *marketSuite) TestFtOnTransferSaleNotFound() {
	s.passthroughTxn()
	s.saleRepo.On("FindOne", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	refund, err := s.im.FtOnTransfer(ctx.Background(), s.transferArgs())
	s.Equal(domain.ErrNotFound, err)
	s.Equal(domain.TokenAmount("150"), refund)
}

func (s *marketSuite) TestRemoveSale() {
	c := ctx.Background()
	id := sale.MakeListingId(nft, token1)

	s.passthroughTxn()
	s.saleRepo.On("FindOne", mock.Anything, id).Return(s.listedSale(), nil)
	s.saleRepo.On("Delete", mock.Anything, id).Return(nil)
	s.indexRepo.On("Remove", mock.Anything, sale.IndexByOwner, alice, id).Return(nil)
	s.indexRepo.On("Remove", mock.Anything, sale.IndexByCollection, nft, id).Return(nil)

	s.NoError(s.im.RemoveSale(c, alice, id))
	s.indexRepo.AssertExpectations(s.T())
}

func (s *marketSuite) TestRemoveSaleNotOwner() {
	id := sale.MakeListingId(nft, token1)
	s.saleRepo.On("FindOne", mock.Anything, id).Return(s.listedSale(), nil)

	err := s.im.RemoveSale(ctx.Background(), bob, id)
	s.Equal(domain.ErrNotSaleOwner, err)
	s.saleRepo.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}

func (s *marketSuite) TestRemoveExpired() {
	c := ctx.Background()

	ended := s.listedSale()
	ended.EndAt = testNow.Add(-time.Minute)
	gone := s.listedSale()
	gone.ListingId = sale.MakeListingId(nft, "token-2")
	gone.TokenId = "token-2"
	gone.EndAt = testNow.Add(-time.Minute)

	s.saleRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*sale.Sale{ended, gone}, nil)

	s.query.On("RunWithTransaction", mock.Anything, mock.Anything).Return(
		func(c ctx.Ctx, run func(ctx.Ctx) error) error {
			return run(c)
		},
	)
	s.saleRepo.On("Delete", mock.Anything, ended.ListingId).Return(nil)
	s.indexRepo.On("Remove", mock.Anything, mock.Anything, mock.Anything, ended.ListingId).Return(nil)
	// the second sale was already swept by a concurrent pass
	s.saleRepo.On("Delete", mock.Anything, gone.ListingId).Return(domain.ErrNotFound)

	removed, err := s.im.RemoveExpired(c, testNow, 100)
	s.NoError(err)
	s.Equal(1, removed)
}

func (s *marketSuite) TestSupplyByOwner() {
	s.indexRepo.On("Count", mock.Anything, sale.IndexByOwner, alice).Return(3, nil)

	cnt, err := s.im.SupplyByOwner(ctx.Background(), alice)
	s.NoError(err)
	s.Equal(3, cnt)
}
