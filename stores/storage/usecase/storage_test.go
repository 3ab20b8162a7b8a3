package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/sale"
	mSale "github.com/bidmarket/goapi/domain/sale/mocks"
	"github.com/bidmarket/goapi/domain/storage"
	mStorage "github.com/bidmarket/goapi/domain/storage/mocks"
)

var (
	alice = domain.AccountId("alice")
	cost  = decimal.RequireFromString("10000000000000000000000")
)

type ledgerSuite struct {
	suite.Suite

	repo      *mStorage.Repo
	indexRepo *mSale.IndexRepo

	im *impl
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(ledgerSuite))
}

func (s *ledgerSuite) SetupTest() {
	s.repo = &mStorage.Repo{}
	s.indexRepo = &mSale.IndexRepo{}

	s.im = New(&StorageLedgerCfg{
		Repo:        s.repo,
		IndexRepo:   s.indexRepo,
		CostPerSale: cost,
	}).(*impl)
}

func (s *ledgerSuite) TestPaidAmountWithoutDeposit() {
	s.repo.On("Get", mock.Anything, alice).Return(nil, domain.ErrNotFound)

	paid, err := s.im.PaidAmount(ctx.Background(), alice)
	s.NoError(err)
	s.True(paid.IsZero())
}

func (s *ledgerSuite) TestRequiredFor() {
	s.True(s.im.RequiredFor(0).IsZero())
	s.True(s.im.RequiredFor(-1).IsZero())
	s.True(s.im.RequiredFor(1).Equal(cost))
	s.True(s.im.RequiredFor(3).Equal(cost.Mul(decimal.NewFromInt(3))))
}

func (s *ledgerSuite) TestDeposit() {
	added := cost.Mul(decimal.NewFromInt(2))

	s.repo.On("Add", mock.Anything, alice, added).Return(nil)
	s.repo.On("Get", mock.Anything, alice).Return(&storage.Deposit{
		AccountId: alice,
		Amount:    domain.AmountFromDecimal(added),
	}, nil)
	s.indexRepo.On("Count", mock.Anything, sale.IndexByOwner, alice).Return(1, nil)

	balance, err := s.im.Deposit(ctx.Background(), alice, domain.AmountFromDecimal(added))
	s.NoError(err)
	s.Equal(alice, balance.AccountId)
	s.Equal(domain.AmountFromDecimal(added), balance.Paid)
	s.Equal(1, balance.ActiveSales)
}

func (s *ledgerSuite) TestDepositRejectsZero() {
	_, err := s.im.Deposit(ctx.Background(), alice, "0")
	s.Equal(domain.ErrZeroAmount, err)
	s.repo.AssertNotCalled(s.T(), "Add", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ledgerSuite) TestDepositRejectsFractional() {
	_, err := s.im.Deposit(ctx.Background(), alice, "1.5")
	s.Equal(domain.ErrInvalidAmountFormat, err)
}

func (s *ledgerSuite) TestWithdrawRefundsSurplus() {
	paid := cost.Mul(decimal.NewFromInt(3))

	s.repo.On("Get", mock.Anything, alice).Return(&storage.Deposit{
		AccountId: alice,
		Amount:    domain.AmountFromDecimal(paid),
	}, nil)
	s.indexRepo.On("Count", mock.Anything, sale.IndexByOwner, alice).Return(1, nil)
	// the ledger keeps exactly what the active sale still needs
	s.repo.On("Set", mock.Anything, alice, cost).Return(nil)

	refund, err := s.im.Withdraw(ctx.Background(), alice)
	s.NoError(err)
	s.Equal(domain.AmountFromDecimal(cost.Mul(decimal.NewFromInt(2))), refund)
	s.repo.AssertExpectations(s.T())
}

func (s *ledgerSuite) TestWithdrawWithoutSurplus() {
	s.repo.On("Get", mock.Anything, alice).Return(&storage.Deposit{
		AccountId: alice,
		Amount:    domain.AmountFromDecimal(cost),
	}, nil)
	s.indexRepo.On("Count", mock.Anything, sale.IndexByOwner, alice).Return(1, nil)

	refund, err := s.im.Withdraw(ctx.Background(), alice)
	s.NoError(err)
	s.Equal(domain.TokenAmount("0"), refund)
	s.repo.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ledgerSuite) TestWithdrawWithoutDeposit() {
	s.repo.On("Get", mock.Anything, alice).Return(nil, domain.ErrNotFound)
	s.indexRepo.On("Count", mock.Anything, sale.IndexByOwner, alice).Return(0, nil)

	refund, err := s.im.Withdraw(ctx.Background(), alice)
	s.NoError(err)
	s.Equal(domain.TokenAmount("0"), refund)
}
