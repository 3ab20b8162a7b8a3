package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/paytoken"
	mPaytoken "github.com/bidmarket/goapi/domain/paytoken/mocks"
)

type paytokenSuite struct {
	suite.Suite

	repo *mPaytoken.Repo

	im *impl
}

func TestPaytokenSuite(t *testing.T) {
	suite.Run(t, new(paytokenSuite))
}

func (s *paytokenSuite) SetupTest() {
	s.repo = &mPaytoken.Repo{}
	s.im = New(s.repo).(*impl)
}

func (s *paytokenSuite) TestIsSupported() {
	usdt := domain.AccountId("usdt.tether-token")
	s.repo.On("FindOne", mock.Anything, usdt).Return(&paytoken.PayToken{
		AccountId: usdt,
		Symbol:    "USDT",
		Decimals:  6,
	}, nil)

	ok, err := s.im.IsSupported(ctx.Background(), usdt)
	s.NoError(err)
	s.True(ok)
}

func (s *paytokenSuite) TestIsSupportedUnknownToken() {
	s.repo.On("FindOne", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	ok, err := s.im.IsSupported(ctx.Background(), "unknown.token")
	s.NoError(err)
	s.False(ok)
}

func (s *paytokenSuite) TestIsSupportedRepoError() {
	boom := errors.New("boom")
	s.repo.On("FindOne", mock.Anything, mock.Anything).Return(nil, boom)

	_, err := s.im.IsSupported(ctx.Background(), "usdt.tether-token")
	s.Equal(boom, err)
}

func (s *paytokenSuite) TestRegister() {
	t := &paytoken.PayToken{AccountId: "wrap.near", Symbol: "wNEAR", Decimals: 24}
	s.repo.On("Upsert", mock.Anything, t).Return(nil)

	s.NoError(s.im.Register(ctx.Background(), t))
}

func (s *paytokenSuite) TestRegisterInvalidAccount() {
	err := s.im.Register(ctx.Background(), &paytoken.PayToken{AccountId: "Bad!Id"})
	s.Equal(domain.ErrInvalidAccountId, err)
	s.repo.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}
