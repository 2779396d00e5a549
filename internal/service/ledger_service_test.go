package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/investogold/goldvest/internal/domain"
	"github.com/investogold/goldvest/internal/repository/repoargs"
	"github.com/investogold/goldvest/internal/service/mocks"
	"github.com/investogold/goldvest/pkg/uow"
	uowmocks "github.com/investogold/goldvest/pkg/uow/mocks"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockUOW      *uowmocks.MockUOW
	mockTX       *uowmocks.MockTX
	mockUserRepo *mocks.MockUserRepository
	service      *LedgerService
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)

	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	var err error
	s.service, err = NewLedgerService(s.mockUOW)
	s.Require().NoError(err)
}

func (s *LedgerServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *LedgerServiceTestSuite) expectTX(times int) {
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).Times(times)
	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(context.Background(), s.mockTX)
		},
	).Times(times)
}

func (s *LedgerServiceTestSuite) TestCredit() {
	user := &domain.User{
		ID:      "USER-1",
		Balance: decimal.NewFromInt(100),
	}

	s.expectTX(1)
	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockUserRepo.EXPECT().
		UpdateBalance(gomock.Any(), user.ID, decimal.NewFromInt(150)).
		DoAndReturn(func(_ context.Context, _ string, balance decimal.Decimal) (*domain.User, error) {
			updated := *user
			updated.Balance = balance
			return &updated, nil
		})

	updated, err := s.service.Credit(context.Background(), user.ID, decimal.NewFromInt(50))
	s.Require().NoError(err)
	s.True(updated.Balance.Equal(decimal.NewFromInt(150)))
}

func (s *LedgerServiceTestSuite) TestCredit_NegativeAmount() {
	user := &domain.User{
		ID:      "USER-1",
		Balance: decimal.NewFromInt(100),
	}

	s.expectTX(1)
	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), user.ID).Return(user, nil)

	_, err := s.service.Credit(context.Background(), user.ID, decimal.NewFromInt(-5))
	s.Require().ErrorIs(err, domain.ErrNegativeAmount)
}

func (s *LedgerServiceTestSuite) TestDebit() {
	user := &domain.User{
		ID:      "USER-1",
		Balance: decimal.NewFromInt(100),
	}

	s.expectTX(2)
	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), user.ID).
		DoAndReturn(func(_ context.Context, _ string) (*domain.User, error) {
			clone := *user
			return &clone, nil
		}).Times(2)
	s.mockUserRepo.EXPECT().
		UpdateBalance(gomock.Any(), user.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, balance decimal.Decimal) (*domain.User, error) {
			s.True(balance.IsZero())
			return &domain.User{ID: user.ID, Balance: balance}, nil
		})

	cases := []struct {
		name    string
		amount  decimal.Decimal
		wantErr error
	}{
		// списание всего баланса допустимо
		{name: "full balance", amount: decimal.NewFromInt(100), wantErr: nil},
		{
			name:    "not enough balance",
			amount:  decimal.NewFromInt(100).Add(decimal.NewFromFloat(0.001)),
			wantErr: domain.ErrNotEnoughBalance,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			updated, err := s.service.Debit(context.Background(), user.ID, t.amount)
			if t.wantErr != nil {
				s.Require().ErrorIs(err, t.wantErr)
				return
			}
			s.Require().NoError(err)
			s.True(updated.Balance.IsZero())
		})
	}
}

func (s *LedgerServiceTestSuite) TestDebit_UnknownUser() {
	s.expectTX(1)
	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), "USER-MISSING").
		Return(nil, domain.ErrRecordNotFound)

	_, err := s.service.Debit(context.Background(), "USER-MISSING", decimal.NewFromInt(10))
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *LedgerServiceTestSuite) TestGetBalance() {
	user := &domain.User{
		ID:      "USER-1",
		Balance: decimal.NewFromFloat(42.5),
	}

	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), user.ID).Return(user, nil)

	balance, err := s.service.GetBalance(context.Background(), user.ID)
	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromFloat(42.5)))
}
