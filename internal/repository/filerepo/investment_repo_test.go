package filerepo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/investogold/goldvest/internal/domain"
	"github.com/investogold/goldvest/internal/repository/repoargs"
)

type InvestmentRepositoryTestSuite struct {
	suite.Suite
	store *Store
	repo  *InvestmentRepository
	now   time.Time
}

func TestInvestmentRepositorySuite(t *testing.T) {
	suite.Run(t, new(InvestmentRepositoryTestSuite))
}

func (s *InvestmentRepositoryTestSuite) SetupTest() {
	store, err := Open(filepath.Join(s.T().TempDir(), "goldvest.json"))
	s.Require().NoError(err)
	s.store = store
	s.repo = NewInvestmentRepository(store)
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *InvestmentRepositoryTestSuite) createInvestment(userID string, amount int64, startedAt time.Time) *domain.Investment {
	investment, err := s.repo.CreateInvestment(context.Background(), repoargs.CreateInvestment{
		UserID:           userID,
		Amount:           decimal.NewFromInt(amount),
		StartedAt:        startedAt,
		NextCumulativeAt: startedAt.Add(72 * time.Hour),
		NextMonthlyAt:    startedAt.Add(30 * 24 * time.Hour),
	})
	s.Require().NoError(err)
	return investment
}

func (s *InvestmentRepositoryTestSuite) TestCreateInvestment() {
	investment := s.createInvestment("USER-1", 1000, s.now)

	s.Contains(investment.ID, "INV-")
	s.Equal(domain.InvestmentStatusActive, investment.Status)
	s.True(investment.TotalCumulativePaid.IsZero())
	s.True(investment.TotalMonthlyPaid.IsZero())
	s.True(investment.NextCumulativeAt.Equal(s.now.Add(72 * time.Hour)))
	s.True(investment.NextMonthlyAt.Equal(s.now.Add(30 * 24 * time.Hour)))
}

func (s *InvestmentRepositoryTestSuite) TestFindByID() {
	created := s.createInvestment("USER-1", 1000, s.now)

	found, err := s.repo.FindByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)
	s.True(found.Amount.Equal(decimal.NewFromInt(1000)))

	_, missErr := s.repo.FindByID(context.Background(), "INV-MISSING")
	s.Require().ErrorIs(missErr, domain.ErrRecordNotFound)
}

func (s *InvestmentRepositoryTestSuite) TestGetByUserID() {
	second := s.createInvestment("USER-1", 200, s.now.Add(time.Hour))
	first := s.createInvestment("USER-1", 100, s.now)
	s.createInvestment("USER-2", 300, s.now)

	investments, err := s.repo.GetByUserID(context.Background(), "USER-1")
	s.Require().NoError(err)
	s.Require().Len(investments, 2)

	// сортировка по дате открытия, чужие позиции отфильтрованы
	s.Equal(first.ID, investments[0].ID)
	s.Equal(second.ID, investments[1].ID)
}

func (s *InvestmentRepositoryTestSuite) TestGetByUserID_Empty() {
	investments, err := s.repo.GetByUserID(context.Background(), "USER-NOBODY")
	s.Require().NoError(err)
	s.Empty(investments)
}

func (s *InvestmentRepositoryTestSuite) TestUpdateProfitSchedule() {
	created := s.createInvestment("USER-1", 1000, s.now)

	claimAt := s.now.Add(80 * time.Hour)
	updated, err := s.repo.UpdateProfitSchedule(context.Background(), repoargs.ProfitScheduleUpdate{
		ID:                  created.ID,
		NextCumulativeAt:    claimAt.Add(72 * time.Hour),
		NextMonthlyAt:       created.NextMonthlyAt,
		TotalCumulativePaid: decimal.NewFromInt(60),
		TotalMonthlyPaid:    decimal.Zero,
	})
	s.Require().NoError(err)
	s.True(updated.NextCumulativeAt.Equal(claimAt.Add(72 * time.Hour)))
	s.True(updated.TotalCumulativePaid.Equal(decimal.NewFromInt(60)))

	reloaded, findErr := s.repo.FindByID(context.Background(), created.ID)
	s.Require().NoError(findErr)
	s.True(reloaded.TotalCumulativePaid.Equal(decimal.NewFromInt(60)))

	_, missErr := s.repo.UpdateProfitSchedule(context.Background(), repoargs.ProfitScheduleUpdate{ID: "INV-MISSING"})
	s.Require().ErrorIs(missErr, domain.ErrRecordNotFound)
}
