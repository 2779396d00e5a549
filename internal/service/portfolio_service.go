package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/investogold/goldvest/internal/domain"
	"github.com/investogold/goldvest/internal/repository/repoargs"
	"github.com/investogold/goldvest/internal/service/accrue"
	"github.com/investogold/goldvest/pkg/uow"
)

// PortfolioSnapshot - производная сводка портфеля на момент GeneratedAt.
// Не хранится: пересчитывается на каждый запрос из леджера и реестра.
type PortfolioSnapshot struct {
	GeneratedAt      time.Time
	AvailableBalance decimal.Decimal
	TotalInvested    decimal.Decimal
	// TotalClaimable - сумма созревших, но не снятых выплат по обеим категориям.
	TotalClaimable decimal.Decimal
	// NextCumulative и NextMonthly - суммы ближайших выплат по всем позициям
	// независимо от созревания.
	NextCumulative decimal.Decimal
	NextMonthly    decimal.Decimal
	// TotalValue = баланс + инвестировано + созревшие выплаты.
	TotalValue decimal.Decimal
}

// PortfolioService - читающая проекция поверх леджера и реестра. Своего стейта
// не имеет и ничего не мутирует.
type PortfolioService struct {
	userRepo UserRepository
	invRepo  InvestmentRepository
	clock    Clock
}

func NewPortfolioService(u uow.UOW, clock Clock) (*PortfolioService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	invRepo, invRepoErr := uow.GetRepositoryAs[InvestmentRepository](u, uow.RepositoryName(repoargs.InvestmentRepoName))
	if invRepoErr != nil {
		return nil, invRepoErr
	}
	return &PortfolioService{
		userRepo: userRepo,
		invRepo:  invRepo,
		clock:    clock,
	}, nil
}

// Snapshot собирает сводку портфеля юзера на текущий момент.
func (p *PortfolioService) Snapshot(ctx context.Context, userID string) (*PortfolioSnapshot, error) {
	user, userErr := p.userRepo.FindUserByID(ctx, userID)
	if userErr != nil {
		return nil, fmt.Errorf("portfolio snapshot: %w", userErr)
	}
	investments, invErr := p.invRepo.GetByUserID(ctx, userID)
	if invErr != nil {
		return nil, fmt.Errorf("portfolio snapshot: %w", invErr)
	}

	now := p.clock.Now()
	snapshot := &PortfolioSnapshot{
		GeneratedAt:      now,
		AvailableBalance: user.Balance,
		TotalInvested:    decimal.Zero,
		TotalClaimable:   decimal.Zero,
		NextCumulative:   decimal.Zero,
		NextMonthly:      decimal.Zero,
	}

	for _, investment := range investments {
		if investment.Status != domain.InvestmentStatusActive {
			continue
		}
		cumulative := accrue.CycleAmount(investment.Amount, accrue.CumulativeRate)
		monthly := accrue.CycleAmount(investment.Amount, accrue.MonthlyRate)

		snapshot.TotalInvested = snapshot.TotalInvested.Add(investment.Amount)
		snapshot.NextCumulative = snapshot.NextCumulative.Add(cumulative)
		snapshot.NextMonthly = snapshot.NextMonthly.Add(monthly)

		if accrue.Matured(investment.NextCumulativeAt, now) {
			snapshot.TotalClaimable = snapshot.TotalClaimable.Add(cumulative)
		}
		if accrue.Matured(investment.NextMonthlyAt, now) {
			snapshot.TotalClaimable = snapshot.TotalClaimable.Add(monthly)
		}
	}

	snapshot.TotalValue = snapshot.AvailableBalance.
		Add(snapshot.TotalInvested).
		Add(snapshot.TotalClaimable)
	return snapshot, nil
}
