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

// InvestmentService - реестр инвестиционных позиций: открытие, снятие прибыли
// и обзор активных позиций. Списание принципала и создание позиции (как и
// зачисление прибыли и перенос расписания) выполняются одной транзакцией.
type InvestmentService struct {
	uow     uow.UOW
	invRepo InvestmentRepository
	clock   Clock
}

func NewInvestmentService(u uow.UOW, clock Clock) (*InvestmentService, error) {
	invRepo, invRepoErr := uow.GetRepositoryAs[InvestmentRepository](u, uow.RepositoryName(repoargs.InvestmentRepoName))
	if invRepoErr != nil {
		return nil, invRepoErr
	}
	return &InvestmentService{
		uow:     u,
		invRepo: invRepo,
		clock:   clock,
	}, nil
}

// Open открывает позицию на amount: списывает принципал с баланса и создает
// позицию с расписанием выплат от текущего момента. При нехватке баланса
// возвращает domain.ErrNotEnoughBalance, позиция не создается.
func (s *InvestmentService) Open(
	ctx context.Context,
	userID string,
	amount decimal.Decimal,
) (*domain.Investment, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("opening investment: %w", domain.ErrNonPositiveAmount)
	}

	var created *domain.Investment
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		invRepo, invRepoErr := uow.GetAs[InvestmentRepository](tx, uow.RepositoryName(repoargs.InvestmentRepoName))
		if invRepoErr != nil {
			return invRepoErr //nolint:wrapcheck
		}

		user, findErr := userRepo.FindUserByID(c, userID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if debitErr := user.Debit(amount); debitErr != nil {
			return debitErr //nolint:wrapcheck
		}
		if _, updErr := userRepo.UpdateBalance(c, userID, user.Balance); updErr != nil {
			return updErr //nolint:wrapcheck
		}

		now := s.clock.Now()
		var createErr error
		created, createErr = invRepo.CreateInvestment(c, repoargs.CreateInvestment{
			UserID:           userID,
			Amount:           amount,
			StartedAt:        now,
			NextCumulativeAt: accrue.Advance(now, accrue.CumulativeCycle),
			NextMonthlyAt:    accrue.Advance(now, accrue.MonthlyCycle),
		})
		return createErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("opening investment: %w", txErr)
	}
	return created, nil
}

// ClaimResult - итог снятия прибыли с разбивкой по категориям.
type ClaimResult struct {
	Total      decimal.Decimal
	Cumulative decimal.Decimal
	Monthly    decimal.Decimal
	Investment *domain.Investment
}

// Claim снимает созревшую прибыль позиции. По каждой созревшей категории
// начисляется одна выплата (ставка от принципала), момент созревания
// переносится на цикл вперед от момента снятия. Если не созрело ничего,
// возвращается нулевой результат без ошибки и без записи в хранилище.
//
// Повторный Claim в тот же момент времени дает ноль: моменты созревания уже
// перенесены за now.
func (s *InvestmentService) Claim(ctx context.Context, userID, investmentID string) (*ClaimResult, error) {
	result := &ClaimResult{
		Total:      decimal.Zero,
		Cumulative: decimal.Zero,
		Monthly:    decimal.Zero,
	}

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		invRepo, invRepoErr := uow.GetAs[InvestmentRepository](tx, uow.RepositoryName(repoargs.InvestmentRepoName))
		if invRepoErr != nil {
			return invRepoErr //nolint:wrapcheck
		}

		investment, findErr := invRepo.FindByID(c, investmentID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if investment.UserID != userID {
			return domain.ErrOwnerConflict
		}

		now := s.clock.Now()
		update := repoargs.ProfitScheduleUpdate{
			ID:                  investment.ID,
			NextCumulativeAt:    investment.NextCumulativeAt,
			NextMonthlyAt:       investment.NextMonthlyAt,
			TotalCumulativePaid: investment.TotalCumulativePaid,
			TotalMonthlyPaid:    investment.TotalMonthlyPaid,
		}

		if accrue.Matured(investment.NextCumulativeAt, now) {
			result.Cumulative = accrue.CycleAmount(investment.Amount, accrue.CumulativeRate)
			update.NextCumulativeAt = accrue.Advance(now, accrue.CumulativeCycle)
			update.TotalCumulativePaid = investment.TotalCumulativePaid.Add(result.Cumulative)
		}
		if accrue.Matured(investment.NextMonthlyAt, now) {
			result.Monthly = accrue.CycleAmount(investment.Amount, accrue.MonthlyRate)
			update.NextMonthlyAt = accrue.Advance(now, accrue.MonthlyCycle)
			update.TotalMonthlyPaid = investment.TotalMonthlyPaid.Add(result.Monthly)
		}

		result.Total = result.Cumulative.Add(result.Monthly)
		if result.Total.IsZero() {
			// нечего снимать - не ошибка
			result.Investment = investment
			return nil
		}

		user, userErr := userRepo.FindUserByID(c, userID)
		if userErr != nil {
			return userErr //nolint:wrapcheck
		}
		if creditErr := user.Credit(result.Total); creditErr != nil {
			return creditErr //nolint:wrapcheck
		}
		if _, updErr := userRepo.UpdateBalance(c, userID, user.Balance); updErr != nil {
			return updErr //nolint:wrapcheck
		}

		var schedErr error
		result.Investment, schedErr = invRepo.UpdateProfitSchedule(c, update)
		return schedErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("claiming profit: %w", txErr)
	}
	return result, nil
}

// ProfitProjection - проекция одной категории выплат позиции на текущий момент.
type ProfitProjection struct {
	Category    domain.ProfitCategory
	CycleAmount decimal.Decimal
	DueAt       time.Time
	Progress    float64
	Remaining   time.Duration
	Matured     bool
}

// InvestmentView - позиция, обогащенная проекциями обеих категорий выплат.
type InvestmentView struct {
	Investment domain.Investment
	Cumulative ProfitProjection
	Monthly    ProfitProjection
}

// ListActive возвращает активные позиции юзера с проекциями выплат,
// пересчитанными на момент вызова. Ничего не кеширует и не мутирует.
func (s *InvestmentService) ListActive(ctx context.Context, userID string) ([]InvestmentView, error) {
	investments, err := s.invRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	now := s.clock.Now()
	views := make([]InvestmentView, 0, len(investments))
	for _, investment := range investments {
		if investment.Status != domain.InvestmentStatusActive {
			continue
		}
		views = append(views, InvestmentView{
			Investment: investment,
			Cumulative: projection(domain.ProfitCumulative, investment, investment.NextCumulativeAt, accrue.CumulativeRate, now),
			Monthly:    projection(domain.ProfitMonthly, investment, investment.NextMonthlyAt, accrue.MonthlyRate, now),
		})
	}
	return views, nil
}

func projection(
	category domain.ProfitCategory,
	investment domain.Investment,
	dueAt time.Time,
	rate decimal.Decimal,
	now time.Time,
) ProfitProjection {
	return ProfitProjection{
		Category:    category,
		CycleAmount: accrue.CycleAmount(investment.Amount, rate),
		DueAt:       dueAt,
		Progress:    accrue.Progress(investment.StartedAt, dueAt, now),
		Remaining:   accrue.Remaining(dueAt, now),
		Matured:     accrue.Matured(dueAt, now),
	}
}
