package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/investogold/goldvest/internal/domain"
	"github.com/investogold/goldvest/internal/repository/repoargs"
	"github.com/investogold/goldvest/pkg/uow"
)

// LedgerService владеет балансом юзера. Любая мутация баланса проходит через
// Credit/Debit и фиксируется в хранилище одним снапшотом.
type LedgerService struct {
	uow      uow.UOW
	userRepo UserRepository
}

func NewLedgerService(u uow.UOW) (*LedgerService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &LedgerService{
		uow:      u,
		userRepo: userRepo,
	}, nil
}

// Credit зачисляет amount на баланс юзера. Отрицательный amount -
// domain.ErrNegativeAmount.
func (l *LedgerService) Credit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.User, error) {
	user, err := l.mutateBalance(ctx, userID, func(u *domain.User) error {
		return u.Credit(amount)
	})
	if err != nil {
		return nil, fmt.Errorf("crediting balance: %w", err)
	}
	return user, nil
}

// Debit списывает amount с баланса юзера. Возвращает domain.ErrNotEnoughBalance
// если баланса не хватает; стейт при этом не меняется.
func (l *LedgerService) Debit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.User, error) {
	user, err := l.mutateBalance(ctx, userID, func(u *domain.User) error {
		return u.Debit(amount)
	})
	if err != nil {
		return nil, fmt.Errorf("debiting balance: %w", err)
	}
	return user, nil
}

func (l *LedgerService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	user, err := l.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err //nolint:wrapcheck
	}
	return user.Balance, nil
}

func (l *LedgerService) mutateBalance(
	ctx context.Context,
	userID string,
	mutate func(*domain.User) error,
) (*domain.User, error) {
	var updated *domain.User
	txErr := l.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}

		user, findErr := userRepo.FindUserByID(c, userID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if mutateErr := mutate(user); mutateErr != nil {
			return mutateErr
		}

		var updErr error
		updated, updErr = userRepo.UpdateBalance(c, userID, user.Balance)
		return updErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}
