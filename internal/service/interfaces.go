package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/investogold/goldvest/internal/domain"
	"github.com/investogold/goldvest/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

// Clock - явный источник времени. Созревание выплат всегда считается от
// Clock.Now, фонового планировщика нет.
type Clock interface {
	Now() time.Time
}

type UserRepository interface {
	CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error)
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) (*domain.User, error)
}

type InvestmentRepository interface {
	CreateInvestment(ctx context.Context, args repoargs.CreateInvestment) (*domain.Investment, error)
	FindByID(ctx context.Context, id string) (*domain.Investment, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Investment, error)
	UpdateProfitSchedule(ctx context.Context, args repoargs.ProfitScheduleUpdate) (*domain.Investment, error)
}
