package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/investogold/goldvest/internal/domain"
	"github.com/investogold/goldvest/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
}

type LedgerServicer interface {
	Credit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.User, error)
	Debit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.User, error)
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
}

type InvestmentServicer interface {
	Open(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Investment, error)
	Claim(ctx context.Context, userID, investmentID string) (*service.ClaimResult, error)
	ListActive(ctx context.Context, userID string) ([]service.InvestmentView, error)
}

type PortfolioServicer interface {
	Snapshot(ctx context.Context, userID string) (*service.PortfolioSnapshot, error)
}
