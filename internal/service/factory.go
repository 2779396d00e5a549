package service

import (
	"fmt"

	"github.com/investogold/goldvest/internal/service/psswd"
	"github.com/investogold/goldvest/pkg/uow"
)

type AppServices struct {
	UserService       *UserService
	LedgerService     *LedgerService
	InvestmentService *InvestmentService
	PortfolioService  *PortfolioService
}

func Factory(unitOfWork uow.UOW, jwtSecret []byte, clock Clock) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork, jwtSecret, psswd.PasswordHash(""))
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	ledgerService, ledgerServiceErr := NewLedgerService(unitOfWork)
	if ledgerServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", ledgerServiceErr.Error())
	}

	investmentService, investmentServiceErr := NewInvestmentService(unitOfWork, clock)
	if investmentServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", investmentServiceErr.Error())
	}

	portfolioService, portfolioServiceErr := NewPortfolioService(unitOfWork, clock)
	if portfolioServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", portfolioServiceErr.Error())
	}

	return &AppServices{
		UserService:       userService,
		LedgerService:     ledgerService,
		InvestmentService: investmentService,
		PortfolioService:  portfolioService,
	}, nil
}
