package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/investogold/goldvest/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup           = "/api"
	RegisterRoute        = "/user/register"
	LoginRoute           = "/user/login"
	BalanceRoute         = "/user/balance"
	BalanceDepositRoute  = "/user/balance/deposit"
	BalanceWithdrawRoute = "/user/balance/withdraw"
	InvestmentsRoute     = "/user/investments"
	InvestmentClaimRoute = "/user/investments/:id/claim"
	PortfolioRoute       = "/user/portfolio"
)

type RouterArgs struct {
	Logger            *logrus.Logger
	UserService       UserServicer
	LedgerService     LedgerServicer
	InvestmentService InvestmentServicer
	PortfolioService  PortfolioServicer
	JWTSecretKey      []byte
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService)
	balanceHandler := NewBalanceHandler(args.LedgerService)
	investmentsHandler := NewInvestmentsHandler(args.InvestmentService)
	portfolioHandler := NewPortfolioHandler(args.PortfolioService)

	api := r.Group(RouteGroup)

	api.POST(RegisterRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Register)
	api.POST(LoginRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Login)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	api.GET(BalanceRoute, balanceHandler.Index)
	api.POST(BalanceDepositRoute, balanceHandler.Deposit)
	api.POST(BalanceWithdrawRoute, balanceHandler.Withdraw)

	api.POST(InvestmentsRoute, investmentsHandler.Create)
	api.GET(InvestmentsRoute, investmentsHandler.Index)
	api.POST(InvestmentClaimRoute, investmentsHandler.Claim)

	api.GET(PortfolioRoute, portfolioHandler.Show)
	return r, nil
}
