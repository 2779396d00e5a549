package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/investogold/goldvest/internal/config"
	"github.com/investogold/goldvest/internal/repository/filerepo"
	"github.com/investogold/goldvest/internal/repository/repoargs"
	"github.com/investogold/goldvest/internal/service"
	"github.com/investogold/goldvest/internal/transport/api"
	"github.com/investogold/goldvest/pkg/uow"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with run address %s and data file %s", a.Config.RunAddress, a.Config.DataFile)
	store, storeErr := filerepo.Open(a.Config.DataFile)
	if storeErr != nil {
		return fmt.Errorf("app run: %s", storeErr.Error())
	}

	unitOfWork, uowErr := initUOW(store)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	services, sErr := service.Factory(unitOfWork, []byte(a.Config.JWTUserSecret), service.SystemClock())
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router, routerErr := api.New(api.RouterArgs{
		Logger:            a.Logger,
		UserService:       services.UserService,
		LedgerService:     services.LedgerService,
		InvestmentService: services.InvestmentService,
		PortfolioService:  services.PortfolioService,
		JWTSecretKey:      []byte(a.Config.JWTUserSecret),
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

func initUOW(store *filerepo.Store) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(store)

	// user repo
	userRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return filerepo.NewUserRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.UserRepoName), userRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// investment repo
	investmentRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return filerepo.NewInvestmentRepository(dbtx)
	}
	if regErr := unitOfWork.Register(
		uow.RepositoryName(repoargs.InvestmentRepoName),
		investmentRepoFactoryFn,
	); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	return unitOfWork, nil
}
