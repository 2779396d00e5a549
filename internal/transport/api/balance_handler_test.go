package api

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/gin-gonic/gin"

	"github.com/investogold/goldvest/internal/domain"
	"github.com/investogold/goldvest/internal/logger"
	"github.com/investogold/goldvest/internal/service/tokens"
	"github.com/investogold/goldvest/internal/transport/api/mocks"
	"github.com/investogold/goldvest/internal/transport/api/testutils"
)

type BalanceHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *mocks.MockLedgerServicer
	jwtSecret         []byte
	jwtToken          string
	currentUserID     string
}

func TestBalanceHandlerSuite(t *testing.T) {
	suite.Run(t, new(BalanceHandlerTestSuite))
}

func (s *BalanceHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockLedgerService = mocks.NewMockLedgerServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")
	s.currentUserID = "USER-1"

	token, tokenErr := tokens.GenerateUserJWT(s.currentUserID, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)
	s.jwtToken = token

	router, routerErr := New(RouterArgs{
		Logger:        logger.New(os.Stdout),
		LedgerService: s.mockLedgerService,
		JWTSecretKey:  s.jwtSecret,
	})
	s.Require().NoError(routerErr)
	s.router = router
}

func (s *BalanceHandlerTestSuite) makeRequest(method, url string, payload []byte, authorized bool) *http.Response {
	args := testutils.RequestArgs{
		Router: s.router,
		Method: method,
		URL:    url,
	}
	if payload != nil {
		args.Body = bytes.NewReader(payload)
	}
	var reqOpts []func(*testutils.RequestOptions)
	if authorized {
		reqOpts = append(reqOpts, testutils.WithHeader("Authorization", fmt.Sprintf("Bearer %s", s.jwtToken)))
	}
	reqOpts = append(reqOpts, testutils.WithHeader("Content-Type", "application/json; charset=utf-8"))

	res, err := testutils.MakeRequest(args, reqOpts...)
	s.Require().NoError(err)
	return res
}

func (s *BalanceHandlerTestSuite) TestIndex() {
	s.mockLedgerService.EXPECT().
		GetBalance(gomock.Any(), s.currentUserID).
		Return(decimal.NewFromFloat(125.5), nil)

	res := s.makeRequest(http.MethodGet, RouteGroup+BalanceRoute, nil, true)
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()

	s.Equal(http.StatusOK, res.StatusCode)
}

func (s *BalanceHandlerTestSuite) TestDeposit() {
	user := &domain.User{ID: s.currentUserID, Balance: decimal.NewFromInt(600)}

	s.mockLedgerService.EXPECT().
		Credit(gomock.Any(), s.currentUserID, decimal.NewFromInt(500)).
		Return(user, nil).Times(1)

	cases := []struct {
		name       string
		payload    []byte
		wantStatus int
		authorized bool
	}{
		{name: "all ok", payload: []byte(`{"amount":500}`), wantStatus: http.StatusOK, authorized: true},
		// лимиты депозита: от 10 до 10000
		{name: "below min", payload: []byte(`{"amount":9.99}`), wantStatus: http.StatusUnprocessableEntity, authorized: true},
		{name: "above max", payload: []byte(`{"amount":10001}`), wantStatus: http.StatusUnprocessableEntity, authorized: true},
		{name: "bad request", payload: []byte(`{`), wantStatus: http.StatusBadRequest, authorized: true},
		{name: "not authorized", payload: []byte(`{"amount":500}`), wantStatus: http.StatusUnauthorized},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.makeRequest(http.MethodPost, RouteGroup+BalanceDepositRoute, t.payload, t.authorized)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *BalanceHandlerTestSuite) TestWithdraw() {
	user := &domain.User{ID: s.currentUserID, Balance: decimal.NewFromInt(100)}

	s.mockLedgerService.EXPECT().
		Debit(gomock.Any(), s.currentUserID, decimal.NewFromInt(50)).
		Return(user, nil).Times(1)
	s.mockLedgerService.EXPECT().
		Debit(gomock.Any(), s.currentUserID, decimal.NewFromInt(5000)).
		Return(nil, domain.ErrNotEnoughBalance).Times(1)

	cases := []struct {
		name       string
		payload    []byte
		wantStatus int
		authorized bool
	}{
		{name: "all ok", payload: []byte(`{"amount":50}`), wantStatus: http.StatusOK, authorized: true},
		{name: "not enough balance", payload: []byte(`{"amount":5000}`), wantStatus: http.StatusPaymentRequired, authorized: true},
		// минимальная сумма вывода 50
		{name: "below min", payload: []byte(`{"amount":49.99}`), wantStatus: http.StatusUnprocessableEntity, authorized: true},
		{name: "not authorized", payload: []byte(`{"amount":50}`), wantStatus: http.StatusUnauthorized},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.makeRequest(http.MethodPost, RouteGroup+BalanceWithdrawRoute, t.payload, t.authorized)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
