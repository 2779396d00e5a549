package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/gin-gonic/gin"

	"github.com/investogold/goldvest/internal/domain"
	"github.com/investogold/goldvest/internal/logger"
	"github.com/investogold/goldvest/internal/service"
	"github.com/investogold/goldvest/internal/transport/api/mocks"
	"github.com/investogold/goldvest/internal/transport/api/testutils"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockUserService *mocks.MockUserServicer
	jwtSecret       []byte
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockUserService = mocks.NewMockUserServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	router, routerErr := New(RouterArgs{
		Logger:       logger.New(os.Stdout),
		UserService:  s.mockUserService,
		JWTSecretKey: s.jwtSecret,
	})
	s.Require().NoError(routerErr)
	s.router = router
}

func (s *AuthHandlerTestSuite) makeRequest(url string, payload any) *http.Response {
	body, marshalErr := json.Marshal(payload)
	s.Require().NoError(marshalErr)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    url,
		Body:   bytes.NewReader(body),
	}, testutils.WithHeader("Content-Type", "application/json; charset=utf-8"))
	s.Require().NoError(err)
	return res
}

func (s *AuthHandlerTestSuite) TestRegister() {
	validParams := UserRegisterParams{
		FirstName: "John",
		LastName:  "Golder",
		Email:     "gold@example.com",
		Password:  "Sup3rSecret!",
	}
	duplicateParams := validParams
	duplicateParams.Email = "taken@example.com"

	createdUser := domain.User{
		ID:         "USER-1",
		FirstName:  validParams.FirstName,
		LastName:   validParams.LastName,
		Email:      validParams.Email,
		Membership: domain.MembershipStandard,
	}

	s.mockUserService.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, args service.RegisterUserArgs) (*domain.User, string, error) {
			if args.Email == duplicateParams.Email {
				return nil, "", domain.ErrDuplicateKey
			}
			return &createdUser, "jwt-token", nil
		}).Times(2)

	weakPassParams := validParams
	// нет заглавной буквы, цифры и спецсимвола
	weakPassParams.Password = "weakpassword"

	badEmailParams := validParams
	badEmailParams.Email = "not an email"

	cases := []struct {
		name       string
		params     UserRegisterParams
		wantStatus int
		wantToken  bool
	}{
		{name: "all ok", params: validParams, wantStatus: http.StatusOK, wantToken: true},
		{name: "duplicate email", params: duplicateParams, wantStatus: http.StatusConflict},
		{name: "weak password", params: weakPassParams, wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid email", params: badEmailParams, wantStatus: http.StatusUnprocessableEntity},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.makeRequest(RouteGroup+RegisterRoute, t.params)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)
			if t.wantToken {
				s.Equal("Bearer jwt-token", res.Header.Get("Authorization"))
			}
		})
	}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	validParams := UserLoginParams{
		Email:    "gold@example.com",
		Password: "Sup3rSecret!",
	}
	wrongPassParams := validParams
	wrongPassParams.Password = "Wr0ngSecret!"

	user := domain.User{
		ID:    "USER-1",
		Email: validParams.Email,
	}

	s.mockUserService.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, args service.LoginUserArgs) (*domain.User, string, error) {
			if args.Password != validParams.Password {
				return nil, "", domain.ErrPasswordMissMatch
			}
			return &user, "jwt-token", nil
		}).Times(2)

	cases := []struct {
		name       string
		params     UserLoginParams
		wantStatus int
	}{
		{name: "all ok", params: validParams, wantStatus: http.StatusOK},
		{name: "wrong password", params: wrongPassParams, wantStatus: http.StatusUnauthorized},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.makeRequest(RouteGroup+LoginRoute, t.params)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
