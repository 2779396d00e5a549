package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/investogold/goldvest/internal/domain"
)

// Лимиты операций с балансом.
var (
	minDepositAmount  = decimal.NewFromInt(10)
	maxDepositAmount  = decimal.NewFromInt(10000)
	minWithdrawAmount = decimal.NewFromInt(50)
)

type BalanceHandler struct {
	svs LedgerServicer
}

func NewBalanceHandler(svs LedgerServicer) *BalanceHandler {
	return &BalanceHandler{
		svs: svs,
	}
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// Index GET RouteGroup + BalanceRoute.
func (b *BalanceHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, err := b.svs.GetBalance(reqCtx, currentUserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, &BalanceResponse{
		Balance: balance.InexactFloat64(),
	})
}

type AmountParams struct {
	Amount decimal.Decimal `binding:"required" json:"amount"`
}

// Deposit POST RouteGroup + BalanceDepositRoute. Зачисляет сумму на баланс.
func (b *BalanceHandler) Deposit(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params AmountParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	if params.Amount.LessThan(minDepositAmount) || params.Amount.GreaterThan(maxDepositAmount) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error": "deposit amount must be between 10 and 10000",
		})
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := b.svs.Credit(reqCtx, currentUserID, params.Amount)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, &BalanceResponse{Balance: user.Balance.InexactFloat64()})
}

// Withdraw POST RouteGroup + BalanceWithdrawRoute. Списывает сумму с баланса.
func (b *BalanceHandler) Withdraw(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params AmountParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	if params.Amount.LessThan(minWithdrawAmount) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error": "withdraw amount must be at least 50",
		})
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := b.svs.Debit(reqCtx, currentUserID, params.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotEnoughBalance):
			c.AbortWithStatus(http.StatusPaymentRequired)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, &BalanceResponse{Balance: user.Balance.InexactFloat64()})
}
