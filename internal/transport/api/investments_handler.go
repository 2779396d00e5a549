package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/investogold/goldvest/internal/domain"
	"github.com/investogold/goldvest/internal/service"
)

type InvestmentsHandler struct {
	invSvs InvestmentServicer
}

func NewInvestmentsHandler(invSvs InvestmentServicer) *InvestmentsHandler {
	return &InvestmentsHandler{
		invSvs: invSvs,
	}
}

type InvestmentCreateParams struct {
	Amount decimal.Decimal `binding:"required" json:"amount"`
}

type InvestmentResponse struct {
	ID                  string                      `json:"id"`
	Amount              float64                     `json:"amount"`
	StartedAt           time.Time                   `json:"startedAt"`
	NextCumulativeAt    time.Time                   `json:"nextCumulativeAt"`
	NextMonthlyAt       time.Time                   `json:"nextMonthlyAt"`
	TotalCumulativePaid float64                     `json:"totalCumulativePaid"`
	TotalMonthlyPaid    float64                     `json:"totalMonthlyPaid"`
	Status              domain.InvestmentStatusType `json:"status"`
}

func newInvestmentResponse(investment *domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:                  investment.ID,
		Amount:              investment.Amount.InexactFloat64(),
		StartedAt:           investment.StartedAt,
		NextCumulativeAt:    investment.NextCumulativeAt,
		NextMonthlyAt:       investment.NextMonthlyAt,
		TotalCumulativePaid: investment.TotalCumulativePaid.InexactFloat64(),
		TotalMonthlyPaid:    investment.TotalMonthlyPaid.InexactFloat64(),
		Status:              investment.Status,
	}
}

// Create POST RouteGroup + InvestmentsRoute. Открывает позицию на сумму из тела запроса.
func (h *InvestmentsHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params InvestmentCreateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	investment, createErr := h.invSvs.Open(reqCtx, currentUserID, params.Amount)
	if createErr != nil {
		switch {
		case errors.Is(createErr, domain.ErrNonPositiveAmount):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
				"error": "investment amount must be positive",
			})
		case errors.Is(createErr, domain.ErrNotEnoughBalance):
			c.AbortWithStatus(http.StatusPaymentRequired)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, createErr).
				SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusCreated, newInvestmentResponse(investment))
}

type ProfitProjectionResponse struct {
	CycleAmount      float64   `json:"cycleAmount"`
	DueAt            time.Time `json:"dueAt"`
	Progress         float64   `json:"progress"`
	RemainingSeconds int64     `json:"remainingSeconds"`
	Matured          bool      `json:"matured"`
}

type InvestmentViewResponse struct {
	InvestmentResponse
	Cumulative ProfitProjectionResponse `json:"cumulative"`
	Monthly    ProfitProjectionResponse `json:"monthly"`
}

func newProjectionResponse(p service.ProfitProjection) ProfitProjectionResponse {
	return ProfitProjectionResponse{
		CycleAmount:      p.CycleAmount.InexactFloat64(),
		DueAt:            p.DueAt,
		Progress:         p.Progress,
		RemainingSeconds: int64(p.Remaining.Seconds()),
		Matured:          p.Matured,
	}
}

// Index GET RouteGroup + InvestmentsRoute. Активные позиции юзера с проекциями выплат.
func (h *InvestmentsHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	views, err := h.invSvs.ListActive(reqCtx, currentUserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}

	if len(views) == 0 {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	response := make([]InvestmentViewResponse, len(views))
	for i, view := range views {
		response[i] = InvestmentViewResponse{
			InvestmentResponse: newInvestmentResponse(&view.Investment),
			Cumulative:         newProjectionResponse(view.Cumulative),
			Monthly:            newProjectionResponse(view.Monthly),
		}
	}

	c.JSON(http.StatusOK, response)
}

type ClaimResponse struct {
	Total      float64            `json:"total"`
	Cumulative float64            `json:"cumulative"`
	Monthly    float64            `json:"monthly"`
	Investment InvestmentResponse `json:"investment"`
}

// Claim POST RouteGroup + InvestmentClaimRoute. Снимает созревшую прибыль позиции.
// Если снимать нечего, возвращает нулевой результат со статусом 200.
func (h *InvestmentsHandler) Claim(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	investmentID := c.Param("id")

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := h.invSvs.Claim(reqCtx, currentUserID, investmentID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			_ = c.AbortWithError(http.StatusNotFound, errors.New("investment not found")).
				SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrOwnerConflict):
			_ = c.AbortWithError(http.StatusConflict, errors.New("investment belongs to another user")).
				SetType(gin.ErrorTypePublic)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).
				SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, ClaimResponse{
		Total:      result.Total.InexactFloat64(),
		Cumulative: result.Cumulative.InexactFloat64(),
		Monthly:    result.Monthly.InexactFloat64(),
		Investment: newInvestmentResponse(result.Investment),
	})
}
