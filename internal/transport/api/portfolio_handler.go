package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	svs PortfolioServicer
}

func NewPortfolioHandler(svs PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{
		svs: svs,
	}
}

type PortfolioResponse struct {
	GeneratedAt      time.Time `json:"generatedAt"`
	AvailableBalance float64   `json:"availableBalance"`
	TotalInvested    float64   `json:"totalInvested"`
	TotalClaimable   float64   `json:"totalClaimable"`
	NextCumulative   float64   `json:"nextCumulative"`
	NextMonthly      float64   `json:"nextMonthly"`
	TotalValue       float64   `json:"totalValue"`
}

// Show GET RouteGroup + PortfolioRoute. Сводка портфеля на момент запроса.
func (p *PortfolioHandler) Show(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	snapshot, err := p.svs.Snapshot(reqCtx, currentUserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, &PortfolioResponse{
		GeneratedAt:      snapshot.GeneratedAt,
		AvailableBalance: snapshot.AvailableBalance.InexactFloat64(),
		TotalInvested:    snapshot.TotalInvested.InexactFloat64(),
		TotalClaimable:   snapshot.TotalClaimable.InexactFloat64(),
		NextCumulative:   snapshot.NextCumulative.InexactFloat64(),
		NextMonthly:      snapshot.NextMonthly.InexactFloat64(),
		TotalValue:       snapshot.TotalValue.InexactFloat64(),
	})
}
