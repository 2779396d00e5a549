package repoargs

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInvestment struct {
	UserID           string
	Amount           decimal.Decimal
	StartedAt        time.Time
	NextCumulativeAt time.Time
	NextMonthlyAt    time.Time
}

// ProfitScheduleUpdate несет новые абсолютные значения расписания выплат
// и накопленных итогов позиции после снятия прибыли.
type ProfitScheduleUpdate struct {
	ID                  string
	NextCumulativeAt    time.Time
	NextMonthlyAt       time.Time
	TotalCumulativePaid decimal.Decimal
	TotalMonthlyPaid    decimal.Decimal
}
