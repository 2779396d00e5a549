package domain

type InvestmentStatusType string

// Позиции не закрываются: терминального статуса в модели нет.
const (
	InvestmentStatusActive InvestmentStatusType = "active"
)

type MembershipType string

const (
	MembershipStandard MembershipType = "Standard"
	MembershipVIP      MembershipType = "VIP"
)

type ProfitCategory string

const (
	ProfitCumulative ProfitCategory = "cumulative"
	ProfitMonthly    ProfitCategory = "monthly"
)
