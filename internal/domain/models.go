package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Country      string          `json:"country"`
	PasswordHash string          `json:"password_hash"`
	Membership   MembershipType  `json:"membership"`
	Balance      decimal.Decimal `json:"balance"`
	LastLoginAt  *time.Time      `json:"last_login_at,omitempty"`
}

// Credit увеличивает баланс юзера на amount. Отрицательный amount недопустим.
func (u *User) Credit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	u.Balance = u.Balance.Add(amount)
	return nil
}

// Debit уменьшает баланс юзера на amount. Возвращает ErrNotEnoughBalance если
// баланс меньше amount; в этом случае баланс не меняется.
func (u *User) Debit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if u.Balance.LessThan(amount) {
		return ErrNotEnoughBalance
	}
	u.Balance = u.Balance.Sub(amount)
	return nil
}

type Investment struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `json:"user_id"`
	// Amount - принципал позиции. Фиксируется при открытии и не меняется.
	Amount    decimal.Decimal `json:"amount"`
	StartedAt time.Time       `json:"started_at"`
	// NextCumulativeAt и NextMonthlyAt - моменты созревания выплат по
	// категориям. Выплата доступна когда текущее время >= момента созревания.
	NextCumulativeAt    time.Time            `json:"next_cumulative_at"`
	NextMonthlyAt       time.Time            `json:"next_monthly_at"`
	TotalCumulativePaid decimal.Decimal      `json:"total_cumulative_paid"`
	TotalMonthlyPaid    decimal.Decimal      `json:"total_monthly_paid"`
	Status              InvestmentStatusType `json:"status"`
}
