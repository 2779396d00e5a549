// Package accrue содержит чистую математику начисления прибыли по позициям:
// созревание выплат, суммы за цикл, прогресс до следующей выплаты и перенос
// момента созревания после снятия.
package accrue

import (
	"time"

	"github.com/shopspring/decimal"
)

// Длины циклов выплат по категориям.
const (
	CumulativeCycle = 72 * time.Hour
	MonthlyCycle    = 30 * 24 * time.Hour
)

// Ставки фиксированы и считаются от принципала позиции за один цикл.
var (
	CumulativeRate = decimal.NewFromFloat(0.06)
	MonthlyRate    = decimal.NewFromFloat(1.5)
)

// Matured сообщает, созрела ли выплата: текущее время достигло момента due.
func Matured(due, now time.Time) bool {
	return !now.Before(due)
}

// CycleAmount - сумма одной выплаты: принципал умноженный на ставку.
func CycleAmount(principal, rate decimal.Decimal) decimal.Decimal {
	return principal.Mul(rate)
}

// Advance возвращает новый момент созревания: цикл отсчитывается от момента
// снятия, а не от пропущенного момента созревания. Пропущенные циклы не
// накапливаются - сколько бы времени ни прошло, доступна одна выплата.
func Advance(now time.Time, cycle time.Duration) time.Time {
	return now.Add(cycle)
}

// Progress - линейный прогресс от start к due в процентах, в пределах [0, 100].
// Вырожденный интервал (due <= start) считается завершенным.
func Progress(start, due, now time.Time) float64 {
	total := due.Sub(start)
	elapsed := now.Sub(start)

	if total <= 0 {
		return 100
	}
	if elapsed <= 0 {
		return 0
	}

	percent := float64(elapsed) / float64(total) * 100
	return min(100, max(0, percent))
}

// Remaining - время до созревания, не меньше нуля.
func Remaining(due, now time.Time) time.Duration {
	left := due.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}
