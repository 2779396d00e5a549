package accrue

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMatured(t *testing.T) {
	due := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, Matured(due, due.Add(-time.Second)))
	assert.True(t, Matured(due, due), "момент созревания включительно")
	assert.True(t, Matured(due, due.Add(time.Second)))
}

func TestCycleAmount(t *testing.T) {
	principal := decimal.NewFromInt(1000)

	assert.True(t, decimal.NewFromInt(60).Equal(CycleAmount(principal, CumulativeRate)))
	assert.True(t, decimal.NewFromInt(1500).Equal(CycleAmount(principal, MonthlyRate)))
}

func TestAdvance(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	// снятие с опозданием на 10 часов: новый цикл идет от момента снятия
	claimedAt := due.Add(10 * time.Hour)

	next := Advance(claimedAt, CumulativeCycle)
	assert.Equal(t, claimedAt.Add(CumulativeCycle), next)
	assert.NotEqual(t, due.Add(CumulativeCycle), next)
}

func TestProgress(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	due := start.Add(72 * time.Hour)

	cases := []struct {
		name string
		now  time.Time
		want float64
	}{
		{name: "before start", now: start.Add(-time.Hour), want: 0},
		{name: "at start", now: start, want: 0},
		{name: "quarter", now: start.Add(18 * time.Hour), want: 25},
		{name: "half", now: start.Add(36 * time.Hour), want: 50},
		{name: "at due", now: due, want: 100},
		{name: "past due clamped", now: due.Add(100 * time.Hour), want: 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Progress(start, due, tc.now), 1e-9)
		})
	}
}

func TestProgressDegenerateInterval(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.InDelta(t, 100, Progress(start, start, start.Add(-time.Hour)), 1e-9)
	assert.InDelta(t, 100, Progress(start, start.Add(-time.Hour), start), 1e-9)
}

func TestProgressMonotone(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	due := start.Add(MonthlyCycle)

	prev := -1.0
	for now := start.Add(-24 * time.Hour); now.Before(due.Add(48 * time.Hour)); now = now.Add(6 * time.Hour) {
		p := Progress(start, due, now)
		assert.GreaterOrEqual(t, p, prev)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 100.0)
		prev = p
	}
}

func TestRemaining(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 10*time.Hour, Remaining(due, due.Add(-10*time.Hour)))
	assert.Equal(t, time.Duration(0), Remaining(due, due))
	assert.Equal(t, time.Duration(0), Remaining(due, due.Add(time.Hour)))
}
