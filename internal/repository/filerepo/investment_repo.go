package filerepo

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/investogold/goldvest/internal/domain"
	"github.com/investogold/goldvest/internal/repository/repoargs"
	"github.com/investogold/goldvest/pkg/uow"
)

const investmentKeyPrefix = "investment/"

type InvestmentRepository struct {
	db uow.DBTX
}

func NewInvestmentRepository(db uow.DBTX) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func investmentKey(id string) string {
	return investmentKeyPrefix + id
}

// CreateInvestment создает активную позицию с нулевыми накопленными выплатами.
func (r *InvestmentRepository) CreateInvestment(
	_ context.Context,
	args repoargs.CreateInvestment,
) (*domain.Investment, error) {
	now := time.Now()
	investment := domain.Investment{
		ID:                  newID("INV"),
		CreatedAt:           now,
		UpdatedAt:           now,
		UserID:              args.UserID,
		Amount:              args.Amount,
		StartedAt:           args.StartedAt,
		NextCumulativeAt:    args.NextCumulativeAt,
		NextMonthlyAt:       args.NextMonthlyAt,
		TotalCumulativePaid: decimal.Zero,
		TotalMonthlyPaid:    decimal.Zero,
		Status:              domain.InvestmentStatusActive,
	}

	if err := r.saveInvestment(&investment); err != nil {
		return nil, convertErr(err, "create investment for user %s", args.UserID)
	}
	return &investment, nil
}

func (r *InvestmentRepository) FindByID(_ context.Context, id string) (*domain.Investment, error) {
	investment, err := r.loadInvestment(id)
	if err != nil {
		return nil, convertErr(err, "find investment %s", id)
	}
	return investment, nil
}

// GetByUserID возвращает позиции юзера отсортированные по дате открытия.
func (r *InvestmentRepository) GetByUserID(_ context.Context, userID string) ([]domain.Investment, error) {
	var investments []domain.Investment

	scanErr := r.db.Scan(investmentKeyPrefix, func(_ string, value []byte) error {
		var investment domain.Investment
		if err := json.Unmarshal(value, &investment); err != nil {
			return errors.New("decode investment record: " + err.Error())
		}
		if investment.UserID == userID {
			investments = append(investments, investment)
		}
		return nil
	})
	if scanErr != nil {
		return nil, convertErr(scanErr, "get investments for user %s", userID)
	}

	sort.Slice(investments, func(i, j int) bool {
		return investments[i].StartedAt.Before(investments[j].StartedAt)
	})
	return investments, nil
}

// UpdateProfitSchedule применяет новое расписание выплат и накопленные итоги
// после снятия прибыли.
func (r *InvestmentRepository) UpdateProfitSchedule(
	_ context.Context,
	args repoargs.ProfitScheduleUpdate,
) (*domain.Investment, error) {
	investment, loadErr := r.loadInvestment(args.ID)
	if loadErr != nil {
		return nil, convertErr(loadErr, "update profit schedule for investment %s", args.ID)
	}

	investment.NextCumulativeAt = args.NextCumulativeAt
	investment.NextMonthlyAt = args.NextMonthlyAt
	investment.TotalCumulativePaid = args.TotalCumulativePaid
	investment.TotalMonthlyPaid = args.TotalMonthlyPaid
	investment.UpdatedAt = time.Now()

	if err := r.saveInvestment(investment); err != nil {
		return nil, convertErr(err, "update profit schedule for investment %s", args.ID)
	}
	return investment, nil
}

func (r *InvestmentRepository) loadInvestment(id string) (*domain.Investment, error) {
	value, loadErr := r.db.Load(investmentKey(id))
	if loadErr != nil {
		return nil, loadErr //nolint:wrapcheck
	}
	var investment domain.Investment
	if err := json.Unmarshal(value, &investment); err != nil {
		return nil, errors.New("decode investment record: " + err.Error())
	}
	return &investment, nil
}

func (r *InvestmentRepository) saveInvestment(investment *domain.Investment) error {
	value, marshalErr := json.Marshal(investment)
	if marshalErr != nil {
		return errors.New("encode investment record: " + marshalErr.Error())
	}
	return r.db.Save(investmentKey(investment.ID), value) //nolint:wrapcheck
}
