package filerepo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/investogold/goldvest/internal/domain"
	"github.com/investogold/goldvest/internal/repository/repoargs"
	"github.com/investogold/goldvest/pkg/uow"
)

const (
	userKeyPrefix      = "user/"
	userEmailKeyPrefix = "user_email/"
)

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func userKey(id string) string {
	return userKeyPrefix + id
}

// userEmailKey - ключ индекса уникальности email. Email нормализуется в нижний регистр.
func userEmailKey(email string) string {
	return userEmailKeyPrefix + strings.ToLower(email)
}

// CreateUser создает юзера с нулевым балансом. Возвращает ErrDuplicateKey,
// если email уже занят.
func (r *UserRepository) CreateUser(_ context.Context, args repoargs.CreateUser) (*domain.User, error) {
	emailKey := userEmailKey(args.Email)
	if _, err := r.db.Load(emailKey); err == nil {
		return nil, convertErr(domain.ErrDuplicateKey, "create user %s", args.Email)
	}

	now := time.Now()
	user := domain.User{
		ID:           newID("USER"),
		CreatedAt:    now,
		UpdatedAt:    now,
		FirstName:    args.FirstName,
		LastName:     args.LastName,
		Email:        args.Email,
		Phone:        args.Phone,
		Country:      args.Country,
		PasswordHash: args.PasswordHash,
		Membership:   args.Membership,
		Balance:      decimal.Zero,
	}

	if err := r.saveUser(&user); err != nil {
		return nil, convertErr(err, "create user %s", args.Email)
	}

	idValue, marshalErr := json.Marshal(user.ID)
	if marshalErr != nil {
		return nil, convertErr(marshalErr, "create user %s", args.Email)
	}
	if err := r.db.Save(emailKey, idValue); err != nil {
		return nil, convertErr(err, "create user %s", args.Email)
	}
	return &user, nil
}

func (r *UserRepository) FindUserByID(_ context.Context, id string) (*domain.User, error) {
	user, err := r.loadUser(id)
	if err != nil {
		return nil, convertErr(err, "find user by id %s", id)
	}
	return user, nil
}

func (r *UserRepository) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	idValue, loadErr := r.db.Load(userEmailKey(email))
	if loadErr != nil {
		return nil, convertErr(loadErr, "find user by email %s", email)
	}
	var id string
	if err := json.Unmarshal(idValue, &id); err != nil {
		return nil, convertErr(err, "find user by email %s", email)
	}

	user, err := r.loadUser(id)
	if err != nil {
		return nil, convertErr(err, "find user by email %s", email)
	}
	return user, nil
}

// UpdateBalance выставляет новое абсолютное значение баланса.
func (r *UserRepository) UpdateBalance(_ context.Context, id string, balance decimal.Decimal) (*domain.User, error) {
	user, loadErr := r.loadUser(id)
	if loadErr != nil {
		return nil, convertErr(loadErr, "update balance for user %s", id)
	}
	user.Balance = balance
	user.UpdatedAt = time.Now()

	if err := r.saveUser(user); err != nil {
		return nil, convertErr(err, "update balance for user %s", id)
	}
	return user, nil
}

func (r *UserRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) (*domain.User, error) {
	user, loadErr := r.loadUser(id)
	if loadErr != nil {
		return nil, convertErr(loadErr, "update last login for user %s", id)
	}
	user.LastLoginAt = &at
	user.UpdatedAt = time.Now()

	if err := r.saveUser(user); err != nil {
		return nil, convertErr(err, "update last login for user %s", id)
	}
	return user, nil
}

func (r *UserRepository) loadUser(id string) (*domain.User, error) {
	value, loadErr := r.db.Load(userKey(id))
	if loadErr != nil {
		return nil, loadErr //nolint:wrapcheck
	}
	var user domain.User
	if err := json.Unmarshal(value, &user); err != nil {
		return nil, errors.New("decode user record: " + err.Error())
	}
	return &user, nil
}

func (r *UserRepository) saveUser(user *domain.User) error {
	value, marshalErr := json.Marshal(user)
	if marshalErr != nil {
		return errors.New("encode user record: " + marshalErr.Error())
	}
	return r.db.Save(userKey(user.ID), value) //nolint:wrapcheck
}
