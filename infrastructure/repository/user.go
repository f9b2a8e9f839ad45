package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/linkvault-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

const usersTable = "users"

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	UpdateUser(user *domain.User) error
	GetUserByEmail(email string) (*domain.User, error)
	GetUserByID(userID int) (*domain.User, error)
	GetUserByReferralCode(code string) (*domain.User, error)
	CreditEarnings(userID int, amount float64) error
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	queryBuilder := squirrel.
		Insert(usersTable).
		Columns("name", "email", "password_hash", "active", "plan_name", "referred_by", "referral_code").
		Values(user.Name, user.Email, user.PasswordHash, user.Active, user.PlanName, user.ReferredBy, user.ReferralCode).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	usersSQL, usersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(usersSQL, usersArgs...).Scan(&user.ID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) UpdateUser(user *domain.User) error {
	queryBuilder := squirrel.
		Update(usersTable).
		Set("active", user.Active).
		Where(squirrel.Eq{"id": user.ID})

	if user.Name != "" {
		queryBuilder = queryBuilder.Set("name", user.Name)
	}

	if user.Email != "" {
		queryBuilder = queryBuilder.Set("email", user.Email)
	}

	if user.PasswordHash != "" {
		queryBuilder = queryBuilder.Set("password_hash", user.PasswordHash)
	}

	if user.PlanName != "" {
		queryBuilder = queryBuilder.Set("plan_name", user.PlanName)
	}

	if user.Deleted {
		queryBuilder = queryBuilder.Set("deleted", true)
		queryBuilder = queryBuilder.Set("deleted_at", user.DeletedAt)
	}

	usersSQL, usersArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(usersSQL, usersArgs...)
	if err != nil {
		return err
	}

	return nil
}

const userColumns = `id, name, email, password_hash, active, plan_name, referred_by, referral_code,
	total_earnings, available_balance, created_at, updated_at`

func (r *userRepository) GetUserByEmail(email string) (*domain.User, error) {
	return r.getUserWhere(squirrel.Eq{"email": email})
}

func (r *userRepository) GetUserByID(userID int) (*domain.User, error) {
	return r.getUserWhere(squirrel.Eq{"id": userID})
}

func (r *userRepository) GetUserByReferralCode(code string) (*domain.User, error) {
	return r.getUserWhere(squirrel.Eq{"referral_code": code})
}

func (r *userRepository) getUserWhere(cond squirrel.Eq) (*domain.User, error) {
	queryBuilder := squirrel.
		Select(userColumns).
		From(usersTable).
		Where(cond).
		Where(squirrel.Eq{"deleted": false}).
		PlaceholderFormat(squirrel.Dollar)

	usersSQL, usersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	user := &domain.User{}
	err = r.conn.QueryRow(usersSQL, usersArgs...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.PlanName,
		&user.ReferredBy,
		&user.ReferralCode,
		&user.TotalEarnings,
		&user.AvailableBalance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar usuário")
	}

	return user, nil
}

// CreditEarnings incrementa o total acumulado e o saldo disponível do usuário
func (r *userRepository) CreditEarnings(userID int, amount float64) error {
	queryBuilder := squirrel.
		Update(usersTable).
		Set("total_earnings", squirrel.Expr("total_earnings + ?", amount)).
		Set("available_balance", squirrel.Expr("available_balance + ?", amount)).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	usersSQL, usersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(usersSQL, usersArgs...)
	if err != nil {
		return errors.Wrap(err, "erro ao creditar ganhos do usuário")
	}

	return nil
}
