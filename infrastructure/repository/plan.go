package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/linkvault-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

const plansTable = "plans"

type PlanRepository interface {
	GetPlanByName(name string) (*domain.Plan, error)
	ListPlans() ([]*domain.Plan, error)
}

type planRepository struct {
	conn *postgres.Connection
}

func NewPlanRepository(conn *postgres.Connection) PlanRepository {
	return &planRepository{
		conn: conn,
	}
}

const planColumns = "id, name, display_name, price, referral_bonus, withdrawal_limit, is_active, sort_order"

func (r *planRepository) GetPlanByName(name string) (*domain.Plan, error) {
	queryBuilder := squirrel.
		Select(planColumns).
		From(plansTable).
		Where(squirrel.Eq{"name": name, "is_active": true}).
		PlaceholderFormat(squirrel.Dollar)

	plansSQL, plansArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	plan := &domain.Plan{}
	err = r.conn.QueryRow(plansSQL, plansArgs...).Scan(
		&plan.ID,
		&plan.Name,
		&plan.DisplayName,
		&plan.Price,
		&plan.ReferralBonus,
		&plan.WithdrawalLimit,
		&plan.IsActive,
		&plan.SortOrder,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar plano")
	}

	return plan, nil
}

func (r *planRepository) ListPlans() ([]*domain.Plan, error) {
	queryBuilder := squirrel.
		Select(planColumns).
		From(plansTable).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("sort_order").
		PlaceholderFormat(squirrel.Dollar)

	plansSQL, plansArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(plansSQL, plansArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar planos")
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		plan := &domain.Plan{}
		err := rows.Scan(
			&plan.ID,
			&plan.Name,
			&plan.DisplayName,
			&plan.Price,
			&plan.ReferralBonus,
			&plan.WithdrawalLimit,
			&plan.IsActive,
			&plan.SortOrder,
		)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}
