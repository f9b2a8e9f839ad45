package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/linkvault-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

const earningsTable = "earnings"

type EarningRepository interface {
	CreateEarning(earning *domain.Earning) (bool, error)
	GetSummaryByUser(userID int) (*domain.EarningsSummary, error)
}

type earningRepository struct {
	conn *postgres.Connection
}

func NewEarningRepository(conn *postgres.Connection) EarningRepository {
	return &earningRepository{
		conn: conn,
	}
}

// CreateEarning insere um lançamento no ledger. A tabela tem restrição de
// unicidade em (click_id, type): reaplicar o mesmo lançamento para o mesmo
// clique é descartado silenciosamente, o que garante a idempotência do
// bônus de indicação por evento. Retorna false quando o lançamento já existia.
func (r *earningRepository) CreateEarning(earning *domain.Earning) (bool, error) {
	queryBuilder := squirrel.
		Insert(earningsTable).
		Columns("user_id", "link_id", "click_id", "amount", "type", "source", "country", "description").
		Values(earning.UserID, earning.LinkID, earning.ClickID, earning.Amount, earning.Type,
			earning.Source, earning.Country, earning.Description).
		Suffix("ON CONFLICT (click_id, type) DO NOTHING RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	earningsSQL, earningsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return false, err
	}

	err = r.conn.QueryRow(earningsSQL, earningsArgs...).Scan(&earning.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			// Conflito: lançamento já aplicado para este clique
			return false, nil
		}
		return false, errors.Wrap(err, "erro ao inserir lançamento de ganhos")
	}

	return true, nil
}

func (r *earningRepository) GetSummaryByUser(userID int) (*domain.EarningsSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(e.amount), 0) AS total_earnings,
			COUNT(c.id) AS total_clicks,
			COUNT(c.id) FILTER (WHERE c.is_unique) AS unique_clicks
		FROM earnings e
		LEFT JOIN clicks c ON c.id = e.click_id
		WHERE e.user_id = $1 AND e.type = 'CLICK'`

	summary := &domain.EarningsSummary{}
	err := r.conn.QueryRow(query, userID).Scan(
		&summary.TotalEarnings,
		&summary.TotalClicks,
		&summary.UniqueClicks,
	)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao agregar ganhos do usuário")
	}

	if summary.TotalClicks > 0 {
		summary.AverageCPM = summary.TotalEarnings / float64(summary.TotalClicks) * 1000
	}

	return summary, nil
}
