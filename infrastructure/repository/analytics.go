package repository

import (
	"time"

	_ "github.com/lib/pq"
	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/linkvault-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

const analyticsTable = "daily_analytics"

type AnalyticsRepository interface {
	IncrementDaily(row *domain.DailyAnalytics) error
	RebuildDay(date time.Time) error
	ListDailyByLink(linkID int, from, to time.Time) ([]*domain.DailyAnalytics, error)
}

type analyticsRepository struct {
	conn *postgres.Connection
}

func NewAnalyticsRepository(conn *postgres.Connection) AnalyticsRepository {
	return &analyticsRepository{
		conn: conn,
	}
}

// IncrementDaily acumula um clique na linha agregada do dia (upsert)
func (r *analyticsRepository) IncrementDaily(row *domain.DailyAnalytics) error {
	query := `
		INSERT INTO daily_analytics (link_id, date, country, device, browser, clicks, earnings)
		VALUES ($1, $2, $3, $4, $5, 1, $6)
		ON CONFLICT (link_id, date, country, device, browser)
		DO UPDATE SET clicks = daily_analytics.clicks + 1,
		              earnings = daily_analytics.earnings + EXCLUDED.earnings`

	_, err := r.conn.Exec(query, row.LinkID, row.Date, row.Country, row.Device, row.Browser, row.Earnings)
	if err != nil {
		return errors.Wrap(err, "erro ao acumular analytics diário")
	}

	return nil
}

// RebuildDay reconstrói os agregados de um dia inteiro a partir da tabela de
// cliques. Usado pelo agendador de sincronização para corrigir qualquer
// deriva dos incrementos por clique.
func (r *analyticsRepository) RebuildDay(date time.Time) error {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	query := `
		INSERT INTO daily_analytics (link_id, date, country, device, browser, clicks, earnings)
		SELECT link_id, $1, country, device, browser, COUNT(*), COALESCE(SUM(earnings), 0)
		FROM clicks
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY link_id, country, device, browser
		ON CONFLICT (link_id, date, country, device, browser)
		DO UPDATE SET clicks = EXCLUDED.clicks,
		              earnings = EXCLUDED.earnings`

	_, err := r.conn.Exec(query, day, next)
	if err != nil {
		return errors.Wrap(err, "erro ao reconstruir analytics do dia")
	}

	return nil
}

func (r *analyticsRepository) ListDailyByLink(linkID int, from, to time.Time) ([]*domain.DailyAnalytics, error) {
	queryBuilder := squirrel.
		Select("id", "link_id", "date", "country", "device", "browser", "clicks", "earnings").
		From(analyticsTable).
		Where(squirrel.And{
			squirrel.Eq{"link_id": linkID},
			squirrel.GtOrEq{"date": from},
			squirrel.LtOrEq{"date": to},
		}).
		OrderBy("date").
		PlaceholderFormat(squirrel.Dollar)

	analyticsSQL, analyticsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(analyticsSQL, analyticsArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar analytics do link")
	}
	defer rows.Close()

	var result []*domain.DailyAnalytics
	for rows.Next() {
		row := &domain.DailyAnalytics{}
		err := rows.Scan(
			&row.ID,
			&row.LinkID,
			&row.Date,
			&row.Country,
			&row.Device,
			&row.Browser,
			&row.Clicks,
			&row.Earnings,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
