package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/linkvault-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

const clicksTable = "clicks"

type ClickRepository interface {
	CreateClick(click *domain.Click) (*domain.Click, error)
	HasRecentClick(ctx context.Context, linkID int, ipAddress string, since time.Time) (bool, error)
	ListClicksByLink(linkID int, limit int) ([]*domain.Click, error)
}

type clickRepository struct {
	conn *postgres.Connection
}

func NewClickRepository(conn *postgres.Connection) ClickRepository {
	return &clickRepository{
		conn: conn,
	}
}

func (r *clickRepository) CreateClick(click *domain.Click) (*domain.Click, error) {
	queryBuilder := squirrel.
		Insert(clicksTable).
		Columns("link_id", "user_id", "ip_address", "user_agent", "country", "region", "city",
			"device", "browser", "os", "referrer", "language", "is_unique", "earnings", "ad_network").
		Values(click.LinkID, click.UserID, click.IPAddress, click.UserAgent, click.Country, click.Region,
			click.City, click.Device, click.Browser, click.OS, click.Referrer, click.Language,
			click.IsUnique, click.Earnings, click.AdNetwork).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	clicksSQL, clicksArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(clicksSQL, clicksArgs...).Scan(&click.ID, &click.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao registrar clique")
	}

	return click, nil
}

// HasRecentClick verifica se o par (link, cliente) já clicou desde o instante
// informado — base da janela de unicidade de 24h. Recebe contexto porque o
// pipeline de redirecionamento chama com timeout curto.
func (r *clickRepository) HasRecentClick(ctx context.Context, linkID int, ipAddress string, since time.Time) (bool, error) {
	queryBuilder := squirrel.
		Select("1").
		From(clicksTable).
		Where(squirrel.And{
			squirrel.Eq{"link_id": linkID},
			squirrel.Eq{"ip_address": ipAddress},
			squirrel.GtOrEq{"created_at": since},
		}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	clicksSQL, clicksArgs, err := queryBuilder.ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.conn.DB.QueryRowContext(ctx, clicksSQL, clicksArgs...).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, errors.Wrap(err, "erro ao verificar clique recente")
	}

	return true, nil
}

func (r *clickRepository) ListClicksByLink(linkID int, limit int) ([]*domain.Click, error) {
	queryBuilder := squirrel.
		Select("id", "link_id", "user_id", "ip_address", "user_agent", "country", "region", "city",
			"device", "browser", "os", "referrer", "language", "is_unique", "earnings", "ad_network", "created_at").
		From(clicksTable).
		Where(squirrel.Eq{"link_id": linkID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	clicksSQL, clicksArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(clicksSQL, clicksArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar cliques")
	}
	defer rows.Close()

	var clicks []*domain.Click
	for rows.Next() {
		click := &domain.Click{}
		err := rows.Scan(
			&click.ID,
			&click.LinkID,
			&click.UserID,
			&click.IPAddress,
			&click.UserAgent,
			&click.Country,
			&click.Region,
			&click.City,
			&click.Device,
			&click.Browser,
			&click.OS,
			&click.Referrer,
			&click.Language,
			&click.IsUnique,
			&click.Earnings,
			&click.AdNetwork,
			&click.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		clicks = append(clicks, click)
	}

	return clicks, rows.Err()
}
