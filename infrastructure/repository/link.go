package repository

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/linkvault-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

const linksTable = "links"

type LinkRepository interface {
	CreateLink(link *domain.Link) (*domain.Link, error)
	GetLinkByCode(code string) (*domain.Link, error)
	ListLinksByUser(userID int) ([]*domain.Link, error)
	RegisterClick(linkID int, isUnique bool, earnings float64, clickedAt time.Time) error
}

type linkRepository struct {
	conn *postgres.Connection
}

func NewLinkRepository(conn *postgres.Connection) LinkRepository {
	return &linkRepository{
		conn: conn,
	}
}

func (r *linkRepository) CreateLink(link *domain.Link) (*domain.Link, error) {
	queryBuilder := squirrel.
		Insert(linksTable).
		Columns("user_id", "original_url", "short_code", "custom_alias", "password", "click_limit", "is_active", "expires_at").
		Values(link.UserID, link.OriginalURL, link.ShortCode, link.CustomAlias, link.Password, link.ClickLimit, link.IsActive, link.ExpiresAt).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	linksSQL, linksArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(linksSQL, linksArgs...).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao inserir link")
	}

	return link, nil
}

const linkColumns = `id, user_id, original_url, short_code, custom_alias, password, click_limit,
	total_clicks, unique_clicks, total_earnings, is_active, expires_at, last_clicked_at, created_at, updated_at`

// GetLinkByCode busca um link ativo pelo short code ou pelo alias customizado
func (r *linkRepository) GetLinkByCode(code string) (*domain.Link, error) {
	queryBuilder := squirrel.
		Select(linkColumns).
		From(linksTable).
		Where(squirrel.And{
			squirrel.Or{
				squirrel.Eq{"short_code": code},
				squirrel.Eq{"custom_alias": code},
			},
			squirrel.Eq{"is_active": true},
		}).
		PlaceholderFormat(squirrel.Dollar)

	linksSQL, linksArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	link := &domain.Link{}
	err = r.conn.QueryRow(linksSQL, linksArgs...).Scan(
		&link.ID,
		&link.UserID,
		&link.OriginalURL,
		&link.ShortCode,
		&link.CustomAlias,
		&link.Password,
		&link.ClickLimit,
		&link.TotalClicks,
		&link.UniqueClicks,
		&link.TotalEarnings,
		&link.IsActive,
		&link.ExpiresAt,
		&link.LastClickedAt,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar link")
	}

	return link, nil
}

func (r *linkRepository) ListLinksByUser(userID int) ([]*domain.Link, error) {
	queryBuilder := squirrel.
		Select(linkColumns).
		From(linksTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	linksSQL, linksArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(linksSQL, linksArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar links")
	}
	defer rows.Close()

	var links []*domain.Link
	for rows.Next() {
		link := &domain.Link{}
		err := rows.Scan(
			&link.ID,
			&link.UserID,
			&link.OriginalURL,
			&link.ShortCode,
			&link.CustomAlias,
			&link.Password,
			&link.ClickLimit,
			&link.TotalClicks,
			&link.UniqueClicks,
			&link.TotalEarnings,
			&link.IsActive,
			&link.ExpiresAt,
			&link.LastClickedAt,
			&link.CreatedAt,
			&link.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

// RegisterClick atualiza as estatísticas agregadas do link após um clique
func (r *linkRepository) RegisterClick(linkID int, isUnique bool, earnings float64, clickedAt time.Time) error {
	queryBuilder := squirrel.
		Update(linksTable).
		Set("total_clicks", squirrel.Expr("total_clicks + 1")).
		Set("total_earnings", squirrel.Expr("total_earnings + ?", earnings)).
		Set("last_clicked_at", clickedAt).
		Set("updated_at", clickedAt).
		Where(squirrel.Eq{"id": linkID})

	if isUnique {
		queryBuilder = queryBuilder.Set("unique_clicks", squirrel.Expr("unique_clicks + 1"))
	}

	linksSQL, linksArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(linksSQL, linksArgs...)
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar estatísticas do link")
	}

	return nil
}
