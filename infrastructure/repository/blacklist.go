package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/linkvault-api/infrastructure/database/postgres"
)

const blacklistedIPsTable = "blacklisted_ips"

type BlacklistRepository interface {
	IsBlacklisted(ipAddress string) (bool, error)
}

type blacklistRepository struct {
	conn *postgres.Connection
}

func NewBlacklistRepository(conn *postgres.Connection) BlacklistRepository {
	return &blacklistRepository{
		conn: conn,
	}
}

func (r *blacklistRepository) IsBlacklisted(ipAddress string) (bool, error) {
	queryBuilder := squirrel.
		Select("1").
		From(blacklistedIPsTable).
		Where(squirrel.Eq{"ip_address": ipAddress}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	blacklistSQL, blacklistArgs, err := queryBuilder.ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.conn.QueryRow(blacklistSQL, blacklistArgs...).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, errors.Wrap(err, "erro ao consultar blacklist de IPs")
	}

	return true, nil
}
