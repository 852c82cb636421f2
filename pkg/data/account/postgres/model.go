package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/code-payments/code-vault/pkg/data/account"
	pgutil "github.com/code-payments/code-vault/pkg/database/postgres"
)

const (
	tableName = "vault__core_account"

	allColumns = `id, address, owner, lamports, data, version, last_updated_at`
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Address string `db:"address"`
	Owner   string `db:"owner"`

	// Stored as the two's complement bit pattern, since postgres has no
	// unsigned 64 bit integer type
	Lamports int64  `db:"lamports"`
	Data     []byte `db:"data"`

	Version int64 `db:"version"`

	LastUpdatedAt time.Time `db:"last_updated_at"`
}

func toModel(obj *account.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	data := obj.Data
	if data == nil {
		data = []byte{}
	}

	return &model{
		Address: obj.Address,
		Owner:   obj.Owner,

		Lamports: int64(obj.Lamports),
		Data:     data,

		Version: int64(obj.Version),

		LastUpdatedAt: obj.LastUpdatedAt,
	}, nil
}

func fromModel(obj *model) *account.Record {
	return &account.Record{
		Id: uint64(obj.Id.Int64),

		Address: obj.Address,
		Owner:   obj.Owner,

		Lamports: uint64(obj.Lamports),
		Data:     obj.Data,

		Version: uint64(obj.Version),

		LastUpdatedAt: obj.LastUpdatedAt,
	}
}

// dbSave creates or updates the account within tx. Creation requires that the
// address is unused, and updates require the stored version to be unchanged.
func (m *model) dbSave(ctx context.Context, tx *sqlx.Tx) error {
	var query string
	if m.Version == 0 {
		query = `INSERT INTO ` + tableName + `
			(address, owner, lamports, data, version, last_updated_at)
			VALUES ($1, $2, $3, $4, $5::BIGINT + 1, $6)

			ON CONFLICT (address)
			DO NOTHING

			RETURNING ` + allColumns
	} else {
		query = `UPDATE ` + tableName + `
			SET owner = $2, lamports = $3, data = $4, version = $5::BIGINT + 1, last_updated_at = $6
			WHERE address = $1 AND version = $5::BIGINT

			RETURNING ` + allColumns
	}

	m.LastUpdatedAt = time.Now()

	err := tx.QueryRowxContext(
		ctx,
		query,

		m.Address,
		m.Owner,

		m.Lamports,
		m.Data,

		m.Version,

		m.LastUpdatedAt.UTC(),
	).StructScan(m)

	return pgutil.CheckNoRows(err, account.ErrStaleAccountState)
}

func dbSaveBatch(ctx context.Context, db *sqlx.DB, models ...*model) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelRepeatableRead, func(tx *sqlx.Tx) error {
		for _, m := range models {
			if err := m.dbSave(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	res := &model{}

	query := `SELECT ` + allColumns + `
		FROM ` + tableName + `
		WHERE address = $1
		LIMIT 1`

	err := db.GetContext(ctx, res, query, address)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, account.ErrAccountNotFound)
	}
	return res, nil
}

func dbGetBatch(ctx context.Context, db *sqlx.DB, addresses ...string) ([]*model, error) {
	res := []*model{}

	if len(addresses) == 0 {
		return res, nil
	}

	query, args, err := sqlx.In(`SELECT `+allColumns+`
		FROM `+tableName+`
		WHERE address IN (?)`,
		addresses,
	)
	if err != nil {
		return nil, err
	}

	err = db.SelectContext(ctx, &res, db.Rebind(query), args...)
	if err != nil && !pgutil.IsNoRows(err) {
		return nil, err
	}
	return res, nil
}
