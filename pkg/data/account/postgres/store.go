package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/code-payments/code-vault/pkg/data/account"
	pgutil "github.com/code-payments/code-vault/pkg/database/postgres"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres-backed account.Store
func New(db *sql.DB) account.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Get implements account.Store.Get
func (s *store) Get(ctx context.Context, address string) (*account.Record, error) {
	model, err := dbGet(ctx, s.db, address)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}

// GetBatch implements account.Store.GetBatch
func (s *store) GetBatch(ctx context.Context, addresses ...string) (map[string]*account.Record, error) {
	models, err := dbGetBatch(ctx, s.db, addresses...)
	if err != nil {
		return nil, err
	}

	res := make(map[string]*account.Record, len(models))
	for _, model := range models {
		res[model.Address] = fromModel(model)
	}
	return res, nil
}

// SaveBatch implements account.Store.SaveBatch
//
// The batch runs at repeatable read, so a concurrent writer to the same rows
// surfaces as a serialization failure. Those are retried, and the retry then
// observes the new version and fails with account.ErrStaleAccountState.
func (s *store) SaveBatch(ctx context.Context, records ...*account.Record) error {
	var models []*model
	err := pgutil.ExecuteRetryable(func() error {
		// Models are scanned into on save, so each attempt starts from the records
		models = make([]*model, len(records))
		for i, record := range records {
			model, err := toModel(record)
			if err != nil {
				return err
			}
			models[i] = model
		}

		return pgutil.ExecuteTxWithinCtx(ctx, s.db, sql.LevelRepeatableRead, func(ctx context.Context) error {
			return dbSaveBatch(ctx, s.db, models...)
		})
	})
	if err != nil {
		return err
	}

	for i, model := range models {
		fromModel(model).CopyTo(records[i])
	}
	return nil
}
