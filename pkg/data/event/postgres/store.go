package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/code-payments/code-vault/pkg/data/event"
	"github.com/code-payments/code-vault/pkg/database/query"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres-backed event.Store
func New(db *sql.DB) event.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Save implements event.Store.Save
func (s *store) Save(ctx context.Context, record *event.Record) error {
	model, err := toModel(record)
	if err != nil {
		return err
	}

	if err := model.dbSave(ctx, s.db); err != nil {
		return err
	}

	fromModel(model).CopyTo(record)
	return nil
}

// Get implements event.Store.Get
func (s *store) Get(ctx context.Context, eventId string) (*event.Record, error) {
	model, err := dbGet(ctx, s.db, eventId)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}

// GetAllByTransaction implements event.Store.GetAllByTransaction
func (s *store) GetAllByTransaction(ctx context.Context, transaction string) ([]*event.Record, error) {
	models, err := dbGetAllByTransaction(ctx, s.db, transaction)
	if err != nil {
		return nil, err
	}
	return fromModels(models), nil
}

// GetAll implements event.Store.GetAll
func (s *store) GetAll(ctx context.Context, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*event.Record, error) {
	models, err := dbGetAll(ctx, s.db, cursor, limit, direction)
	if err != nil {
		return nil, err
	}
	return fromModels(models), nil
}

// GetAllByProgram implements event.Store.GetAllByProgram
func (s *store) GetAllByProgram(ctx context.Context, program string, opts ...query.Option) ([]*event.Record, error) {
	req, err := query.DefaultPaginationHandler(opts...)
	if err != nil {
		return nil, err
	}

	models, err := dbGetAllByProgram(ctx, s.db, program, req)
	if err != nil {
		return nil, err
	}
	return fromModels(models), nil
}

func fromModels(models []*model) []*event.Record {
	res := make([]*event.Record, len(models))
	for i, model := range models {
		res[i] = fromModel(model)
	}
	return res
}
