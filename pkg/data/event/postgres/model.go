package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/code-payments/code-vault/pkg/data/event"
	pgutil "github.com/code-payments/code-vault/pkg/database/postgres"
	q "github.com/code-payments/code-vault/pkg/database/query"
)

const (
	tableName = "vault__core_event"

	allColumns = `id, event_id, transaction_id, program, name, data, created_at`
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	EventId string `db:"event_id"`

	Transaction string `db:"transaction_id"`

	Program string `db:"program"`
	Name    string `db:"name"`
	Data    []byte `db:"data"`

	CreatedAt time.Time `db:"created_at"`
}

func toModel(obj *event.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	data := obj.Data
	if data == nil {
		data = []byte{}
	}

	createdAt := obj.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &model{
		EventId:     obj.EventId,
		Transaction: obj.Transaction,
		Program:     obj.Program,
		Name:        obj.Name,
		Data:        data,
		CreatedAt:   createdAt,
	}, nil
}

func fromModel(obj *model) *event.Record {
	return &event.Record{
		Id:          uint64(obj.Id.Int64),
		EventId:     obj.EventId,
		Transaction: obj.Transaction,
		Program:     obj.Program,
		Name:        obj.Name,
		Data:        obj.Data,
		CreatedAt:   obj.CreatedAt,
	}
}

func (m *model) dbSave(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(event_id, transaction_id, program, name, data, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING ` + allColumns

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.EventId,
			m.Transaction,
			m.Program,
			m.Name,
			m.Data,
			m.CreatedAt.UTC(),
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, event.ErrEventExists)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, eventId string) (*model, error) {
	res := &model{}

	query := `SELECT ` + allColumns + `
		FROM ` + tableName + `
		WHERE event_id = $1
		LIMIT 1`

	err := db.GetContext(ctx, res, query, eventId)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, event.ErrEventNotFound)
	}
	return res, nil
}

func dbGetAllByTransaction(ctx context.Context, db *sqlx.DB, transaction string) ([]*model, error) {
	res := []*model{}

	query := `SELECT ` + allColumns + `
		FROM ` + tableName + `
		WHERE transaction_id = $1
		ORDER BY id ASC`

	err := db.SelectContext(ctx, &res, query, transaction)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, event.ErrEventNotFound)
	}
	if len(res) == 0 {
		return nil, event.ErrEventNotFound
	}
	return res, nil
}

func dbGetAll(ctx context.Context, db *sqlx.DB, cursor q.Cursor, limit uint64, direction q.Ordering) ([]*model, error) {
	res := []*model{}

	query := `SELECT ` + allColumns + `
		FROM ` + tableName + `
		WHERE (TRUE)`

	query, opts := q.PaginateQuery(query, nil, cursor, limit, direction)

	err := db.SelectContext(ctx, &res, query, opts...)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, event.ErrEventNotFound)
	}
	if len(res) == 0 {
		return nil, event.ErrEventNotFound
	}
	return res, nil
}

func dbGetAllByProgram(ctx context.Context, db *sqlx.DB, program string, req *q.QueryOptions) ([]*model, error) {
	res := []*model{}

	condition := `program = $1`
	opts := []interface{}{program}

	if !req.Start.IsZero() {
		opts = append(opts, req.Start.UTC())
		condition += ` AND created_at >= $` + strconv.Itoa(len(opts))
	}
	if !req.End.IsZero() {
		opts = append(opts, req.End.UTC())
		condition += ` AND created_at < $` + strconv.Itoa(len(opts))
	}

	query := `SELECT ` + allColumns + `
		FROM ` + tableName + `
		WHERE (` + condition + `)`

	query, opts = q.PaginateQuery(query, opts, req.Cursor, req.Limit, req.SortBy)

	err := db.SelectContext(ctx, &res, query, opts...)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, event.ErrEventNotFound)
	}
	if len(res) == 0 {
		return nil, event.ErrEventNotFound
	}
	return res, nil
}
