package postgres

import (
	"os"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-vault/pkg/data/event"
	"github.com/code-payments/code-vault/pkg/data/event/tests"

	postgrestest "github.com/code-payments/code-vault/pkg/database/postgres/test"

	_ "github.com/jackc/pgx/v4/stdlib"
)

const (
	// Used for testing ONLY, the table and migrations are external to this repository
	tableCreate = `
		CREATE TABLE vault__core_event(
			id SERIAL NOT NULL PRIMARY KEY,

			event_id TEXT NOT NULL,

			transaction_id TEXT NOT NULL,

			program TEXT NOT NULL,
			name TEXT NOT NULL,
			data BYTEA NOT NULL,

			created_at TIMESTAMP WITH TIME ZONE NOT NULL,

			CONSTRAINT vault__core_event__uniq__event_id UNIQUE (event_id)
		);
	`

	// Used for testing ONLY, the table and migrations are external to this repository
	tableDestroy = `
		DROP TABLE vault__core_event;
	`
)

var (
	testStore event.Store
	teardown  func()
)

func TestMain(m *testing.M) {
	log := logrus.StandardLogger()

	testPool, err := dockertest.NewPool("")
	if err != nil {
		log.WithError(err).Error("Error creating docker pool")
		os.Exit(1)
	}

	db, cleanUpFunc, err := postgrestest.StartPostgresDB(testPool)
	if err != nil {
		log.WithError(err).Error("Error starting postgres image")
		os.Exit(1)
	}

	if err := postgrestest.SetupSchema(db, tableCreate); err != nil {
		log.WithError(err).Error("Error creating test tables")
		cleanUpFunc()
		os.Exit(1)
	}

	testStore = New(db)
	teardown = func() {
		if pc := recover(); pc != nil {
			cleanUpFunc()
			panic(pc)
		}

		if err := postgrestest.SetupSchema(db, tableDestroy, tableCreate); err != nil {
			log.WithError(err).Error("Error resetting test tables")
			cleanUpFunc()
			os.Exit(1)
		}
	}

	code := m.Run()
	cleanUpFunc()
	os.Exit(code)
}

func TestEventPostgresStore(t *testing.T) {
	tests.RunTests(t, testStore, teardown)
}
