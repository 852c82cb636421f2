package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	// Registers the "nrpgx" driver, which is pgx instrumented with new relic
	// datastore segments.
	_ "github.com/newrelic/go-agent/v3/integrations/nrpgx"
)

const (
	driverName = "nrpgx"

	defaultMaxOpenConnections = 10
	defaultMaxIdleConnections = 5
	defaultConnMaxLifetime    = 30 * time.Minute
)

type Config struct {
	User               string
	Host               string
	Password           string
	Port               int
	DbName             string
	DisableSSL         bool
	MaxOpenConnections int
	MaxIdleConnections int
}

// DSN returns the connection string for the config
func (c *Config) DSN() string {
	sslMode := "require"
	if c.DisableSSL {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DbName, sslMode,
	)
}

// Open returns a DB connection pool using username/password credentials. The
// connection is verified before returning.
func Open(ctx context.Context, config *Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, config.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "error opening db")
	}

	maxOpen := config.MaxOpenConnections
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConnections
	}
	maxIdle := config.MaxIdleConnections
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdleConnections
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "error connecting to db")
	}

	return db, nil
}
