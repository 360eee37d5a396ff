// Package db is the persistence layer: Store owns the GORM handle and runs
// every repository call as one unit of work, and the repositories build the
// entity queries and reports on top of it.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	sqlite3 "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver string
	// DSN, when set, is used as is instead of the PostgreSQL fields below.
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path is the SQLite database file, or ":memory:".
	Path         string
	MaxOpenConns int
	SlowQuery    time.Duration
}

func (c *Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverPostgres, "":
		if c.DSN != "" {
			return postgres.Open(c.DSN), nil
		}
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
		return postgres.Open(dsn), nil
	case DriverSQLite:
		path := c.Path
		if path == "" {
			path = ":memory:"
		}
		if !strings.Contains(path, "?") {
			path += "?_foreign_keys=on"
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// Tables lists the schema in dependency order.
func Tables() []any {
	return []any{
		&models.Company{},
		&models.Client{},
		&models.Vehicle{},
		&models.Employee{},
		&models.Transport{},
	}
}

// Store is the single owner of the database handle. It is safe for
// concurrent use; each call runs in its own transaction.
type Store struct {
	db     *gorm.DB
	driver string
	logger *zap.Logger
}

// Open connects, creates missing tables and returns the store. The caller
// owns it and must Close it.
func Open(cfg *Config, logger *zap.Logger) (*Store, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(logger, cfg.SlowQuery),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps an in-memory
	// database alive and shared.
	if cfg.Driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.AutoMigrate(Tables()...); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	driver := cfg.Driver
	if driver == "" {
		driver = DriverPostgres
	}
	return &Store{db: db, driver: driver, logger: logger.Named("store")}, nil
}

// OpenWithRetry keeps calling Open until it succeeds, the policy gives up or
// ctx is done. It is meant for process start-up while the database may still
// be booting.
func OpenWithRetry(ctx context.Context, cfg *Config, logger *zap.Logger, policy backoff.BackOff) (*Store, error) {
	var store *Store
	err := backoff.RetryNotify(func() error {
		var err error
		store, err = Open(cfg, logger)
		return err
	}, backoff.WithContext(policy, ctx), func(err error, wait time.Duration) {
		logger.Warn("database not ready, retrying",
			zap.Error(err),
			zap.Duration("wait", wait),
		)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// WithTransaction runs fn as one unit of work: all of its writes commit
// together or none do. The returned error is classified into the errors
// package taxonomy.
func (s *Store) WithTransaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	txID := uuid.NewString()
	err := s.db.WithContext(ctx).Transaction(fn)
	if err != nil {
		s.logger.Debug("unit of work rolled back",
			zap.String("op", op),
			zap.String("tx_id", txID),
			zap.Error(err),
		)
		return classify(op, err)
	}
	s.logger.Debug("unit of work committed",
		zap.String("op", op),
		zap.String("tx_id", txID),
	)
	return nil
}

// sortKey makes text columns sort byte-wise regardless of the database
// collation. SQLite already compares with BINARY.
func (s *Store) sortKey(column string) string {
	if s.driver == DriverPostgres {
		return column + ` COLLATE "C"`
	}
	return column
}

// Exec runs a raw statement outside the repositories, for maintenance and tests.
func (s *Store) Exec(ctx context.Context, query string, params ...interface{}) error {
	if err := s.db.WithContext(ctx).Exec(query, params...).Error; err != nil {
		return classify("exec", err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// classify maps driver errors to the errors package. Errors that are already
// part of the taxonomy pass through unchanged.
func classify(op string, err error) error {
	var (
		notFound   *e.NotFoundError
		constraint *e.ConstraintError
		validation *e.ValidationError
		storage    *e.StorageError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &constraint),
		errors.As(err, &validation), errors.As(err, &storage):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &e.ConstraintError{Kind: e.Unique, Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &e.ConstraintError{Kind: e.ForeignKey, Err: err}
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return &e.ConstraintError{Kind: e.Check, Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if kind, ok := pgConstraintKinds[pgErr.Code]; ok {
			return &e.ConstraintError{Kind: kind, Constraint: pgErr.ConstraintName, Err: err}
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		if kind, ok := sqliteConstraintKinds[liteErr.ExtendedCode]; ok {
			return &e.ConstraintError{Kind: kind, Err: err}
		}
	}

	return &e.StorageError{Op: op, Err: err}
}

var pgConstraintKinds = map[string]e.ConstraintKind{
	"23505": e.Unique,
	"23503": e.ForeignKey,
	"23514": e.Check,
	"23502": e.NotNull,
}

var sqliteConstraintKinds = map[sqlite3.ErrNoExtended]e.ConstraintKind{
	sqlite3.ErrConstraintUnique:     e.Unique,
	sqlite3.ErrConstraintPrimaryKey: e.Unique,
	sqlite3.ErrConstraintForeignKey: e.ForeignKey,
	sqlite3.ErrConstraintCheck:      e.Check,
	sqlite3.ErrConstraintNotNull:    e.NotNull,
}
