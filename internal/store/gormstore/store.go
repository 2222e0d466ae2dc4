// Package gormstore is the gorm persistence engine. It runs against
// PostgreSQL (through a pgx pool) or MySQL, and Open accepts any other gorm
// dialector.
//
// Row structs carry the column mapping in gorm tags; their BeforeSave hooks
// check constraints and gorm stamps create_date/update_date from the store
// clock.
package gormstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/light-bringer/procat-orm/internal/logger"
	"github.com/light-bringer/procat-orm/internal/pkg/clock"
)

// PingTimeout bounds the connectivity check done when a store is opened.
const PingTimeout = 10 * time.Second

// datetimePrecision keeps MySQL DATETIME columns at microsecond precision,
// the resolution of clock.Clock.
var datetimePrecision = 6

// Options configure a Store.
type Options struct {
	Clock         clock.Clock
	Log           zerolog.Logger
	SlowThreshold time.Duration
	// MaxConns caps the PostgreSQL pool; zero keeps the pgx default.
	MaxConns int32
}

func (o Options) clock() clock.Clock {
	if o.Clock == nil {
		return clock.NewRealClock()
	}
	return o.Clock
}

// Store owns a gorm handle and the connections behind it.
type Store struct {
	db     *gorm.DB
	log    zerolog.Logger
	closer func()
}

// New wraps an existing gorm handle. The caller keeps ownership of its
// connections.
func New(db *gorm.DB) *Store {
	return &Store{db: db, log: zerolog.Nop(), closer: func() {}}
}

// OpenPostgres connects through a pgx pool. Queries are traced to opts.Log
// when it is at trace or debug level.
func OpenPostgres(ctx context.Context, dsn string, opts Options) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = opts.MaxConns
	}
	if level := opts.Log.GetLevel(); level <= zerolog.DebugLevel {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(opts.Log.With().Str("component", "pgx").Logger()),
			LogLevel: logger.PgxTraceLevel(level),
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig(opts))
	if err != nil {
		_ = sqlDB.Close()
		pool.Close()
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	opts.Log.Info().Str("dialect", "postgres").Msg("connected to the database")

	return &Store{
		db:  db,
		log: opts.Log,
		closer: func() {
			_ = sqlDB.Close()
			pool.Close()
		},
	}, nil
}

// OpenMySQL connects through go-sql-driver/mysql. Time values are parsed in
// UTC and UPDATE reports matched rather than changed rows, so an update of a
// present row never looks like a miss.
func OpenMySQL(ctx context.Context, cfg *mysql.Config, opts Options) (*Store, error) {
	cfg = cfg.Clone()
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	cfg.Loc = time.UTC

	store, err := Open(gormmysql.New(gormmysql.Config{
		DSN:                      cfg.FormatDSN(),
		DefaultDatetimePrecision: &datetimePrecision,
	}), opts)
	if err != nil {
		return nil, err
	}

	sqlDB, err := store.SQL()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if opts.MaxConns > 0 {
		sqlDB.SetMaxOpenConns(int(opts.MaxConns))
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	opts.Log.Info().Str("dialect", "mysql").Msg("connected to the database")
	return store, nil
}

// Open builds a store on any gorm dialector, with the store logger and
// clock. The store owns the connections the dialector opens.
func Open(dialector gorm.Dialector, opts Options) (*Store, error) {
	db, err := gorm.Open(dialector, gormConfig(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	return &Store{
		db:     db,
		log:    opts.Log,
		closer: func() { _ = sqlDB.Close() },
	}, nil
}

func gormConfig(opts Options) *gorm.Config {
	return &gorm.Config{
		Logger:  logger.NewGormLogger(opts.Log, opts.SlowThreshold),
		NowFunc: opts.clock().Now,
	}
}

// DB returns the underlying gorm handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// SQL returns the database/sql handle behind the store.
func (s *Store) SQL() (*sql.DB, error) {
	return s.db.DB()
}

// AutoMigrate creates or alters the tables of the given row models.
func (s *Store) AutoMigrate(ctx context.Context, models ...any) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Transaction runs fn with a store bound to one database transaction.
// Tables built from tx commit together when fn returns nil and roll back
// together otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, log: s.log, closer: func() {}})
	})
}

// Close releases the connections opened by the store.
func (s *Store) Close() {
	s.log.Info().Msg("closing database connections")
	s.closer()
}
