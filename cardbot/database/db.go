package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	SSLMode      string `toml:"ssl_mode"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

// URL renders the config as a postgres connection URL.
func (c DBConfig) URL() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": {sslMode}, "connect_timeout": {"5"}}.Encode(),
	}
	return u.String()
}

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
	url   string
}

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	return Open(ctx, cfg.URL(), cfg)
}

// Open connects to databaseURL. Pool limits are taken from cfg when set.
func Open(ctx context.Context, databaseURL string, cfg DBConfig) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	for i := 0; ; i++ {
		err = pool.Ping(ctx)
		if err == nil {
			break
		}
		if i+1 >= defaultMaxRetries {
			pool.Close()
			return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
		}
		slog.Warn("Database ping failed, retrying",
			slog.String("type", "db"),
			slog.Int("attempt", i+1),
			slog.Any("error", err),
		)
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(defaultRetryInterval):
		}
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(databaseURL)))
	return &DB{
		pool:  pool,
		bunDB: bun.NewDB(sqldb, pgdialect.New()),
		url:   databaseURL,
	}, nil
}

func (db *DB) GetPool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

// InitializeSchema applies every pending migration.
func (db *DB) InitializeSchema(ctx context.Context) error {
	start := time.Now()
	if err := RunMigrationsWithURL(db.url); err != nil {
		return err
	}
	slog.Info("Schema up to date",
		slog.String("type", "db"),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DB) Close() {
	if db.bunDB != nil {
		db.bunDB.Close()
	}
	if db.pool != nil {
		db.pool.Close()
	}
}
