package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sujalbistaa/moodcanvas/internal/store"
)

const (
	schemeMemory   = "memory://"
	schemeSQLite   = "sqlite://"
	schemePostgres = "postgres://"
	schemeRedis    = "redis://"
)

// OpenGorm opens a gorm connection for a sqlite:// or postgres:// URL.
func OpenGorm(dbURL string, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	sqliteDB := false

	switch {
	case strings.HasPrefix(dbURL, schemePostgres):
		dialector = postgres.Open(dbURL)
		log.Info("connecting to PostgreSQL database")
	case strings.HasPrefix(dbURL, schemeSQLite):
		dsn := strings.TrimPrefix(dbURL, schemeSQLite)
		if dsn == "" {
			dsn = ":memory:"
		}
		dialector = sqlite.Open(dsn)
		sqliteDB = true
		log.Info("connecting to SQLite database", zap.String("dsn", dsn))
	default:
		return nil, fmt.Errorf("unsupported database url %q", dbURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if sqliteDB {
		// Every sqlite connection to :memory: gets its own database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}

	log.Info("database connection established")
	return db, nil
}

// OpenRedis connects to the redis:// URL and pings it.
func OpenRedis(ctx context.Context, redisURL string, log *zap.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Info("connected to Redis", zap.String("addr", opts.Addr))
	return client, nil
}

// OpenStore picks the submission store implementation from the URL scheme.
// The returned close func releases the backing connection.
func OpenStore(ctx context.Context, dbURL string, log *zap.Logger) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch {
	case dbURL == "" || strings.HasPrefix(dbURL, schemeMemory):
		log.Info("using in-memory submission store")
		return store.NewMemoryStore(), noop, nil
	case strings.HasPrefix(dbURL, schemeRedis):
		client, err := OpenRedis(ctx, dbURL, log)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisStore(client, ""), client.Close, nil
	default:
		gdb, err := OpenGorm(dbURL, log)
		if err != nil {
			return nil, nil, err
		}
		st, err := store.NewSQLStore(gdb)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, err
		}
		return st, sqlDB.Close, nil
	}
}
