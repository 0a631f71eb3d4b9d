package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"schoolapp/config"
	"schoolapp/internal/domain/lifecycle"
	"schoolapp/internal/errors"
	"schoolapp/internal/infra/persistence/model"
)

const (
	poolWatchInterval    = 5 * time.Second
	poolWaitWarnDuration = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the primary (and any replicas) through go-lib, routes GORM logging to slog
// and ties the pool to the application lifecycle.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	// Multi-statement writes go through TransactionManager.Execute; single statements need no implicit tx.
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	conn := &connection{
		db:          db,
		sqlDB:       sqlDB,
		logger:      params.Logger,
		autoMigrate: params.Config.AutoMigrate,
	}
	params.Append(fx.Hook{
		OnStart: conn.start,
		OnStop:  conn.stop,
	})

	return db, nil
}

// Migrate creates or updates the users and teachers tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}

type connection struct {
	db          *gorm.DB
	sqlDB       *sql.DB
	logger      *slog.Logger
	autoMigrate bool

	stopWatch context.CancelFunc
}

func (c *connection) start(startCtx context.Context) error {
	ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := c.sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping PostgreSQL")
	}

	if c.autoMigrate {
		if err := Migrate(c.db.WithContext(ctx)); err != nil {
			return err
		}
		c.logger.Info("Database schema migrated", slog.Int("tables", len(model.All())))
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	c.stopWatch = stopWatch
	go watchPool(watchCtx, c.logger, c.sqlDB, poolWatchInterval)

	return nil
}

func (c *connection) stop(context.Context) error {
	if c.stopWatch != nil {
		c.stopWatch()
	}

	return errors.WithStack(c.sqlDB.Close())
}

// watchPool reports connection waits once per interval. Signup bursts queue on the
// pool while bcrypt runs elsewhere, so waits show up here before they show up as latency.
func watchPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			if level, attrs, ok := poolWaitReport(prev, cur); ok {
				logger.LogAttrs(ctx, level, "Postgres pool wait", attrs...)
			}
			prev = cur
		}
	}
}

// poolWaitReport describes the waits between two snapshots. ok is false when nobody waited.
func poolWaitReport(prev, cur sql.DBStats) (slog.Level, []slog.Attr, bool) {
	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return slog.LevelDebug, nil, false
	}

	waited := cur.WaitDuration - prev.WaitDuration
	level := slog.LevelDebug
	if waited >= poolWaitWarnDuration {
		level = slog.LevelWarn
	}

	return level, []slog.Attr{
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avgWait", waited/time.Duration(waits)),
		slog.Int("inUse", cur.InUse),
		slog.Int("idle", cur.Idle),
		slog.Int("maxOpen", cur.MaxOpenConnections),
	}, true
}
