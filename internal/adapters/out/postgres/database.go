package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"delivery-service/internal/adapters/out/postgres/deliveryrepo"

	"github.com/cenkalti/backoff/v4"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionConfig describes how to reach the Postgres server.
type ConnectionConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	RetryAttempts int
	RetryDelay    time.Duration
}

func (c ConnectionConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Open connects to Postgres, retrying up to RetryAttempts times while the
// server is not accepting connections yet.
func Open(ctx context.Context, cfg ConnectionConfig, log *slog.Logger) (*gorm.DB, error) {
	log = log.With("component", "postgres")

	attempts := max(cfg.RetryAttempts, 1)
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(cfg.RetryDelay), uint64(attempts-1)),
		ctx,
	)

	var (
		db      *gorm.DB
		attempt int
	)
	err := backoff.RetryNotify(func() error {
		attempt++
		conn, err := OpenDialector(postgresdriver.Open(cfg.DSN()), log)
		if err != nil {
			return err
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		if err = sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}

		db = conn
		return nil
	}, policy, func(err error, next time.Duration) {
		log.WarnContext(ctx, "database is not ready", "attempt", attempt, "of", attempts, "retry_in", next, "error", err)
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database after %d attempts: %w", attempt, err)
	}

	log.InfoContext(ctx, "connected to database", "host", cfg.Host, "db", cfg.Name)
	return db, nil
}

// OpenDialector opens a gorm connection with driver errors translated into
// gorm sentinels such as gorm.ErrDuplicatedKey. Slow queries and failures are
// written to log; a missing row is a normal lookup result and is not logged.
func OpenDialector(dialector gorm.Dialector, log *slog.Logger) (*gorm.DB, error) {
	if log == nil {
		log = slog.Default()
	}
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(gormWriter{log: log}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
}

type gormWriter struct {
	log *slog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)), "source", "gorm")
}

// Migrate creates or updates the deliveries table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&deliveryrepo.DeliveryDTO{})
}

// Pinger reports database reachability for health checks.
type Pinger struct {
	db *gorm.DB
}

func NewPinger(db *gorm.DB) Pinger {
	return Pinger{db: db}
}

func (p Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
