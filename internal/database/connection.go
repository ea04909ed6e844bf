package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"portfolio/internal/config"
	"portfolio/internal/domain"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = 10 * time.Minute
)

type sqlCollection struct {
	db *gorm.DB
}

// DialSQL returns a dialer for the SQL store named by cfg.URL (postgres or
// sqlite). The dial pings the database and migrates the inquiry table.
func DialSQL(cfg config.DatabaseConfig, log *zap.Logger) func(ctx context.Context) (Collection, error) {
	return func(ctx context.Context) (Collection, error) {
		var dialector gorm.Dialector

		if cfg.IsPostgres() {
			log.Info("connecting to PostgreSQL database")
			dialector = postgres.Open(cfg.GetPostgresDSN())
		} else {
			log.Info("connecting to SQLite database")
			dbPath := cfg.GetSQLitePath()
			sqlDB, err := sql.Open("sqlite", dbPath)
			if err != nil {
				return nil, fmt.Errorf("failed to open SQLite database: %w", err)
			}
			// sqlite serializes writers; one connection avoids SQLITE_BUSY.
			sqlDB.SetMaxOpenConns(1)
			dialector = sqlite.Dialector{
				DriverName: "sqlite",
				DSN:        dbPath,
				Conn:       sqlDB,
			}
		}

		// Never log SQL: queries carry submitter data.
		db, err := gorm.Open(dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		if cfg.IsPostgres() {
			sqlDB.SetMaxOpenConns(maxOpenConns)
			sqlDB.SetMaxIdleConns(maxIdleConns)
			sqlDB.SetConnMaxLifetime(connMaxLifetime)
			sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
		}

		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("ping failed: %w", err)
		}

		if err := db.WithContext(ctx).AutoMigrate(&domain.ContactInquiry{}); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		log.Info("database connected and migrated")
		return &sqlCollection{db: db}, nil
	}
}

func (c *sqlCollection) Insert(ctx context.Context, inquiry *domain.ContactInquiry) error {
	if inquiry.ID == "" {
		inquiry.ID = uuid.NewString()
	}
	return c.db.WithContext(ctx).Create(inquiry).Error
}

func (c *sqlCollection) List(ctx context.Context, skip, limit int) ([]domain.ContactInquiry, error) {
	var inquiries []domain.ContactInquiry
	err := c.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&inquiries).Error
	if err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (c *sqlCollection) Close(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
