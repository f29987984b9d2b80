package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/config"
	"github.com/anhbaysgalan1/balatro/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the gorm handle shared by the repositories
type DB struct {
	*gorm.DB
}

const slowQueryThreshold = 200 * time.Millisecond

// newGormLogger sends gorm's query log through slog. Repositories turn a
// missing row into a nil result, so record-not-found is not worth a line.
func newGormLogger(cfg *config.Config) logger.Interface {
	level := logger.Warn
	if !cfg.IsProduction() {
		level = logger.Info
	}
	return logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}

func NewConnection(cfg *config.Config) (*DB, error) {
	slog.Info("Connecting to database", "host", cfg.PostgresHost, "database", cfg.PostgresDB)

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseURL()), &gorm.Config{
		Logger: newGormLogger(cfg),
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
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Connected to database")
	return &DB{DB: db}, nil
}

func (db *DB) AutoMigrate() error {
	slog.Info("Running GORM auto-migrations")

	err := db.DB.AutoMigrate(
		&models.Player{},
		&models.PlayerState{},
		&models.Highscore{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create additional indexes
	if err := db.SetupIndexes(); err != nil {
		return fmt.Errorf("failed to setup additional indexes: %w", err)
	}

	slog.Info("GORM auto-migrations completed successfully")
	return nil
}

// Ping checks the connection is alive
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.Close(); err != nil {
		return err
	}

	slog.Info("Database connection closed")
	return nil
}
