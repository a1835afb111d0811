package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/match-service/internal/config"
)

// NewDB initializes the database connection using the driver and DSN from config.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.Log.Level == "debug" {
		logLevel = logger.Info // log SQL queries
	}

	gormLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true, // misses are normal for point lookups
	})

	db, err := gorm.Open(dialector, Options(gormLogger))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Options returns the gorm config shared by production and tests.
// TranslateError makes drivers report unique violations as gorm.ErrDuplicatedKey.
func Options(l logger.Interface) *gorm.Config {
	return &gorm.Config{
		Logger:         l,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// Migrate keeps the schema in sync with the models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}
