package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Database struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewDatabase opens the entity store named by url. "postgres://" and
// "postgresql://" select Postgres; "sqlite://<path>" or a bare path selects SQLite.
func NewDatabase(url string, logger *logrus.Logger) (*Database, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	dialector, err := dialectorFor(url)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: Now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if db.Dialector.Name() == "sqlite" {
		// SQLite serialises writers; one connection also keeps in-memory databases intact.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	logger.WithField("driver", db.Dialector.Name()).Info("Connected to database")
	return &Database{db: db, logger: logger}, nil
}

func dialectorFor(url string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), nil
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://")), nil
	case url == "":
		return nil, fmt.Errorf("database url is empty")
	case strings.Contains(url, "://"):
		return nil, fmt.Errorf("unsupported database url scheme: %s", url)
	default:
		return sqlite.Open(url), nil
	}
}

// Now is the timestamp source for created_at/updated_at. Microsecond precision
// matches what Postgres keeps, so a row reads back exactly as it was written.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (d *Database) GetDB() *gorm.DB {
	return d.db
}

func (d *Database) Ping() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
