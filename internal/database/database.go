package database

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/killallgit/interviewcut/internal/models"
	"github.com/killallgit/interviewcut/pkg/config"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const memoryPath = ":memory:"

type DB struct {
	*gorm.DB
	logger logrus.FieldLogger
}

// Options controls how the SQLite database is opened
type Options struct {
	Path               string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	EnableWAL          bool
	EnableForeignKeys  bool
	LogQueries         bool
	SlowQueryThreshold time.Duration
	Logger             logrus.FieldLogger
}

// OptionsFromConfig maps the database section of the settings file
func OptionsFromConfig(cfg config.DatabaseConfig, log logrus.FieldLogger) Options {
	return Options{
		Path:              cfg.Path,
		MaxOpenConns:      cfg.MaxConnections,
		MaxIdleConns:      cfg.MaxIdleConnections,
		ConnMaxLifetime:   cfg.ConnectionMaxLifetime,
		EnableWAL:         cfg.EnableWAL,
		EnableForeignKeys: cfg.EnableForeignKeys,
		LogQueries:        cfg.LogQueries,
		Logger:            log,
	}
}

// Initialize creates a new database connection with the provided configuration
func Initialize(opts Options) (*DB, error) {
	log := logging.OrDiscard(opts.Logger)

	if !isMemory(opts.Path) {
		dir := filepath.Dir(opts.Path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	logLevel := logger.Error
	if opts.LogQueries {
		logLevel = logger.Info
	}
	slow := opts.SlowQueryThreshold
	if slow == 0 {
		slow = 200 * time.Millisecond
	}

	gormConfig := &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             slow,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(DSN(opts.Path, opts.EnableWAL, opts.EnableForeignKeys)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	// Every new connection to :memory: is a fresh, empty database.
	if isMemory(opts.Path) {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxIdleConns(withDefault(opts.MaxIdleConns, 5))
		sqlDB.SetMaxOpenConns(withDefault(opts.MaxOpenConns, 10))
		if opts.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
		} else {
			sqlDB.SetConnMaxLifetime(time.Hour)
		}
	}

	log.WithFields(logrus.Fields{
		"path": displayPath(opts.Path),
		"wal":  opts.EnableWAL,
	}).Debug("database opened")

	return &DB{DB: db, logger: log}, nil
}

// DSN builds the sqlite connection string, applying pragmas to every pooled connection
func DSN(path string, wal, foreignKeys bool) string {
	params := url.Values{}
	if foreignKeys {
		params.Set("_foreign_keys", "on")
	}
	if wal && !isMemory(path) {
		params.Set("_journal_mode", "WAL")
		params.Set("_busy_timeout", "5000")
	}

	if isMemory(path) {
		path = memoryPath
	}
	if len(params) == 0 {
		return path
	}
	return "file:" + path + "?" + params.Encode()
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working
func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// AutoMigrate runs GORM auto migration for the provided models
func (db *DB) AutoMigrate(models ...any) error {
	if err := db.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	db.logger.Debugf("migrated %d model(s)", len(models))
	return nil
}

// Migrate creates the job queue and interview history tables
func (db *DB) Migrate() error {
	return db.AutoMigrate(
		&models.Job{},
		&models.InterviewRecord{},
		&models.FragmentRecord{},
	)
}

// Open initializes the database from the settings file and migrates it
func Open(cfg config.DatabaseConfig, log logrus.FieldLogger) (*DB, error) {
	db, err := Initialize(OptionsFromConfig(cfg, log))
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func isMemory(path string) bool {
	return path == "" || path == memoryPath
}

func displayPath(path string) string {
	if isMemory(path) {
		return memoryPath
	}
	return path
}

func withDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
