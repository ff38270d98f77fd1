package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mxdserver/mxd/internal/logger"
	"github.com/mxdserver/mxd/internal/store/migrations"
)

// GORMStore implements Store over gorm.io/gorm, backed by SQLite or
// PostgreSQL depending on Config.Type.
type GORMStore struct {
	db *gorm.DB
}

// New opens the configured database and brings its schema up to date.
// SQLite uses gorm's AutoMigrate; PostgreSQL runs the embedded
// golang-migrate SQL migrations, mirroring the two schema-management
// strategies this project's reference material uses for each backend.
func New(cfg *Config) (*GORMStore, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	switch cfg.Type {
	case DatabaseTypeSQLite:
		return newSQLiteStore(cfg)
	case DatabaseTypePostgres:
		return newPostgresStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}

func newSQLiteStore(cfg *Config) (*GORMStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.SQLite.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	dsn := cfg.SQLite.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return nil, fmt.Errorf("auto-migrate sqlite schema: %w", err)
	}
	return &GORMStore{db: db}, nil
}

func newPostgresStore(cfg *Config) (*GORMStore, error) {
	if err := runPostgresMigrations(cfg.Postgres.DSN()); err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN()), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying *sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)

	return &GORMStore{db: db}, nil
}

func runPostgresMigrations(dsn string) error {
	logger.Info("running database migrations", "type", DatabaseTypePostgres)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	driver, err := migratepostgres.WithInstance(db, &migratepostgres.Config{MigrationsTable: "schema_migrations", DatabaseName: "mxd"})
	if err != nil {
		return fmt.Errorf("create postgres migration driver: %w", err)
	}
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open embedded migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// DB returns the underlying gorm connection, for tests and the migrate
// CLI command.
func (s *GORMStore) DB() *gorm.DB {
	return s.db
}

// Close releases the underlying database connection.
func (s *GORMStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ Store = (*GORMStore)(nil)
