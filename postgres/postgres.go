package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	DBName   string
	DBUser   string
	Password string
	Host     string
	Port     string
	SSLMode  bool
	// Quiet silences gorm's own query logger.
	Quiet bool
}

func (o Options) datasource() string {
	sslmode := "disable"
	if o.SSLMode {
		sslmode = "require"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		o.Host, o.Port, o.DBUser, o.Password, o.DBName, sslmode,
	)
}

func NewConnection(opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	if opts.Quiet {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	return gorm.Open(postgres.Open(opts.datasource()), cfg)
}

// OpenSQL opens a plain database/sql handle over lib/pq and checks that the
// server answers. cmd/migrate uses it since it needs no ORM.
func OpenSQL(opts Options) (*sql.DB, error) {
	db, err := sql.Open("postgres", opts.datasource())
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return db, nil
}

// Migrate applies every pending migration found in dir and returns how many
// were run.
func Migrate(db *gorm.DB, dir string) (int, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("postgres: get db instance: %w", err)
	}
	return MigrateSQL(sqlDB, dir)
}

// MigrateSQL is Migrate for a database/sql handle.
func MigrateSQL(sqlDB *sql.DB, dir string) (int, error) {
	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	total, err := migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
	if err != nil {
		return 0, fmt.Errorf("postgres: execute migrations: %w", err)
	}
	return total, nil
}
