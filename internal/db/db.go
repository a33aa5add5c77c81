package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/blogly/blogly/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Options struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// Echo logs every statement at info level.
	Echo          bool
	SlowThreshold time.Duration
	Logger        *zap.Logger
}

// Open connects to the database named by opts.URL. Supported schemes are
// sqlite:// (or sqlite3://, file:, :memory:) and postgres:// (or postgresql://).
func Open(opts Options) (*gorm.DB, error) {
	dialector, err := Dialector(opts.URL)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(log, opts.Echo, opts.SlowThreshold),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	return gdb, nil
}

// Dialector picks the gorm driver for a connection URL.
func Dialector(url string) (gorm.Dialector, error) {
	switch {
	case url == "":
		return nil, fmt.Errorf("database url is empty")
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		sqlDB, err := openPostgres(url)
		if err != nil {
			return nil, err
		}
		return postgres.New(postgres.Config{Conn: sqlDB}), nil
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(SQLiteDSN(strings.TrimPrefix(url, "sqlite://"))), nil
	case strings.HasPrefix(url, "sqlite3://"):
		return sqlite.Open(SQLiteDSN(strings.TrimPrefix(url, "sqlite3://"))), nil
	case strings.HasPrefix(url, "file:"), url == ":memory:":
		return sqlite.Open(SQLiteDSN(url)), nil
	default:
		return nil, fmt.Errorf("unsupported database url %q", url)
	}
}

// SQLiteDSN turns on foreign key enforcement for every pooled connection.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=1"
	}
	return dsn + "?_foreign_keys=1"
}

func openPostgres(url string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	cfg.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement
	cfg.StatementCacheCapacity = 256
	return stdlib.OpenDB(*cfg), nil
}

// InitDatabase creates or updates the users, posts, tags and posts_tags tables.
func InitDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Tag{},
		&models.PostTag{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
