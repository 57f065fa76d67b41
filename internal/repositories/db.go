package repositories

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rohits-web03/folio/internal/config"
	"github.com/rohits-web03/folio/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDatabase opens the configured database, runs migrations and returns
// the shared handle. It is called once at process start.
func ConnectDatabase(cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		NowFunc: Now,
		Logger: logger.New(
			log.New(os.Stdout, "[DB] ", log.LstdFlags),
			logger.Config{
				SlowThreshold:             1500 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  !cfg.IsProduction(),
			},
		),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "sqlite":
		dsn := cfg.DB_URL
		if dsn == "" {
			dsn = "folio.db"
		}
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	default:
		db, err = openPostgres(cfg.DB_URL, gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Println("Successfully connected to database")
	return db, nil
}

func openPostgres(dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_URL is not set")
	}
	pgCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pgCfg)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// Fail fast if unreachable
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
}

// Now is the clock used for created/updated timestamps. Postgres keeps
// microseconds, so values are truncated to match what is read back.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Migrate creates or updates every table owned by the service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Message{},
		&models.Session{},
	)
}
