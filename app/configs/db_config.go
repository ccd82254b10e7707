package configs

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

func OpenConnection(env ENV) (*gorm.DB, error) {
	dialector, err := dialectorFor(env)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormConfig(env.DBLogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", env.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if env.DBDriver == DriverSQLite {
		if err := tuneSQLite(db); err != nil {
			return nil, err
		}
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("✅ Database connection successful (%s)", env.DBDriver)
	return db, nil
}

// OpenSQLite opens an embedded database at path (":memory:" works) without
// reading the environment.
func OpenSQLite(path, logLevel string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(logLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	if err := tuneSQLite(db); err != nil {
		return nil, err
	}
	return db, nil
}

func dialectorFor(env ENV) (gorm.Dialector, error) {
	switch env.DBDriver {
	case DriverSQLite, "":
		return sqlite.Open(env.DBPath), nil
	case DriverMySQL:
		port := env.DBPort
		if port == "" {
			port = "3306"
		}
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			env.DBUser,
			env.DBPassword,
			env.DBHost,
			port,
			env.DBName,
		)
		return mysql.Open(dsn), nil
	case DriverPostgres:
		port := env.DBPort
		if port == "" {
			port = "5432"
		}
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			env.DBHost, port, env.DBUser, env.DBPassword, env.DBName, env.DBSSLMode)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}

func gormConfig(logLevel string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(logLevel)),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}
}

// SQLite keeps one connection: in-memory databases live per connection and
// cascades need foreign_keys enabled on the connection that runs the delete.
func tuneSQLite(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return fmt.Errorf("failed to enable sqlite foreign keys: %w", err)
	}
	return nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
