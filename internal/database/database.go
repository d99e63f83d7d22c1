// File: internal/database/database.go
package database

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/iyunix/go-chat/internal/domain"
)

// Options selects the backing store. A non-empty URL means PostgreSQL.
type Options struct {
	URL     string
	Path    string
	Verbose bool
}

// Open connects to PostgreSQL when a URL is given, otherwise to a local SQLite file.
func Open(opts Options) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	if opts.Verbose {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	var dialector gorm.Dialector
	if opts.URL != "" {
		dialector = postgres.Open(opts.URL)
	} else {
		dialector = sqlite.Open(sqliteDSN(opts.Path))
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// OpenMemory returns a private in-memory SQLite database, migrated and ready.
// Each call gets its own database.
func OpenMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(":memory:")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	// A pooled second connection would see a different :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the chat tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.ChatSession{}, &domain.ChatMessage{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// sqliteDSN turns on foreign keys so the message → session cascade is enforced.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}
