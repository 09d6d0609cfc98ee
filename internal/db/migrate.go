package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/patronacct/draftboard/internal/config"
	"github.com/patronacct/draftboard/internal/models"
)

// ConnectAndMigrate opens the database and runs AutoMigrate for all models.
// An empty DSN opens the default embedded sqlite file; a postgres DSN gets
// a retry loop since the server may win the race against the database
// container.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	dsn = NormalizeDSN(dsn)

	logLevel := logger.Silent
	if config.ParseBool("DB_DEBUG", false) {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var db *gorm.DB
	var err error
	if isPostgres(dsn) {
		for i := 0; i < 10; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			config.Logger().WithField("attempt", i+1).Warn("retrying DB connection")
			time.Sleep(2 * time.Second)
		}
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	// System templates are part of the product, not dev-only seed data:
	// the simplified wizard path depends on them being present.
	if err := SeedSystemTemplates(db); err != nil {
		return nil, fmt.Errorf("seed templates: %w", err)
	}
	return db, nil
}

// Migrate runs AutoMigrate for all models.
func Migrate(db *gorm.DB) error {
	for _, m := range []interface{}{
		&models.User{},
		&models.ClientProfile{},
		&models.Template{},
		&models.Resolution{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// NormalizeDSN trims quotes/whitespace and supplies the sqlite default for
// an empty value.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" {
		return "draftboard.db"
	}
	return s
}

func isPostgres(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=")
}
