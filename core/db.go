package core

import (
	"fmt"

	"github.com/shubhamc1947/company-data/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB connects to Postgres when a host is configured and to a local SQLite
// file otherwise.
func InitDB(cfg DatabaseConfig, environment string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if environment == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	if cfg.Host != "" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.Port,
			cfg.SSLMode,
		)

		return gorm.Open(postgres.Open(dsn), gormConfig)
	}

	return OpenSQLite(fmt.Sprintf("file:%s?_foreign_keys=on", cfg.Path), gormConfig)
}

// OpenSQLite opens a SQLite database with a single connection. SQLite allows
// one writer at a time, and a single connection also keeps an in-memory
// database alive for the lifetime of the pool.
func OpenSQLite(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate creates or updates the company, company_profile,
// financial_statement and search_cache tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.CompanyProfile{},
		&models.FinancialStatement{},
		&models.SearchCache{},
	)
}
