package database

import (
	"fmt"

	"utsavdarshan/config"
	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/repository"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the GORM driver for cfg.Driver.
func Dialector(cfg *config.StoreConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case domain.StoreMySQL:
		return mysql.Open(cfg.DSN), nil
	case domain.StorePostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("store driver %q is not relational", cfg.Driver)
	}
}

func NewDB(cfg *config.StoreConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required for store driver %q", cfg.Driver)
	}
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(repository.Models()...)
}
