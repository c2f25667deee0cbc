package db

import (
	"fmt"
	"log"
	"ticketing/src/config"
	"ticketing/src/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres pool described by cfg.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	_db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Printf("Error connecting to database: %s\n", err.Error())
		return nil, err
	}
	sqlDB, err := _db.DB()
	if err != nil {
		log.Printf("Error establishing connection to database: %s\n", err.Error())
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	return _db, nil
}

// Migrate creates or updates the ticketing tables. Parents are migrated
// before the tables that reference them.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Category{},
		&models.Event{},
		&models.Purchase{},
		&models.Ticket{},
	)
	if err != nil {
		return fmt.Errorf("error migration: %w", err)
	}
	return nil
}

// SupportsRowLocks reports whether SELECT ... FOR UPDATE can be issued on db.
func SupportsRowLocks(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}
