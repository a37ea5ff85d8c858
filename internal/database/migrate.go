package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Migrate applies AutoMigrate for every registered model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(PersistentModels()...)
}

// ConnectTest opens an in-memory sqlite database with the full schema
// applied. Each call returns an isolated database; repository and handler
// tests use this instead of a running Postgres.
func ConnectTest() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// An in-memory sqlite database lives and dies with its connection, so
	// the pool must never grow past one.
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
