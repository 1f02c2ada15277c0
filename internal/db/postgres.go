package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/harborlight/backend/internal/models"
)

// ConnectPostgres opens the relational store and migrates the content schema.
func ConnectPostgres(dsn string) *gorm.DB {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Postgres connection failed: %v", err)
	}

	if err := gdb.AutoMigrate(
		&models.Tag{},
		&models.Story{},
		&models.Event{},
		&models.Resource{},
	); err != nil {
		log.Fatalf("Postgres migration failed: %v", err)
	}

	log.Println("Connected to Postgres")
	return gdb
}
