package infra

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"flyaway/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {

	dsn := os.Getenv("POSTGRES_URL")

	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the repositories rely on: the unique
	// indexes on memberships and friendships are the source of truth for
	// AlreadyExists, not the read-then-write pre-checks.
	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := connectionPool.AutoMigrate(
		&db_models.User{},
		&db_models.Friendship{},
		&db_models.Trip{},
		&db_models.TripMembership{},
		&db_models.TripDay{},
		&db_models.Activity{},
	); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return connectionPool
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
