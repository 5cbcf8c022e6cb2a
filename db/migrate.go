package db

import (
	"fmt"
	"log"

	"github.com/juniorcleaning/cleaning-app/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Account{},
		&models.ProfileDoc{},
		&models.NewsItem{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
