package db

import (
	"log"
	"mandalart/internal/auth"
	"mandalart/internal/config"
	"mandalart/internal/mandalart"
	"mandalart/internal/user"
)

// Migrate runs database migrations
func Migrate() {
	err := AppDb.AutoMigrate(
		&user.User{},
		&auth.Session{},
		&mandalart.Mandalart{},
	)

	if err != nil {
		log.Fatal(err)
	}

	log.Println("Database schema migrated successfully")
}

// SeedData seeds the database with initial data (for development only)
func SeedData() {
	if config.AppConfig.Environment != "development" {
		return
	}

	userRepo := user.NewRepository(AppDb)

	devUser := &user.User{
		GoogleID: "dev-google-id",
		Email:    "dev@example.com",
		Name:     "Dev User",
	}

	// Check if user exists
	_, err := userRepo.FindByGoogleID(devUser.GoogleID)
	if err != nil {
		// User doesn't exist, create it
		if err := userRepo.Create(devUser); err != nil {
			log.Printf("Error creating dev user: %v", err)
		} else {
			log.Printf("Created dev user: %s", devUser.Email)
		}
	} else {
		log.Printf("Dev user already exists: %s", devUser.Email)
	}
}
