package main

import (
	"os"

	"go-flowcash/internal/model"
	"go-flowcash/pkg/database"
	"go-flowcash/pkg/logger"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Recovery tool for the operator account. Resets the stored password and
// clears the token version, forcing a fresh login everywhere.
func main() {
	log := logger.Get()

	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, relying on system env")
	}

	dbPath := os.Getenv("PRODUCTS_DB_PATH")
	if dbPath == "" {
		dbPath = "products.db"
	}
	db := database.Connect(dbPath)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	newPassword := os.Getenv("ADMIN_PASSWORD")
	if newPassword == "" {
		newPassword = "admin123"
	}

	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		log.WithError(err).Fatalf("User %s not found in database", email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("Failed to hash password")
	}

	updates := map[string]interface{}{
		"password":      string(hashedPassword),
		"token_version": "",
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		log.WithError(err).Fatal("Failed to update password in DB")
	}

	log.Infof("Password for %s has been reset", email)
}
