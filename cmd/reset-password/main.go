package main

import (
	"log"
	"os"

	"go-rental-console/internal/model"
	"go-rental-console/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find the account
	username := "admin"
	if len(os.Args) > 1 {
		username = os.Args[1]
	}
	var operator model.Operator
	if err := db.Where("username = ?", username).First(&operator).Error; err != nil {
		log.Fatalf("Operator %s not found in database: %v", username, err)
	}

	// 4. Hash new password
	newPassword := "admin123"
	if len(os.Args) > 2 {
		newPassword = os.Args[2]
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// 5. Update, rotating the token version so every open session drops
	updates := map[string]interface{}{
		"password":      string(hashedPassword),
		"token_version": "",
	}
	if err := db.Model(&operator).Updates(updates).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Success! Password for %s has been reset to: %s", username, newPassword)
}
