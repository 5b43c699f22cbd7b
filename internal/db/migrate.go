package db

import (
	"errors"  // Error inspection
	"strings" // Identity normalization

	"hostel_booking/internal/domain" // Persisted models

	"github.com/sirupsen/logrus" // Logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Models lists every table owned by the service, in dependency order
func Models() []any {
	return []any{
		&domain.User{},
		&domain.RoomType{},
		&domain.Booking{},
		&domain.Review{},
		&domain.Photo{},
		&domain.Payment{},
	}
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

// SeedAdmin creates the administrator account when it does not exist yet
func SeedAdmin(db *gorm.DB, username, email, password string) error {
	username = strings.ToLower(strings.TrimSpace(username)) // Same normalization as registration
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || password == "" {
		return nil // Nothing configured
	}
	var existing domain.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		if !existing.IsAdmin {
			return db.Model(&existing).Update("is_admin", true).Error // Promote existing account
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := domain.User{Username: username, Email: email, Password: string(hash), IsAdmin: true}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithField("username", username).Info("Administrator seeded")
	return nil
}
