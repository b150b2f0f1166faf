package database

import (
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/menudeck/menudeck/models"
	"github.com/menudeck/menudeck/utils"
)

// Migrate creates the schema and seeds the bootstrap admin grant. It is
// safe to run on every startup.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.UserRole{},
	)
	if err != nil {
		return err
	}
	return seedAdmin(db)
}

// seedAdmin creates an admin user from ADMIN_EMAIL/ADMIN_PASSWORD when
// no admin grant exists yet. Without at least one admin nobody can
// manage restaurants at all.
func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.UserRole{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.InfoLogger.Println("no admin grant and no ADMIN_EMAIL/ADMIN_PASSWORD set, skipping bootstrap")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Where("email = ?", email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{Name: "Administrator", Email: email, Password: string(hashed)}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		grant := models.UserRole{UserID: user.ID, Role: models.RoleAdmin}
		if err := tx.Create(&grant).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("bootstrap admin grant created for %s", email)
		return nil
	})
}
