package config

import (
	"errors"
	"log"
	"strings"

	"github.com/AriJaya07/voyra-tour-bali/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureAdminUser creates the dashboard login named by ADMIN_EMAIL when it does not exist yet.
// Existing users are left untouched so a changed password survives restarts.
func EnsureAdminUser(db *gorm.DB, email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if strings.TrimSpace(name) == "" {
		name = "Admin"
	}
	user := models.User{Email: email, Password: string(hash), Name: name, Role: "admin"}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	log.Printf("✅ Admin user %s seeded", email)
	return nil
}
