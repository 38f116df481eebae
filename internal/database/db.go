package database

import (
	"log"
	"os"
	"time"

	"gis-kpi-tracker/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to postgres with a retry loop, runs migrations and seeds
// the demo account. The handle is passed to component constructors; there
// is no package-level DB.
func Open(dsn string) *gorm.DB {
	var db *gorm.DB
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedDefaultUser(db)

	return db
}

// Migrate is split out so tests can run it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Issue{},
		&models.Session{},
		&models.ActivityLog{},
	)
}

// demo account so the app is usable straight after first boot
func seedDefaultUser(db *gorm.DB) {
	email := os.Getenv("SEED_USER_EMAIL")
	if email == "" {
		email = "gis@tracker.local"
	}
	password := os.Getenv("SEED_USER_PASSWORD")
	if password == "" {
		password = "Tracker123!"
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		log.Printf("failed to check seed user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash seed user password: %v", err)
		return
	}

	user := models.User{
		Email:        email,
		DisplayName:  "GIS Team",
		PasswordHash: string(hash),
	}

	if err := db.Create(&user).Error; err != nil {
		log.Printf("failed to create seed user: %v", err)
		return
	}

	log.Printf("created seed user: %s (password: %s)", email, password)
}
