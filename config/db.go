package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "frontdesk_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase ensures a default admin and the standard room categories
// exist. Idempotent: existing rows are left alone.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword(
			[]byte(utils.EnvOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: utils.EnvOrDefault("ADMIN_USERNAME", "admin@hotel.local"),
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var categoryCount int64
	DB.Model(&models.RoomCategory{}).Count(&categoryCount)
	if categoryCount == 0 {
		categories := []models.RoomCategory{
			{Name: "Standard", Description: "Standard Room", Status: models.CategoryStatusActive},
			{Name: "Superior", Description: "Superior Room", Status: models.CategoryStatusActive},
			{Name: "Deluxe", Description: "Deluxe Room", Status: models.CategoryStatusActive},
			{Name: "Suite", Description: "Suite", Status: models.CategoryStatusActive},
		}
		if err := DB.Create(&categories).Error; err != nil {
			log.Printf("warning: failed to seed room categories: %v", err)
		} else {
			log.Println("Room categories seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	// parent tables first
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.RoomCategory{},
		&models.Room{},
		&models.Reservation{},
		&models.Booking{},
		&models.Guest{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
