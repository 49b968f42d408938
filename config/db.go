package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"property-backend/billing"
	"property-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// SeedDatabase ensures the baseline rows a fresh install needs: a default
// admin, one pricing policy per utility and the property settings row.
func SeedDatabase() {
	// ---------------- Admins ----------------
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: "admin@property.local",
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Pricing policies ----------------
	// Default both utilities to plain per-unit billing at 0 until the
	// operator configures real prices.
	for _, utility := range []string{models.UtilityWater, models.UtilityElectric} {
		var count int64
		DB.Model(&models.PricingPolicy{}).Where("utility_type = ?", utility).Count(&count)
		if count == 0 {
			policy := models.PricingPolicy{
				UtilityType: utility,
				Method:      string(billing.MeterUsage),
			}
			if err := DB.Create(&policy).Error; err != nil {
				log.Printf("warning: failed to seed %s policy: %v", utility, err)
			} else {
				log.Printf("%s pricing policy seeded", utility)
			}
		}
	}

	// ---------------- Property settings ----------------
	var settingCount int64
	DB.Model(&models.PropertySetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.PropertySetting{Name: "My Property", AutoSendDay: 1, AutoSendHour: 9}
		if err := DB.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed property settings: %v", err)
		}
	}

	log.Println("Seed data ensured")
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

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

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "property_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
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

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.PropertySetting{},
		&models.PricingPolicy{},
		&models.Room{},
		&models.Tenant{},
		&models.Contract{},
		&models.MeterReading{},
		&models.Invoice{},
		&models.SettlementEntry{},
		&models.MoveOutRecord{},
		&models.MaintenanceRequest{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
