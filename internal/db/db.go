package db

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AgendaPlusApp/agenda-plus/internal/config"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Professional{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Store-level double-booking guard: even a writer that bypasses
	// the transactional check-and-insert cannot commit overlapping
	// blocking appointments for one professional.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    tenant_id WITH =,
                    professional_id WITH =,
                    tstzrange(start_time, end_time) WITH &&
                ) WHERE (status IN ('scheduled', 'completed'));
            END IF;
        END $$;
    `)

	seedMasterTenant(db)

	return db
}

// seedMasterTenant makes sure the reserved fallback tenant exists so
// bare-domain and unrecognized hosts have somewhere to land.
func seedMasterTenant(db *gorm.DB) {
	var count int64
	db.Model(&models.Tenant{}).Where("subdomain = ?", models.MasterSubdomain).Count(&count)
	if count > 0 {
		return
	}

	master := models.Tenant{
		ID:        uuid.NewString(),
		Subdomain: models.MasterSubdomain,
		Name:      "AgendaPlus",
		Status:    models.TenantStatusActive,
		Plan:      "platform",
	}
	if err := db.Create(&master).Error; err != nil {
		log.Printf("failed to seed master tenant: %v", err)
		return
	}

	// Bootstrap platform operator, only when configured.
	phone := os.Getenv("PLATFORM_ADMIN_PHONE")
	password := os.Getenv("PLATFORM_ADMIN_PASSWORD")
	if phone == "" || password == "" {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash platform password: %v", err)
		return
	}

	operator := models.User{
		Name:         "Platform Operator",
		Phone:        phone,
		PasswordHash: string(hashed),
		Role:         models.RolePlatform,
	}
	if err := db.Create(&operator).Error; err != nil {
		log.Printf("failed to seed platform operator: %v", err)
	}
}
