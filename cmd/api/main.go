package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/AgendaPlusApp/agenda-plus/internal/config"
	dbpkg "github.com/AgendaPlusApp/agenda-plus/internal/db"
	domain "github.com/AgendaPlusApp/agenda-plus/internal/domain/appointment"
	infraRepo "github.com/AgendaPlusApp/agenda-plus/internal/infra/repository"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
	"github.com/AgendaPlusApp/agenda-plus/internal/routes"
	"github.com/AgendaPlusApp/agenda-plus/internal/tenant"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()

	var (
		db        *gorm.DB
		directory tenant.Directory
		repo      domain.Repository
	)

	if cfg.StorageBackend == "memory" {
		// No database at all: the booking core runs against the
		// in-memory store, tenant resolution against an in-memory
		// directory seeded with the master tenant.
		master := models.Tenant{
			ID:        uuid.NewString(),
			Subdomain: models.MasterSubdomain,
			Name:      "AgendaPlus",
			Status:    models.TenantStatusActive,
			Plan:      "platform",
		}

		memDir := tenant.NewMemoryDirectory()
		memDir.Put(master)
		directory = memDir

		memRepo := infraRepo.NewAppointmentMemoryRepository()
		memRepo.PutTenant(master)
		repo = memRepo

		log.Println("storage backend: memory (booking core only)")
	} else {
		db = dbpkg.NewDB(cfg)
		directory = tenant.NewGormDirectory(db)
		repo = infraRepo.NewAppointmentGormRepository(db)
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		directory = tenant.NewCachedDirectory(directory, rdb, cfg.TenantCacheTTL)
	}

	resolver := tenant.NewResolver(directory, cfg.RootDomain, cfg.LocalDomainAlias)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, resolver, repo)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
