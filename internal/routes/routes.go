package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaPlusApp/agenda-plus/internal/audit"
	"github.com/AgendaPlusApp/agenda-plus/internal/config"
	"github.com/AgendaPlusApp/agenda-plus/internal/domain/appointment"
	"github.com/AgendaPlusApp/agenda-plus/internal/handlers"
	"github.com/AgendaPlusApp/agenda-plus/internal/middleware"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
	"github.com/AgendaPlusApp/agenda-plus/internal/tenant"
	ucAppointment "github.com/AgendaPlusApp/agenda-plus/internal/usecase/appointment"
)

// RegisterRoutes wires the HTTP surface. With the memory storage
// backend there is no database: only the booking core (availability
// and appointment creation) is served, and db is nil.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	resolver *tenant.Resolver,
	appointmentRepo appointment.Repository,
) {

	// ======================================================
	// 🌍 GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	var auditDispatcher *audit.Dispatcher
	if db != nil {
		auditDispatcher = audit.NewDispatcher(audit.New(db))
	}

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		availabilityUC,
		createAppointmentUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	// Every /api route runs under tenant resolution: the Host
	// header, never the payload, decides which tenant a request
	// belongs to.
	api := r.Group("/api")
	api.Use(middleware.TenantMiddleware(resolver))

	// ------------------------------
	// 🌐 PUBLIC (booking surface)
	// ------------------------------
	api.GET("/availability", bookingHandler.Availability)
	api.POST("/appointments", bookingHandler.Create)

	if db == nil {
		// Memory backend: booking core only, nothing below has a
		// store to talk to.
		return
	}

	authHandler := handlers.NewAuthHandler(db, cfg)
	tenantHandler := handlers.NewTenantHandler(db, auditDispatcher)
	professionalHandler := handlers.NewProfessionalHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	productHandler := handlers.NewProductHandler(db)
	saleHandler := handlers.NewSaleHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsByDateUC,
		cancelAppointmentUC,
		completeAppointmentUC,
	)

	api.POST("/auth/login", authHandler.Login)
	api.GET("/services", serviceHandler.List)

	// ------------------------------
	// 🔐 PRIVATE (staff)
	// ------------------------------
	secured := api.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg, auditDispatcher))
	{
		secured.GET("/professionals", professionalHandler.List)

		secured.GET("/appointments", appointmentHandler.List)
		secured.PATCH("/appointments/:id", appointmentHandler.UpdateStatus)

		secured.GET("/clients", clientHandler.List)

		secured.GET("/products", productHandler.List)

		secured.GET("/sales", saleHandler.List)
		secured.POST("/sales", saleHandler.Create)

		// ------------------------------
		// 🔐 ADMIN ONLY
		// ------------------------------
		admin := secured.Group("/")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/professionals", professionalHandler.Create)
			admin.PUT("/professionals/:id", professionalHandler.Update)

			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)

			admin.POST("/products", productHandler.Create)
			admin.PATCH("/products/:id", productHandler.Update)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// 🏢 PLATFORM (tenant lifecycle)
		// ------------------------------
		platform := secured.Group("/tenants")
		platform.Use(middleware.RequireRole(models.RolePlatform))
		{
			platform.POST("", tenantHandler.Provision)
			platform.PATCH("/status", tenantHandler.UpdateStatus)
		}
	}
}
