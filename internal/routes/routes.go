package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
)

// Deps carries the singletons built in main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger

	Cache     domain.AvailabilityCache
	Reminders domain.ReminderScheduler
	Payments  domain.PaymentGateway
	Audit     audit.Sink
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	db, cfg := d.DB, d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORSMiddleware(cfg),
	)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	// ======================================================
	// 🧠 USE CASES - APPOINTMENTS
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		d.Cache,
		cfg.DefaultSlotGranularityMin,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		d.Audit,
		d.Cache,
		d.Reminders,
		d.Log,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		d.Audit,
		d.Cache,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		d.Audit,
		d.Cache,
		d.Reminders,
		d.Log,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	listClientAppointmentsUC := ucAppointment.NewListClientAppointments(appointmentRepo)

	checkoutUC := ucAppointment.NewCreateCheckout(appointmentRepo, d.Payments, d.Log)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db, d.Cache, d.Audit)
	barberHandler := handlers.NewBarberHandler(db, d.Audit)

	serviceHandler := handlers.NewServiceHandler(db, d.Cache, d.Audit)
	clientHandler := handlers.NewClientHandler(db)
	workingSlotHandler := handlers.NewWorkingSlotHandler(db, d.Cache, d.Audit)
	blockedDateHandler := handlers.NewBlockedDateHandler(db, d.Cache, d.Audit)
	cashEntryHandler := handlers.NewCashEntryHandler(db, d.Audit)
	reviewHandler := handlers.NewReviewHandler(db, d.Audit)

	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		checkoutUC,
	)

	clientAppointmentHandler := handlers.NewClientAppointmentHandler(
		db,
		createAppointmentUC,
		listClientAppointmentsUC,
		cancelAppointmentUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	publicHandler := handlers.NewPublicHandler(db, getAvailabilityUC, createAppointmentUC)

	// ======================================================
	// 🩺 HEALTH / DOCS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		limited := middleware.RateLimitMiddleware(cfg.RateLimitPerMin, d.Log)

		api.GET("/availability", limited, availabilityHandler.Get)

		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(limited)
		{
			publicAPI.GET("/barbershops", publicHandler.ListBarbershops)
			publicAPI.GET("/:slug/products", publicHandler.ListServices)
			publicAPI.GET("/:slug/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.GET("/:slug/reviews", publicHandler.ListReviews)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		authAPI.Use(limited)
		{
			authAPI.POST("/register", authHandler.Register)
			authAPI.POST("/register-client", authHandler.RegisterClient)
			authAPI.POST("/login", authHandler.Login)
		}

		// ------------------------------
		// 🔐 API PRIVADA (BARBEARIA)
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// Perfil vale para qualquer papel, inclusive cliente.
			secured.GET("", meHandler.GetMe)
			secured.PATCH("", meHandler.UpdateMe)

			staff := secured.Group("")
			staff.Use(middleware.RequireStaff())

			staff.GET("/barbershop", barbershopHandler.GetMeBarbershop)
			staff.PATCH("/barbershop", middleware.RequireOwner(), barbershopHandler.UpdateMeBarbershop)

			staff.GET("/barbers", barberHandler.List)
			staff.POST("/barbers", middleware.RequireOwner(), barberHandler.Create)

			staff.GET("/clients", clientHandler.List)
			staff.GET("/clients/:id/appointments", clientHandler.History)

			staff.GET("/services", serviceHandler.List)
			staff.POST("/services", serviceHandler.Create)
			staff.PATCH("/services/:id", serviceHandler.Update)

			staff.GET("/working-slots", workingSlotHandler.Get)
			staff.PUT("/working-slots", workingSlotHandler.Update)

			staff.GET("/blocked-dates", blockedDateHandler.List)
			staff.POST("/blocked-dates", blockedDateHandler.Create)
			staff.DELETE("/blocked-dates/:id", blockedDateHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			staff.POST("/appointments", appointmentHandler.Create)
			staff.GET("/appointments", appointmentHandler.ListByDate)
			staff.GET("/appointments/month", appointmentHandler.ListByMonth)
			staff.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			staff.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			staff.POST("/appointments/:id/checkout", appointmentHandler.Checkout)

			// ------------------------------
			// CAIXA
			// ------------------------------
			staff.GET("/cash-entries", cashEntryHandler.List)
			staff.GET("/cash-entries/summary", cashEntryHandler.Summary)
			staff.POST("/cash-entries", cashEntryHandler.Create)
			staff.PATCH("/cash-entries/:id", cashEntryHandler.Update)
			staff.DELETE("/cash-entries/:id", cashEntryHandler.Delete)

			staff.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// 👤 API DO CLIENTE
		// ------------------------------
		client := api.Group("/client")
		client.Use(middleware.AuthMiddleware(cfg), middleware.RequireClient())
		{
			client.POST("/appointments", clientAppointmentHandler.Create)
			client.GET("/appointments", clientAppointmentHandler.List)
			client.PATCH("/appointments/:id/cancel", clientAppointmentHandler.Cancel)

			client.POST("/reviews", reviewHandler.Create)
			client.DELETE("/reviews/:id", reviewHandler.Delete)
		}
	}
}
