package main

import (
	"context"
	"log"
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/caching"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/config"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/handlers"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/jobs"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/middleware"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/repositories"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/services"
	"github.com/twodigitsystem/vriddhi-book-sub003/pkg/database"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	minioSvc, err := services.NewMinioService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(ctx, "item-images"); err != nil {
		log.Printf("WARN: could not ensure item-images bucket: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	orgRepo := repositories.NewOrganizationRepository(pool)
	memberRepo := repositories.NewMemberRepository(pool)
	invitationRepo := repositories.NewInvitationRepository(pool)
	itemRepo := repositories.NewItemRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	taxRateRepo := repositories.NewTaxRateRepository(pool)
	unitRepo := repositories.NewUnitRepository(pool)
	partyRepo := repositories.NewPartyRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)

	// Services
	authzSvc := services.NewAuthzService(memberRepo, cacheSvc)
	authSvc := services.NewAuthService(userRepo, cacheSvc, cfg.Auth.JWTSecret, cfg.Auth.AccessTTLSeconds, cfg.Auth.RefreshTTLSeconds)
	notificationSvc := services.NewNotificationService(cfg.Webhook.URL)
	userSvc := services.NewUserService(userRepo, authzSvc)
	orgSvc := services.NewOrganizationService(orgRepo, memberRepo, invitationRepo, authzSvc, notificationSvc, cacheSvc)
	taxRateSvc := services.NewTaxRateService(taxRateRepo, authzSvc)
	unitSvc := services.NewUnitService(unitRepo, authzSvc)
	itemSvc := services.NewItemService(itemRepo, stockRepo, taxRateRepo, unitRepo, authzSvc, minioSvc, cacheSvc)
	partySvc := services.NewPartyService(partyRepo, authzSvc)
	invoiceSvc := services.NewInvoiceService(invoiceRepo, itemRepo, taxRateRepo, partyRepo, stockRepo, authzSvc)
	paymentSvc := services.NewPaymentService(paymentRepo, invoiceRepo, authzSvc)
	pdfSvc := services.NewPDFService(invoiceRepo, orgRepo, partyRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, authzSvc)
	userHandlers := handlers.NewUserHandlers(userSvc)
	orgHandlers := handlers.NewOrganizationHandlers(orgSvc, userSvc)
	itemHandlers := handlers.NewItemHandlers(itemSvc)
	taxRateHandlers := handlers.NewTaxRateHandlers(taxRateSvc)
	unitHandlers := handlers.NewUnitHandlers(unitSvc)
	partyHandlers := handlers.NewPartyHandlers(partySvc, paymentSvc)
	invoiceHandlers := handlers.NewInvoiceHandlers(invoiceSvc, paymentSvc, pdfSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/ready", healthHandlers.Ready)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.SignUp)
	auth.POST("/signin", authHandlers.SignIn)
	auth.POST("/refresh", authHandlers.Refresh)

	// Authenticated routes; organization resolution happens in the JWT layer
	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(authSvc, authzSvc))

	protected.POST("/auth/signout", authHandlers.SignOut)

	protected.GET("/me", userHandlers.GetProfile)
	protected.PUT("/me", userHandlers.UpdateProfile)
	protected.PUT("/me/password", userHandlers.ChangePassword)

	// Organization routes that work before any membership exists
	protected.POST("/organizations", orgHandlers.Onboard)
	protected.GET("/organizations", orgHandlers.ListMine)
	protected.POST("/organizations/:id/switch", orgHandlers.Switch)
	protected.POST("/invitations/:id/accept", orgHandlers.AcceptInvitation)

	// Everything below requires an active organization
	org := protected.Group("", middleware.RequireOrganization())

	org.GET("/organizations/current", orgHandlers.GetCurrent)
	org.PUT("/organizations/current", orgHandlers.Update, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	org.DELETE("/organizations/current", orgHandlers.Delete, middleware.RequireRole(models.RoleOwner))

	org.GET("/organizations/current/members", orgHandlers.ListMembers)
	org.PUT("/organizations/current/members/:id/role", orgHandlers.UpdateMemberRole, middleware.RequireRole(models.RoleOwner))
	org.DELETE("/organizations/current/members/:id", orgHandlers.RemoveMember, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))

	org.POST("/organizations/current/invitations", orgHandlers.Invite, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	org.GET("/organizations/current/invitations", orgHandlers.ListInvitations, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	org.DELETE("/organizations/current/invitations/:id", orgHandlers.CancelInvitation, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))

	org.POST("/items", itemHandlers.Create)
	org.GET("/items", itemHandlers.List)
	org.GET("/items/low-stock", itemHandlers.LowStock)
	org.GET("/items/:id", itemHandlers.Get)
	org.PUT("/items/:id", itemHandlers.Update)
	org.DELETE("/items/:id", itemHandlers.Delete, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	org.GET("/items/:id/stock", itemHandlers.GetStock)
	org.POST("/items/:id/adjustments", itemHandlers.AdjustStock, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	org.GET("/items/:id/movements", itemHandlers.ListMovements)
	org.POST("/items/:id/image", itemHandlers.UploadImage)
	org.GET("/items/:id/image", itemHandlers.GetImageURL)

	org.POST("/tax-rates", taxRateHandlers.Create, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	org.GET("/tax-rates", taxRateHandlers.List)
	org.GET("/tax-rates/:id", taxRateHandlers.Get)
	org.PUT("/tax-rates/:id", taxRateHandlers.Update, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	org.DELETE("/tax-rates/:id", taxRateHandlers.Delete, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))

	org.POST("/units", unitHandlers.Create, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	org.GET("/units", unitHandlers.List)
	org.DELETE("/units/:id", unitHandlers.Delete, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	org.POST("/units/:id/conversions", unitHandlers.CreateConversion, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	org.GET("/units/:id/conversions", unitHandlers.ListConversions)
	org.DELETE("/units/conversions/:id", unitHandlers.DeleteConversion, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))

	org.POST("/parties", partyHandlers.Create)
	org.GET("/parties", partyHandlers.List)
	org.GET("/parties/:id", partyHandlers.Get)
	org.PUT("/parties/:id", partyHandlers.Update)
	org.DELETE("/parties/:id", partyHandlers.Delete, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	org.GET("/parties/:id/payments", partyHandlers.ListPayments)

	org.POST("/invoices", invoiceHandlers.Create)
	org.GET("/invoices", invoiceHandlers.List)
	org.GET("/invoices/:id", invoiceHandlers.Get)
	org.POST("/invoices/:id/cancel", invoiceHandlers.Cancel, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	org.POST("/invoices/:id/payments", invoiceHandlers.RecordPayment)
	org.GET("/invoices/:id/payments", invoiceHandlers.ListPayments)
	org.GET("/invoices/:id/pdf", invoiceHandlers.DownloadPDF)

	org.GET("/reports/gst", invoiceHandlers.GSTReport, middleware.RequireRole(models.RoleOwner, models.RoleAdmin))

	// Background jobs
	scheduler, err := jobs.NewScheduler(orgRepo, stockRepo, invoiceSvc, notificationSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop scheduler: %v", err)
		}
	}()

	log.Printf("Starting server on %s", cfg.Server.Addr)
	if err := e.Start(cfg.Server.Addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
