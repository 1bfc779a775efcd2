package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/donatehub/platform-api/docs"
	"github.com/donatehub/platform-api/internal/api/handler"
	"github.com/donatehub/platform-api/internal/api/middleware"
	"github.com/donatehub/platform-api/internal/core/domain"
	"github.com/donatehub/platform-api/internal/core/ports"
	"github.com/donatehub/platform-api/internal/core/service"
	dbmongo "github.com/donatehub/platform-api/internal/infrastructure/db/mongo"
	dbredis "github.com/donatehub/platform-api/internal/infrastructure/db/redis"
	"github.com/donatehub/platform-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes
// registered. rdb may be nil; the OTP throttle is then disabled.
func NewRouter(db *mongo.Database, rdb *redis.Client, mailer ports.Mailer, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("donatehub"))

	// --- Dependencies ---
	userRepo := dbmongo.NewUserRepository(db)
	campaignRepo := dbmongo.NewCampaignRepository(db)
	donationRepo := dbmongo.NewDonationRepository(db)

	var limiter service.IssueLimiter
	if rdb != nil {
		limiter = dbredis.NewIssueThrottle(rdb)
	}

	authService := service.NewAuthService(userRepo, mailer, limiter, cfg.JWTSecret, cfg.JWTTTL, log)
	campaignService := service.NewCampaignService(campaignRepo, log)
	donationService := service.NewDonationService(donationRepo, campaignRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	campaignHandler := handler.NewCampaignHandler(campaignService)
	donationHandler := handler.NewDonationHandler(donationService, campaignService)
	dashboardHandler := handler.NewDashboardHandler(campaignService, donationService)

	authed := middleware.Auth(cfg.JWTSecret, userRepo)
	ngoOnly := middleware.RequireRole(domain.RoleNGO, domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/verify-email", authHandler.VerifyEmail)
	auth.POST("/resend-verification", authHandler.ResendVerification)
	auth.POST("/login", authHandler.Login)
	auth.POST("/verify-otp", authHandler.VerifyOTP)
	auth.PUT("/change-password", authHandler.ChangePassword, authed)

	// --- Campaign routes (reads public, writes owner/ngo gated) ---
	campaigns := e.Group("/campaigns")
	campaigns.GET("", campaignHandler.List)
	campaigns.GET("/:id", campaignHandler.Get)
	campaigns.POST("", campaignHandler.Create, authed, ngoOnly)
	campaigns.PUT("/:id", campaignHandler.Update, authed)
	campaigns.DELETE("/:id", campaignHandler.Delete, authed)
	campaigns.POST("/:id/donate", donationHandler.Donate, authed) // legacy alias

	// --- Donation routes ---
	donations := e.Group("/donations", authed)
	donations.POST("/:campaignId/donate", donationHandler.Donate)
	donations.GET("/my", donationHandler.ListMine)
	donations.GET("/campaign/:campaignId", donationHandler.ListForCampaign)

	// --- Dashboards ---
	dashboard := e.Group("/dashboard", authed)
	dashboard.GET("/ngo", dashboardHandler.NGO, ngoOnly)
	dashboard.GET("/donor", dashboardHandler.Donor)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
