package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/court-reservation-backend/internal/admin"
	adminHttp "github.com/nekogravitycat/court-reservation-backend/internal/admin/http"
	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/availability"
	availabilityHttp "github.com/nekogravitycat/court-reservation-backend/internal/availability/http"
	"github.com/nekogravitycat/court-reservation-backend/internal/block"
	blockHttp "github.com/nekogravitycat/court-reservation-backend/internal/block/http"
	"github.com/nekogravitycat/court-reservation-backend/internal/config"
	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	courtHttp "github.com/nekogravitycat/court-reservation-backend/internal/court/http"
	"github.com/nekogravitycat/court-reservation-backend/internal/payment"
	paymentHttp "github.com/nekogravitycat/court-reservation-backend/internal/payment/http"
	"github.com/nekogravitycat/court-reservation-backend/internal/reservation"
	reservationHttp "github.com/nekogravitycat/court-reservation-backend/internal/reservation/http"
	"github.com/nekogravitycat/court-reservation-backend/internal/tariff"
	tariffHttp "github.com/nekogravitycat/court-reservation-backend/internal/tariff/http"
)

// Config holds the services and settings the router is assembled from.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger

	RateLimit config.RateLimitConfig
	Redis     redis.Scripter // nil disables rate limiting

	CourtService        court.Service
	TariffService       tariff.Service
	AvailabilityService availability.Service
	ReservationService  reservation.Service
	PaymentService      payment.Service
	BlockService        block.Service
	AdminService        admin.Service
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Rate limit, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - RequestLogger: Attaches a zerolog logger to each request and logs the outcome.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{requestIDHeader, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates the staff JWT and stores the staff capability.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	rateLimitMiddleware := RateLimit(cfg.RateLimit, cfg.Redis)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	paymentHandler := paymentHttp.NewHandler(cfg.PaymentService)
	courtHandler := courtHttp.NewHandler(cfg.CourtService)
	tariffHandler := tariffHttp.NewHandler(cfg.TariffService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService, cfg.PaymentService.ProofURL)
	blockHandler := blockHttp.NewHandler(cfg.BlockService)
	adminHandler := adminHttp.NewHandler(cfg.AdminService, cfg.JWTManager)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		courtHttp.RegisterRoutes(v1, courtHandler)
		tariffHttp.RegisterRoutes(v1, tariffHandler)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler)

		limited := v1.Group("", rateLimitMiddleware)
		adminOpen := v1.Group("/admin")
		staff := v1.Group("/admin", authMiddleware)

		reservationHttp.RegisterRoutes(limited, staff, reservationHandler)
		paymentHttp.RegisterRoutes(limited, staff, paymentHandler)
		blockHttp.RegisterRoutes(staff, blockHandler)
		adminHttp.RegisterRoutes(adminOpen, staff, adminHandler)
	}

	return r
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
