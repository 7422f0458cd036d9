package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/court-reservation-backend/internal/admin"
	"github.com/nekogravitycat/court-reservation-backend/internal/api"
	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/availability"
	"github.com/nekogravitycat/court-reservation-backend/internal/block"
	"github.com/nekogravitycat/court-reservation-backend/internal/config"
	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	"github.com/nekogravitycat/court-reservation-backend/internal/payment"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/storage"
	"github.com/nekogravitycat/court-reservation-backend/internal/reservation"
	"github.com/nekogravitycat/court-reservation-backend/internal/tariff"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	Grid     timeslot.Grid
	Location *time.Location

	Storage       storage.Storage
	ProofMaxBytes int64

	RateLimit config.RateLimitConfig
	Redis     *redis.Client // optional

	Events reservation.Publisher
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router       *gin.Engine
	JWTManager   *auth.JWTManager
	AdminService admin.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	if cfg.Storage == nil {
		return nil, fmt.Errorf("storage is required")
	}

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	imageProcessor := storage.NewImageProcessor(200, 200)

	// Admin Module
	adminRepo := admin.NewPgxRepository(cfg.DBPool)
	adminService := admin.NewService(adminRepo, passwordHasher)

	// Court Module
	courtRepo := court.NewPgxRepository(cfg.DBPool)
	courtService := court.NewService(courtRepo)

	// Tariff Module
	tariffRepo := tariff.NewPgxRepository(cfg.DBPool)
	tariffService := tariff.NewService(tariffRepo)

	// Block Module
	blockRepo := block.NewPgxRepository(cfg.DBPool)
	blockService := block.NewService(blockRepo, courtService, cfg.Grid)

	// Reservation Module
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool)
	reservationService := reservation.NewService(reservationRepo, courtService, cfg.Grid, cfg.Events, cfg.Location)

	// Payment Module
	paymentRepo := payment.NewPgxRepository(cfg.DBPool)
	paymentService := payment.NewService(paymentRepo, reservationService, tariffService, cfg.Storage, imageProcessor, cfg.ProofMaxBytes)

	// Availability Module
	availabilityService := availability.NewService(courtService, reservationRepo, blockService, cfg.Grid)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		Logger:              cfg.Logger,
		RateLimit:           cfg.RateLimit,
		CourtService:        courtService,
		TariffService:       tariffService,
		AvailabilityService: availabilityService,
		ReservationService:  reservationService,
		PaymentService:      paymentService,
		BlockService:        blockService,
		AdminService:        adminService,
		JWTManager:          jwtManager,
	}
	if cfg.Redis != nil {
		routerParams.Redis = cfg.Redis
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:       router,
		JWTManager:   jwtManager,
		AdminService: adminService,
	}, nil
}
