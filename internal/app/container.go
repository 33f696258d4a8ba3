package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/pethaven-backend/internal/api"
	"github.com/nekogravitycat/pethaven-backend/internal/auth"
	"github.com/nekogravitycat/pethaven-backend/internal/booking"
	bookinghttp "github.com/nekogravitycat/pethaven-backend/internal/booking/http"
	"github.com/nekogravitycat/pethaven-backend/internal/host"
	hosthttp "github.com/nekogravitycat/pethaven-backend/internal/host/http"
	"github.com/nekogravitycat/pethaven-backend/internal/pet"
	pethttp "github.com/nekogravitycat/pethaven-backend/internal/pet/http"
	"github.com/nekogravitycat/pethaven-backend/internal/photo"
	photohttp "github.com/nekogravitycat/pethaven-backend/internal/photo/http"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/cache"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/storage"
	"github.com/nekogravitycat/pethaven-backend/internal/review"
	reviewhttp "github.com/nekogravitycat/pethaven-backend/internal/review/http"
	"github.com/nekogravitycat/pethaven-backend/internal/user"
	userhttp "github.com/nekogravitycat/pethaven-backend/internal/user/http"
)

const thumbnailSize = 200

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	Logger       *zap.Logger
	DBPool       *pgxpool.Pool
	Cache        cache.Cache
	CacheTTL     time.Duration
	Storage      storage.Storage
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	MaxUploadBytes int64
	RateLimitRPS   float64
	RateLimitBurst int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Photo Module
	photoRepo := photo.NewRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, cfg.Storage, storage.NewImageProcessor(thumbnailSize, thumbnailSize))
	photoHandler := photohttp.NewHandler(photoService)

	// Pet Module
	petRepo := pet.NewPgxRepository(cfg.DBPool)
	petService := pet.NewService(petRepo)

	// Host Module
	hostRepo := host.NewPgxRepository(cfg.DBPool)
	hostService := host.NewService(hostRepo, cfg.Cache, cfg.CacheTTL)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, petService, hostService)

	// Review Module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo, bookingRepo, hostService)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		DB:             cfg.DBPool,
		JWTManager:     jwtManager,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Handlers: api.Handlers{
			User:    userhttp.NewHandler(userService, jwtManager),
			Pet:     pethttp.NewHandler(petService, photoHandler, cfg.MaxUploadBytes),
			Host:    hosthttp.NewHandler(hostService, photoHandler, cfg.MaxUploadBytes),
			Booking: bookinghttp.NewHandler(bookingService),
			Review:  reviewhttp.NewHandler(reviewService),
			Photo:   photoHandler,
		},
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
