package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/pethaven-backend/internal/auth"
	bookinghttp "github.com/nekogravitycat/pethaven-backend/internal/booking/http"
	hosthttp "github.com/nekogravitycat/pethaven-backend/internal/host/http"
	pethttp "github.com/nekogravitycat/pethaven-backend/internal/pet/http"
	photohttp "github.com/nekogravitycat/pethaven-backend/internal/photo/http"
	reviewhttp "github.com/nekogravitycat/pethaven-backend/internal/review/http"
	userhttp "github.com/nekogravitycat/pethaven-backend/internal/user/http"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the per-module HTTP handlers mounted under /v1.
type Handlers struct {
	User    *userhttp.UserHandler
	Pet     *pethttp.PetHandler
	Host    *hosthttp.HostHandler
	Booking *bookinghttp.Handler
	Review  *reviewhttp.Handler
	Photo   *photohttp.Handler
}

type Config struct {
	IsProduction   bool
	ProdOrigins    []string
	Logger         *zap.Logger
	DB             Pinger
	JWTManager     *auth.JWTManager
	RateLimitRPS   float64
	RateLimitBurst int
	Handlers       Handlers
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.L()
	}

	r := gin.New()
	r.Use(RequestLogger(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // web
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/healthz", healthz(cfg.DB))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	h := cfg.Handlers

	v1 := r.Group("/v1")
	{
		v1.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"name": "PetHaven API", "version": "1.0.0"})
		})
		userhttp.RegisterRoutes(v1, h.User, authMiddleware)
		pethttp.RegisterRoutes(v1, h.Pet, authMiddleware)
		hosthttp.RegisterRoutes(v1, h.Host, authMiddleware)
		bookinghttp.RegisterRoutes(v1, h.Booking, authMiddleware)
		reviewhttp.RegisterRoutes(v1, h.Review, authMiddleware)
		photohttp.RegisterRoutes(v1, h.Photo)
	}

	return r
}

func healthz(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, dbStatus := http.StatusOK, "ok"
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				zap.L().Error("health check ping failed", zap.Error(err))
				status, dbStatus = http.StatusServiceUnavailable, "unreachable"
			}
		}
		c.JSON(status, gin.H{
			"status":    http.StatusText(status),
			"database":  dbStatus,
			"timestamp": time.Now().UTC(),
		})
	}
}
