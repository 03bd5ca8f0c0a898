package routes

import (
	"time"

	"geocheckin/config"
	"geocheckin/services"
	"geocheckin/services/logger"
	"geocheckin/services/notification"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services is everything the HTTP layer and the jobs need.
type Services struct {
	Tokens     *services.TokenManager
	Auth       *services.AuthService
	Sites      *services.SiteService
	Attendance *services.AttendanceService
}

// NewServices wires the service graph onto the connected backends.
func NewServices(cfg *config.Config, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary, m *melody.Melody, log logger.Logger) *Services {
	cache := services.NewRedisCache(redisCli)
	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.TokenExpiryMinutes)

	var google services.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google = services.GoogleIDTokenVerifier{ClientID: cfg.GoogleClientID}
	}

	var uploader services.ImageUploader
	if cld != nil {
		uploader = services.NewCloudinaryUploader(cld)
	}

	sites := services.NewSiteService(services.SiteServiceOptions{
		Repo:     services.NewGormSiteRepository(db),
		Cache:    cache,
		Uploader: uploader,
		Logger:   log,
		CacheTTL: cfg.SiteCacheTTL,
	})

	attendance := services.NewAttendanceService(services.AttendanceServiceOptions{
		Sites:      sites,
		Store:      services.NewGormAttendanceRepository(db),
		Gate:       services.NewRedisScanGate(redisCli, cfg.ScanGateTTL),
		Cache:      cache,
		Notifier:   notification.NewMelodyService(m),
		Logger:     log,
		Now:        time.Now,
		HistoryTTL: cfg.HistoryCacheTTL,
		Location:   cfg.DisplayLocation(),
	})

	return &Services{
		Tokens: tokens,
		Auth: services.NewAuthService(services.AuthServiceOptions{
			Users:  services.NewGormUserRepository(db),
			Tokens: tokens,
			Google: google,
			Logger: log,
		}),
		Sites:      sites,
		Attendance: attendance,
	}
}
