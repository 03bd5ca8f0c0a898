package config

import (
	"fmt"
	"log"

	"geocheckin/validator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

var RedisClient *redis.Client

// InitApp loads configuration, connects every backing service and builds
// the gin engine, websocket hub and cron scheduler.
func InitApp() (*gin.Engine, *melody.Melody, *cron.Cron, error) {
	LoadEnv()
	App = Load()

	if App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Session-ID")
	configCors.AddExposeHeaders("X-Session-ID")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, nil, nil, err
	}

	if err := validator.RegisterBindings(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to register validators: %v", err)
	}

	if err := initComponents(App); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize components: %v", err)
	}

	m := melody.New()

	c := cron.New()

	return router, m, c, nil
}

func initComponents(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("SECRET_KEY_ACCESS_TOKEN is required")
	}

	if err := ConnectDB(cfg); err != nil {
		return err
	}

	if err := ConnectCloudinary(cfg); err != nil {
		return fmt.Errorf("failed to init cloudinary: %v", err)
	}

	var err error
	RedisClient, err = ConnectRedis(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	log.Println("All components initialized successfully")
	return nil
}

// InitWebSocket mounts the melody hub on /ws.
func InitWebSocket(router *gin.Engine, m *melody.Melody) {
	router.GET("/ws", func(c *gin.Context) {
		if err := m.HandleRequest(c.Writer, c.Request); err != nil {
			log.Printf("websocket upgrade failed: %v", err)
		}
	})
	log.Println("WebSocket initialized successfully")
}
