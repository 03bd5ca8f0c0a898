package main

import (
	"io"
	"log"
	"net/http"
	"time"

	"geocheckin/config"
	"geocheckin/jobs"
	"geocheckin/models"
	"geocheckin/routes"
	"geocheckin/services/logger"
	"geocheckin/services/notification"
	"geocheckin/utils"

	"github.com/gin-gonic/gin"
)

func migrate() {
	if err := config.DB.AutoMigrate(&models.User{}, &models.Site{}, &models.Attendance{}); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}
}

// keepAlive pings url periodically so free-tier hosts do not idle the service.
func keepAlive(url string) {
	for {
		resp, err := http.Get(url)
		if err != nil {
			log.Printf("Error pinging %s: %v", url, err)
		} else {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			log.Printf("Ping response: %s", string(body))
		}
		time.Sleep(5 * time.Minute)
	}
}

func main() {
	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	cfg := config.App

	if cfg.LogDir != "" {
		w, closer, err := utils.LogWriter(cfg.LogDir, time.Now())
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer closer.Close()
		log.SetOutput(w)
		gin.DefaultWriter = w
	}
	appLogger := logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel))

	migrate()

	svc := routes.NewServices(cfg, config.DB, config.RedisClient, config.Cloudinary, m, appLogger)

	jobs.SetDailySummarizer(svc.Attendance)
	if err := jobs.InitCronJobs(c, cfg.SummaryCron, notification.NewMelodyService(m), appLogger); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}
	defer c.Stop()

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, svc)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	if cfg.KeepAliveURL != "" {
		go keepAlive(cfg.KeepAliveURL)
	}

	log.Println("Server starting on port " + cfg.Port + "...")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
