package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func dsn(cfg DBConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

func ConnectDB(cfg *Config) error {
	if cfg.DB.Host == "" || cfg.DB.Name == "" {
		return fmt.Errorf("database host/name not configured for env %q", cfg.Env)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn(cfg.DB)), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("fail to connect to db: %w", err)
	}

	log.Printf("Successfully connected to db %s@%s", cfg.DB.Name, cfg.DB.Host)
	return nil
}
