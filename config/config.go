package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
)

var Cloudinary *cloudinary.Cloudinary

// App holds the configuration loaded by InitApp.
var App *Config

type Config struct {
	Env      string
	Port     string
	LogLevel string
	LogDir   string
	// DisplayTimeZone is used for history labels such as "Today, 03:04 PM".
	DisplayTimeZone string

	DB    DBConfig
	Redis RedisConfig

	JWTSecret          string
	TokenExpiryMinutes int
	GoogleClientID     string
	CloudinaryURL      string

	ScanGateTTL     time.Duration
	SiteCacheTTL    time.Duration
	HistoryCacheTTL time.Duration
	SummaryCron     string
	KeepAliveURL    string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// LoadEnv loads .env into the process environment when the file exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: error loading .env file: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

// Load reads the configuration from the environment. DB settings are taken
// from the <ENV>_DB_* variables, ENV being dev, qc or prod.
func Load() *Config {
	env := getEnv("ENV", "dev")

	return &Config{
		Env:      env,
		Port:     getEnv("PORT", "8083"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   os.Getenv("LOG_DIR"),

		DisplayTimeZone: getEnv("DISPLAY_TIMEZONE", "Asia/Kolkata"),
		DB:              loadDBConfig(env),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Username: os.Getenv("REDIS_USER"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWTSecret:          os.Getenv("SECRET_KEY_ACCESS_TOKEN"),
		TokenExpiryMinutes: getEnvInt("ACCESS_TOKEN_EXPIRY_MINUTES", 60*24*3),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		CloudinaryURL:      os.Getenv("CLOUDINARY_URL"),
		ScanGateTTL:        getEnvDuration("SCAN_GATE_TTL", 30*time.Second),
		SiteCacheTTL:       getEnvDuration("SITE_CACHE_TTL", 10*time.Minute),
		HistoryCacheTTL:    getEnvDuration("HISTORY_CACHE_TTL", 5*time.Minute),
		SummaryCron:        getEnv("SUMMARY_CRON", "0 0 * * *"),
		KeepAliveURL:       os.Getenv("KEEPALIVE_URL"),
	}
}

func loadDBConfig(env string) DBConfig {
	prefix := envPrefix(env)
	return DBConfig{
		Host:     os.Getenv(prefix + "_DB_HOST"),
		Port:     getEnv(prefix+"_DB_PORT", "5432"),
		User:     os.Getenv(prefix + "_DB_USER"),
		Password: os.Getenv(prefix + "_DB_PASSWORD"),
		Name:     os.Getenv(prefix + "_DB_NAME"),
		SSLMode:  getEnv(prefix+"_DB_SSLMODE", "require"),
		TimeZone: getEnv("DB_TIMEZONE", "UTC"),
	}
}

func envPrefix(env string) string {
	switch env {
	case "qc":
		return "QC"
	case "prod":
		return "PROD"
	default:
		return "DEV"
	}
}

// ConnectCloudinary initialises Cloudinary from CLOUDINARY_URL. Photo upload
// is disabled when the URL is not set.
func ConnectCloudinary(cfg *Config) error {
	if cfg.CloudinaryURL == "" {
		log.Println("CLOUDINARY_URL not set, site photo upload disabled")
		return nil
	}
	var err error
	Cloudinary, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	return err
}

// DisplayLocation resolves DisplayTimeZone, falling back to UTC.
func (c *Config) DisplayLocation() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimeZone)
	if err != nil {
		log.Printf("Warning: unknown DISPLAY_TIMEZONE %q, using UTC", c.DisplayTimeZone)
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
