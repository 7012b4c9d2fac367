package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Isann22/NutriTrack-Backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	CatalogPostgres = "postgres"
	CatalogS3       = "s3"
	CatalogFile     = "file"
)

type Config struct {
	Port   string
	AppEnv string

	DatabaseURL string

	CatalogSource string
	CatalogDir    string
	S3Bucket      string
	S3Prefix      string
	AWSRegion     string

	InferenceURL   string
	InferenceToken string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	SearchMaxAttempts int
	SearchWorkers     int
	SearchSeed        int64
	SearchTimeout     time.Duration
	MealPlanParallel  bool

	JWTSecret string
}

// Load reads .env when present and builds a Config from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		AppEnv:         getenv("APP_ENV", "development"),
		DatabaseURL:    databaseURL(),
		CatalogSource:  strings.ToLower(getenv("CATALOG_SOURCE", CatalogPostgres)),
		CatalogDir:     getenv("CATALOG_DIR", "data"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Prefix:       getenv("S3_PREFIX", "catalogs"),
		AWSRegion:      getenv("AWS_REGION", "us-east-1"),
		InferenceURL:   os.Getenv("INFERENCE_URL"),
		InferenceToken: os.Getenv("INFERENCE_TOKEN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
	}

	var err error
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = durationEnv("PREDICTION_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SearchMaxAttempts, err = intEnv("SEARCH_MAX_ATTEMPTS", 5000); err != nil {
		return nil, err
	}
	if cfg.SearchWorkers, err = intEnv("SEARCH_WORKERS", 1); err != nil {
		return nil, err
	}
	seed, err := intEnv("SEARCH_SEED", 0)
	if err != nil {
		return nil, err
	}
	cfg.SearchSeed = int64(seed)
	if cfg.SearchTimeout, err = durationEnv("SEARCH_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.MealPlanParallel, err = boolEnv("MEALPLAN_PARALLEL", true); err != nil {
		return nil, err
	}

	switch cfg.CatalogSource {
	case CatalogPostgres, CatalogS3, CatalogFile:
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE must be postgres, s3 or file, got %q", cfg.CatalogSource)
	}
	return cfg, nil
}

// InitDB opens the Postgres connection and migrates the recipe table.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Recipe{}); err != nil {
		return nil, fmt.Errorf("AutoMigrate failed: %w", err)
	}
	return db, nil
}

func databaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
