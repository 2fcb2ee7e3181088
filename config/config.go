package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	JWT        JWTConfig
	OAuth      OAuthConfig
	Cloudinary CloudinaryConfig
	Geocoder   GeocoderConfig
	Directory  DirectoryConfig
	Log        LogConfig
	RateLimit  RateLimitConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// StoreConfig selects the backing store. Driver is one of "mongo", "mysql",
// "postgres" or "memory".
type StoreConfig struct {
	Driver          string
	MongoURI        string
	MongoDatabase   string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
	// SeedDemo loads the bundled demo pandals into an empty memory store.
	SeedDemo bool
}

type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
	Issuer       string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	AdminEmails        []string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type GeocoderConfig struct {
	APIKey   string
	BaseURL  string
	Region   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type DirectoryConfig struct {
	SummarySize         int
	DefaultRadiusMeters float64
	MaxRadiusMeters     float64
	DefaultOpeningTime  string
	DefaultClosingTime  string
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Stdout     bool
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Load reads an optional .env file, then builds the config from the
// environment with a default for every key.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on env vars")
	}
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8099"),
			Env:            getEnv("APP_ENV", "development"),
			ReadTimeout:    getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5000"}),
		},
		Store: StoreConfig{
			Driver:          strings.ToLower(getEnv("STORE_DRIVER", "mongo")),
			MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase:   getEnv("MONGO_DB_NAME", "utsavdarshan"),
			DSN:             getEnv("DATABASE_DSN", ""),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnectTimeout:  getEnvDuration("DB_CONNECT_TIMEOUT", 15*time.Second),
			SeedDemo:        getEnvBool("STORE_SEED_DEMO", false),
		},
		JWT: JWTConfig{
			AccessSecret: getEnv("JWT_SECRET", "change-me-in-production"),
			AccessExpiry: getEnvDuration("JWT_EXPIRY", 72*time.Hour),
			Issuer:       getEnv("JWT_ISSUER", "utsavdarshan"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8099/api/v1/auth/google/callback"),
			AdminEmails:        getEnvList("ADMIN_EMAILS", nil),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "utsavdarshan/pandals"),
		},
		Geocoder: GeocoderConfig{
			APIKey:   getEnv("GOOGLE_MAPS_API_KEY", ""),
			BaseURL:  getEnv("GEOCODER_BASE_URL", "https://maps.googleapis.com/maps/api/geocode/json"),
			Region:   getEnv("GEOCODER_REGION", "in"),
			Timeout:  getEnvDuration("GEOCODER_TIMEOUT", 5*time.Second),
			CacheTTL: getEnvDuration("GEOCODER_CACHE_TTL", 24*time.Hour),
		},
		Directory: DirectoryConfig{
			SummarySize:         getEnvInt("DIRECTORY_SUMMARY_SIZE", 4),
			DefaultRadiusMeters: getEnvFloat("DIRECTORY_DEFAULT_RADIUS_M", 2000),
			MaxRadiusMeters:     getEnvFloat("DIRECTORY_MAX_RADIUS_M", 100000),
			DefaultOpeningTime:  getEnv("DIRECTORY_DEFAULT_OPENING", "06:00"),
			DefaultClosingTime:  getEnv("DIRECTORY_DEFAULT_CLOSING", "22:00"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", "./logs/app.log"),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 7),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 7),
			Compress:   getEnvBool("LOG_COMPRESS", true),
			Stdout:     getEnvBool("LOG_STDOUT", true),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvInt("RATE_LIMIT_REQUESTS", 100),
			Window:   getEnvDuration("RATE_LIMIT_WINDOW", 60*time.Second),
		},
	}
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("config: %s=%q is not an integer, using %d", key, v, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("config: %s=%q is not a number, using %v", key, v, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("config: %s=%q is not a duration, using %s", key, v, defaultValue)
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
