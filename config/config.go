package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	DBDriver          string        `mapstructure:"DB_DRIVER"`
	MySQLURL          string        `mapstructure:"MYSQL_URL"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPass            string        `mapstructure:"DB_PASS"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBLogLevel        string        `mapstructure:"DB_LOG_LEVEL"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`

	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	JWTTTL          time.Duration `mapstructure:"JWT_TTL"`
	APIAuthRequired bool          `mapstructure:"API_AUTH_REQUIRED"`

	CloudinaryURL    string `mapstructure:"CLOUDINARY_URL"`
	CloudinaryFolder string `mapstructure:"CLOUDINARY_FOLDER"`
	UploadMaxBytes   int64  `mapstructure:"UPLOAD_MAX_BYTES"`

	DashboardDir string `mapstructure:"DASHBOARD_DIR"`
	LoginURL     string `mapstructure:"LOGIN_URL"`

	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
	AdminName     string `mapstructure:"ADMIN_NAME"`
}

var defaults = map[string]any{
	"PORT":                 "8080",
	"GIN_MODE":             "debug",
	"DB_DRIVER":            "mysql",
	"MYSQL_URL":            "",
	"DATABASE_URL":         "",
	"DB_HOST":              "127.0.0.1",
	"DB_PORT":              "3306",
	"DB_USER":              "root",
	"DB_PASS":              "",
	"DB_NAME":              "voyra_db",
	"DB_LOG_LEVEL":         "warn",
	"DB_MAX_OPEN_CONNS":    25,
	"DB_MAX_IDLE_CONNS":    5,
	"DB_CONN_MAX_LIFETIME": "30m",
	"CORS_ORIGINS":         "",
	"JWT_SECRET":           "",
	"JWT_TTL":              "24h",
	"API_AUTH_REQUIRED":    false,
	"CLOUDINARY_URL":       "",
	"CLOUDINARY_FOLDER":    "travel-dashboard",
	"UPLOAD_MAX_BYTES":     5 * 1024 * 1024,
	"DASHBOARD_DIR":        "",
	"LOGIN_URL":            "/login",
	"ADMIN_EMAIL":          "",
	"ADMIN_PASSWORD":       "",
	"ADMIN_NAME":           "Admin",
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}
	return FromEnv()
}

// FromEnv resolves the configuration from environment variables and defaults only.
func FromEnv() Config {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("⚠️  config unmarshal: %v", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	return cfg
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set when GIN_MODE=release")

func (c Config) Release() bool { return c.GinMode == "release" }

// EnsureJWTSecret fills an empty JWT_SECRET with a random per-process key
// outside release mode. Sessions signed with it end when the process exits.
func (c *Config) EnsureJWTSecret() error {
	if strings.TrimSpace(c.JWTSecret) != "" {
		return nil
	}
	if c.Release() {
		return ErrMissingJWTSecret
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	c.JWTSecret = hex.EncodeToString(buf)
	log.Println("⚠️  JWT_SECRET not set; using a random key, sessions will not survive a restart")
	return nil
}

// CORSOriginList splits CORS_ORIGINS on commas; an empty setting allows any origin.
func (c Config) CORSOriginList() []string {
	raw := strings.TrimSpace(c.CORSOrigins)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
