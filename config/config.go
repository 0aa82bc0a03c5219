package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string   `mapstructure:"APP_PORT"`
	DatabaseURL       string   `mapstructure:"DATABASE_URL"`
	DatabaseName      string   `mapstructure:"DATABASE_NAME"`
	Env               string   `mapstructure:"ENV"`
	JWTSecret         string   `mapstructure:"JWT_SECRET"`
	TokenTTLHours     int      `mapstructure:"TOKEN_TTL_HOURS"`
	LogLevel          string   `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`
	// TrustedProxies may set X-Forwarded-For / X-Real-IP; empty trusts none.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Admin account created or promoted at startup when both are set.
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
	AdminName     string `mapstructure:"ADMIN_NAME"`

	// Station directory (Open Charge Map) and geocoding.
	StationsBaseURL         string   `mapstructure:"STATIONS_BASE_URL"`
	StationsAPIKey          string   `mapstructure:"STATIONS_API_KEY"`
	StationsRelays          []string `mapstructure:"STATIONS_RELAYS"`
	StationsTimeoutSeconds  int      `mapstructure:"STATIONS_TIMEOUT_SECONDS"`
	StationsCacheTTLMinutes int      `mapstructure:"STATIONS_CACHE_TTL_MINUTES"`
	GeocoderBaseURL         string   `mapstructure:"GEOCODER_BASE_URL"`

	// Completion sweep schedule (asynq cron spec).
	CompletionSchedule string `mapstructure:"COMPLETION_SCHEDULE"`

	// Cloudinary credentials for review photos.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`
}

var AppConfig Config

// defaults doubles as the list of keys viper binds to environment variables.
var defaults = map[string]any{
	"APP_PORT":                   "8080",
	"DATABASE_URL":               "mongodb://localhost:27017",
	"DATABASE_NAME":              "chargesphere",
	"ENV":                        "development",
	"JWT_SECRET":                 "",
	"TOKEN_TTL_HOURS":            168,
	"LOG_LEVEL":                  "info",
	"MAX_REQUESTS_PER_MIN":       100,
	"CORS_ORIGINS":               []string{"*"},
	"TRUSTED_PROXIES":            []string{},
	"REDIS_ADDR":                 "localhost:6379",
	"REDIS_PASSWORD":             "",
	"REDIS_CACHE_DB":             0,
	"REDIS_AUTH_DB":              1,
	"REDIS_QUEUE_DB":             2,
	"ADMIN_EMAIL":                "",
	"ADMIN_PASSWORD":             "",
	"ADMIN_NAME":                 "Administrator",
	"STATIONS_BASE_URL":          "https://api.openchargemap.io/v3/poi",
	"STATIONS_API_KEY":           "",
	"STATIONS_RELAYS":            []string{"https://api.allorigins.win/raw?url=", "https://corsproxy.org/?", "https://corsproxy.io/?"},
	"STATIONS_TIMEOUT_SECONDS":   10,
	"STATIONS_CACHE_TTL_MINUTES": 15,
	"GEOCODER_BASE_URL":          "https://photon.komoot.io",
	"COMPLETION_SCHEDULE":        "@every 15m",
	"CLOUDINARY_CLOUD_NAME":      "",
	"CLOUDINARY_API_KEY":         "",
	"CLOUDINARY_API_SECRET":      "",
	"CLOUDINARY_FOLDER":          "chargesphere/reviews",
}

// Load reads config.yaml from "." or "./config", applies environment overrides and defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig and exits on failure.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
