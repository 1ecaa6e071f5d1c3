package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		BaseURL        string   `yaml:"base_url" env:"SERVER_BASE_URL"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS" envSeparator:","`
		StoragePath    string   `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		MaxUploadMB    int      `yaml:"max_upload_mb" env:"SERVER_MAX_UPLOAD_MB"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		RunMigrations   bool   `yaml:"run_migrations" env:"DB_RUN_MIGRATIONS"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	BaaS struct {
		URL     string `yaml:"url" env:"BAAS_URL"`
		AnonKey string `yaml:"anon_key" env:"BAAS_ANON_KEY"`
	} `yaml:"baas"`

	ImageHost struct {
		Enabled      bool   `yaml:"enabled" env:"IMAGEHOST_ENABLED"`
		CloudName    string `yaml:"cloud_name" env:"IMAGEHOST_CLOUD_NAME"`
		UploadPreset string `yaml:"upload_preset" env:"IMAGEHOST_UPLOAD_PRESET"`
		Folder       string `yaml:"folder" env:"IMAGEHOST_FOLDER"`
		APIKey       string `yaml:"api_key" env:"IMAGEHOST_API_KEY"`
		APISecret    string `yaml:"api_secret" env:"IMAGEHOST_API_SECRET"`
	} `yaml:"imagehost"`

	Redis struct {
		Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED"`
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		CacheTTL string `yaml:"cache_ttl" env:"REDIS_CACHE_TTL"`
	} `yaml:"redis"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		UseTLS    bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
		NotifyTo  string `yaml:"notify_to" env:"SMTP_NOTIFY_TO"`
	} `yaml:"smtp"`

	Telemetry struct {
		Enabled     bool   `yaml:"enabled" env:"OTEL_ENABLED"`
		Endpoint    string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
		ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
	} `yaml:"telemetry"`

	Site struct {
		BaseURL     string   `yaml:"base_url" env:"SITE_BASE_URL"`
		AdminEmails []string `yaml:"admin_emails" env:"SITE_ADMIN_EMAILS" envSeparator:","`
	} `yaml:"site"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.AllowedOrigins = []string{"http://localhost:5173"}
	config.Server.StoragePath = "./uploads"
	config.Server.MaxUploadMB = 10

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "acemed"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "8h"
	config.JWT.Issuer = "acemedformatics.org"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.ImageHost.Folder = "acemedformatics/media"

	config.Redis.Addr = "localhost:6379"
	config.Redis.CacheTTL = "5m"

	config.SMTP.Port = 587
	config.SMTP.FromName = "ACE Medformatics"

	config.Telemetry.ServiceName = "acemed-api"

	config.Site.BaseURL = "https://acemedformatics.org"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	var errs []error

	if config.Database.Host == "" {
		errs = append(errs, errors.New("database host is required"))
	}
	if config.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT secret is required"))
	}
	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		errs = append(errs, fmt.Errorf("invalid JWT access token expiration format: %w", err))
	}
	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		errs = append(errs, fmt.Errorf("invalid connection max lifetime: %w", err))
	}
	if config.BaaS.URL == "" {
		errs = append(errs, errors.New("BaaS auth url is required"))
	} else if u, err := url.Parse(config.BaaS.URL); err != nil || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid BaaS url %q", config.BaaS.URL))
	}
	if config.ImageHost.Enabled && (config.ImageHost.CloudName == "" || config.ImageHost.UploadPreset == "") {
		errs = append(errs, errors.New("image host needs a cloud name and an upload preset"))
	}
	if config.Redis.Enabled {
		if config.Redis.Addr == "" {
			errs = append(errs, errors.New("redis addr is required when redis is enabled"))
		}
		if _, err := time.ParseDuration(config.Redis.CacheTTL); err != nil {
			errs = append(errs, fmt.Errorf("invalid redis cache ttl: %w", err))
		}
	}
	if config.Server.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("max upload size must be positive"))
	}

	return errors.Join(errs...)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + c.Database.Port,
		Path:     "/" + c.Database.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "production" || c.Server.Mode == "release"
}
