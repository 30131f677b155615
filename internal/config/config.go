package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Env             string `yaml:"env"` // development, production, test
		ShutdownTimeout string `yaml:"shutdown_timeout"`
		EnableSwagger   bool   `yaml:"enable_swagger"`
	} `yaml:"server"`

	Database struct {
		DSN             string `yaml:"url"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		SlowQuery       string `yaml:"slow_query"`
		AutoMigrate     bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	JWT struct {
		AccessSecret  string `yaml:"access_secret"`
		AccessTTL     string `yaml:"access_ttl"`
		RefreshSecret string `yaml:"refresh_secret"`
		RefreshTTL    string `yaml:"refresh_ttl"`
	} `yaml:"jwt"`

	CORS struct {
		Origins []string `yaml:"origins"`
	} `yaml:"cors"`

	FrontendURL string `yaml:"frontend_url"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	SMS struct {
		TwilioAccountSID  string `yaml:"twilio_account_sid"`
		TwilioAuthToken   string `yaml:"twilio_auth_token"`
		TwilioPhoneNumber string `yaml:"twilio_phone_number"`
	} `yaml:"sms"`

	Google struct {
		ClientID     string `yaml:"client_id"`
		TokenInfoURL string `yaml:"tokeninfo_url"`
	} `yaml:"google"`

	Storage struct {
		Type      string `yaml:"type"`      // local, s3
		BasePath  string `yaml:"base_path"` // local
		BaseURL   string `yaml:"base_url"`  // публичный префикс
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Endpoint  string `yaml:"endpoint"` // R2 / MinIO
	} `yaml:"storage"`

	Upload struct {
		MaxResumeSize int64 `yaml:"max_resume_size"`
	} `yaml:"upload"`

	RateLimit struct {
		Disabled bool   `yaml:"disabled"`
		Store    string `yaml:"store"` // memory, redis
	} `yaml:"rate_limit"`

	Redis struct {
		URL string `yaml:"url"`
	} `yaml:"redis"`

	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"admin"`

	Workers struct {
		TokenCleanupInterval string `yaml:"token_cleanup_interval"`
	} `yaml:"workers"`
}

// Load собирает конфигурацию: .env -> YAML -> переменные окружения -> значения по умолчанию.
// Результат передается компонентам явно и после загрузки не меняется.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	if err := loadYAML(configPath, &cfg); err != nil {
		return nil, err
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "HOST")
	setInt(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.Env, "NODE_ENV")
	setString(&cfg.Server.Env, "APP_ENV")
	setBool(&cfg.Server.EnableSwagger, "ENABLE_SWAGGER")

	setString(&cfg.Database.DSN, "DATABASE_URL")
	setBool(&cfg.Database.AutoMigrate, "DB_AUTO_MIGRATE")

	setString(&cfg.JWT.AccessSecret, "ACCESS_TOKEN_SECRET")
	setString(&cfg.JWT.AccessTTL, "ACCESS_TOKEN_EXPIRY")
	setString(&cfg.JWT.RefreshSecret, "REFRESH_TOKEN_SECRET")
	setString(&cfg.JWT.RefreshTTL, "REFRESH_TOKEN_EXPIRY")

	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		cfg.CORS.Origins = splitList(v)
	}
	setString(&cfg.FrontendURL, "FRONTEND_URL")

	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "FROM_EMAIL")

	setString(&cfg.SMS.TwilioAccountSID, "TWILIO_ACCOUNT_SID")
	setString(&cfg.SMS.TwilioAuthToken, "TWILIO_AUTH_TOKEN")
	setString(&cfg.SMS.TwilioPhoneNumber, "TWILIO_PHONE_NUMBER")

	setString(&cfg.Google.ClientID, "GOOGLE_CLIENT_ID")

	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.Storage.BasePath, "STORAGE_PATH")
	setString(&cfg.Storage.Bucket, "S3_BUCKET")
	setString(&cfg.Storage.Region, "S3_REGION")
	setString(&cfg.Storage.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "S3_SECRET_KEY")
	setString(&cfg.Storage.Endpoint, "S3_ENDPOINT")

	setString(&cfg.RateLimit.Store, "RATE_LIMIT_STORE")
	setBool(&cfg.RateLimit.Disabled, "RATE_LIMIT_DISABLED")
	setString(&cfg.Redis.URL, "REDIS_URL")

	setString(&cfg.Admin.Email, "FIRST_ADMIN_EMAIL")
	setString(&cfg.Admin.Password, "FIRST_ADMIN_PASSWORD")
	setString(&cfg.Admin.Name, "FIRST_ADMIN_NAME")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.ShutdownTimeout == "" {
		cfg.Server.ShutdownTimeout = "10s"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == "" {
		cfg.Database.ConnMaxLifetime = "30m"
	}
	if cfg.Database.SlowQuery == "" {
		cfg.Database.SlowQuery = "200ms"
	}
	if cfg.JWT.AccessTTL == "" {
		cfg.JWT.AccessTTL = "15m"
	}
	if cfg.JWT.RefreshTTL == "" {
		cfg.JWT.RefreshTTL = "7d"
	}
	if len(cfg.CORS.Origins) == 0 {
		cfg.CORS.Origins = []string{"http://localhost:3000"}
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:3000"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = "onboarding@sortout.dev"
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "SortOut Jobs"
	}
	if cfg.Google.TokenInfoURL == "" {
		cfg.Google.TokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/uploads"
	}
	if cfg.Upload.MaxResumeSize == 0 {
		cfg.Upload.MaxResumeSize = 5 * 1024 * 1024
	}
	if cfg.RateLimit.Store == "" {
		cfg.RateLimit.Store = "memory"
	}
	if cfg.Server.Env == "test" {
		cfg.RateLimit.Disabled = true
	}
	if cfg.Admin.Name == "" {
		cfg.Admin.Name = "Admin"
	}
	if cfg.Workers.TokenCleanupInterval == "" {
		cfg.Workers.TokenCleanupInterval = "1h"
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	switch c.Server.Env {
	case "development", "production", "test":
	default:
		problems = append(problems, fmt.Sprintf("unknown env %q", c.Server.Env))
	}
	if c.Database.DSN == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if len(c.JWT.AccessSecret) < 10 {
		problems = append(problems, "ACCESS_TOKEN_SECRET is too short")
	}
	if len(c.JWT.RefreshSecret) < 10 {
		problems = append(problems, "REFRESH_TOKEN_SECRET is too short")
	}
	for name, v := range map[string]string{
		"access token expiry":     c.JWT.AccessTTL,
		"refresh token expiry":    c.JWT.RefreshTTL,
		"shutdown timeout":        c.Server.ShutdownTimeout,
		"token cleanup interval":  c.Workers.TokenCleanupInterval,
		"connection max lifetime": c.Database.ConnMaxLifetime,
		"slow query threshold":    c.Database.SlowQuery,
	} {
		if _, err := ParseDuration(v); err != nil {
			problems = append(problems, fmt.Sprintf("invalid %s: %v", name, err))
		}
	}
	if c.Storage.Type != "local" && c.Storage.Type != "s3" {
		problems = append(problems, fmt.Sprintf("unknown storage type %q", c.Storage.Type))
	}
	if c.Storage.Type == "s3" && c.Storage.Bucket == "" {
		problems = append(problems, "S3_BUCKET is required for s3 storage")
	}
	if c.RateLimit.Store == "redis" && c.Redis.URL == "" {
		problems = append(problems, "REDIS_URL is required for redis rate limit store")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) IsProduction() bool  { return c.Server.Env == "production" }
func (c *Config) IsDevelopment() bool { return c.Server.Env == "development" }

func (c *Config) AccessTTL() time.Duration {
	return mustDuration(c.JWT.AccessTTL)
}

func (c *Config) RefreshTTL() time.Duration {
	return mustDuration(c.JWT.RefreshTTL)
}

func (c *Config) ShutdownTimeout() time.Duration {
	return mustDuration(c.Server.ShutdownTimeout)
}

func (c *Config) TokenCleanupInterval() time.Duration {
	return mustDuration(c.Workers.TokenCleanupInterval)
}

func (c *Config) ConnMaxLifetime() time.Duration {
	return mustDuration(c.Database.ConnMaxLifetime)
}

func (c *Config) SlowQueryThreshold() time.Duration {
	return mustDuration(c.Database.SlowQuery)
}

func (c *Config) EmailConfigured() bool {
	return c.Email.SMTPHost != ""
}

func (c *Config) SMSConfigured() bool {
	return c.SMS.TwilioAccountSID != "" && c.SMS.TwilioAuthToken != "" && c.SMS.TwilioPhoneNumber != ""
}

func (c *Config) GoogleConfigured() bool {
	return c.Google.ClientID != ""
}

// ParseDuration понимает формат time.ParseDuration и дополнительно суффикс "d" (дни): "7d", "15m".
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days < 0 {
			return 0, fmt.Errorf("invalid day duration %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

// mustDuration вызывается только после Validate
func mustDuration(s string) time.Duration {
	d, err := ParseDuration(s)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return d
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
