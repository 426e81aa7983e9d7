package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDriver   string `yaml:"db_driver"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	// DBDSN overrides the DSN built from the individual DB_* fields.
	DBDSN      string `yaml:"db_dsn"`
	DBLogLevel string `yaml:"db_log_level"`

	ServerPort  string   `yaml:"server_port"`
	GinMode     string   `yaml:"gin_mode"`
	LogLevel    string   `yaml:"log_level"`
	CORSOrigins []string `yaml:"cors_origins"`

	JWTSecret                string `yaml:"jwt_secret"`
	AccessTokenExpireMinutes int    `yaml:"access_token_expire_minutes"`

	NotifyQueue   string `yaml:"notify_queue"`
	NotifyWorkers int    `yaml:"notify_workers"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisQueue    string `yaml:"redis_queue"`
	RabbitMQURL   string `yaml:"rabbitmq_url"`
	RabbitMQQueue string `yaml:"rabbitmq_queue"`

	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	SMTPFrom     string `yaml:"smtp_from"`
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, a local .env file and finally the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		DBDriver:                 "mysql",
		DBHost:                   "localhost",
		DBPort:                   "3306",
		DBUser:                   "dashboard",
		DBPassword:               "dashboard",
		DBName:                   "project_dashboard",
		DBLogLevel:               "warn",
		ServerPort:               "8000",
		GinMode:                  "debug",
		LogLevel:                 "info",
		CORSOrigins:              []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		JWTSecret:                "default-secret-key-change-me",
		AccessTokenExpireMinutes: 30,
		NotifyQueue:              "memory",
		NotifyWorkers:            2,
		RedisAddr:                "localhost:6379",
		RedisQueue:               "dashboard:notifications",
		RabbitMQQueue:            "dashboard.notifications",
		SMTPPort:                 587,
		SMTPFrom:                 "noreply@project-dashboard.local",
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.DBDSN = getEnv("DB_DSN", c.DBDSN)
	c.DBLogLevel = getEnv("DB_LOG_LEVEL", c.DBLogLevel)

	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = splitList(origins)
	}

	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.AccessTokenExpireMinutes = getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", c.AccessTokenExpireMinutes)

	c.NotifyQueue = getEnv("NOTIFY_QUEUE", c.NotifyQueue)
	c.NotifyWorkers = getEnvInt("NOTIFY_WORKERS", c.NotifyWorkers)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnv("REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)
	c.RedisQueue = getEnv("REDIS_QUEUE", c.RedisQueue)
	c.RabbitMQURL = getEnv("RABBITMQ_URL", c.RabbitMQURL)
	c.RabbitMQQueue = getEnv("RABBITMQ_QUEUE", c.RabbitMQQueue)

	c.SMTPHost = getEnv("SMTP_HOST", c.SMTPHost)
	c.SMTPPort = getEnvInt("SMTP_PORT", c.SMTPPort)
	c.SMTPUser = getEnv("SMTP_USER", c.SMTPUser)
	c.SMTPPassword = getEnv("SMTP_PASSWORD", c.SMTPPassword)
	c.SMTPFrom = getEnv("SMTP_FROM", c.SMTPFrom)
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
