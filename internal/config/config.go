package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDriver      string   `yaml:"db_driver"`
	DBHost        string   `yaml:"db_host"`
	DBPort        string   `yaml:"db_port"`
	DBUser        string   `yaml:"db_user"`
	DBPassword    string   `yaml:"db_password"`
	DBName        string   `yaml:"db_name"`
	DBLogLevel    string   `yaml:"db_log_level"`
	RedisHost     string   `yaml:"redis_host"`
	RedisPort     string   `yaml:"redis_port"`
	SessionSecret string   `yaml:"session_secret"`
	GinMode       string   `yaml:"gin_mode"`
	LogLevel      string   `yaml:"log_level"`
	HTTPAddr      string   `yaml:"http_addr"`
	CORSOrigins   []string `yaml:"cors_origins"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		DBDriver:      "mysql",
		DBHost:        "localhost",
		DBPort:        "3306",
		DBUser:        "trackeruser",
		DBPassword:    "trackerpassword",
		DBName:        "project_tracker",
		DBLogLevel:    "warn",
		RedisHost:     "localhost",
		RedisPort:     "6379",
		SessionSecret: "default-secret-key-change-me",
		GinMode:       "debug",
		LogLevel:      "info",
		HTTPAddr:      ":8080",
		CORSOrigins:   []string{"http://localhost:5173"},
	}
}

// Load reads .env, then the YAML file named by TRACKER_CONFIG_FILE, then
// environment variables. Later sources win.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("TRACKER_CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBLogLevel = getEnv("DB_LOG_LEVEL", cfg.DBLogLevel)
	cfg.RedisHost = getEnv("REDIS_HOST", cfg.RedisHost)
	cfg.RedisPort = getEnv("REDIS_PORT", cfg.RedisPort)
	cfg.SessionSecret = getEnv("SESSION_SECRET", cfg.SessionSecret)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
