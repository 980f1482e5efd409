package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string `mapstructure:"APP_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     int    `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBScheme   string `mapstructure:"DB_SCHEME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// --- файловое хранилище ---
	StorageDriver string `mapstructure:"STORAGE_DRIVER"` // fs | s3
	UploadDir     string `mapstructure:"UPLOAD_DIR"`

	// --- S3 ---
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
	S3UseSSL    bool   `mapstructure:"S3_USE_SSL"`
	S3PathStyle bool   `mapstructure:"S3_PATH_STYLE"`

	// --- auth ---
	AuthJWTSecret string        `mapstructure:"AUTH_JWT_SECRET"`
	AuthIssuer    string        `mapstructure:"AUTH_ISSUER"`
	AuthTokenTTL  time.Duration `mapstructure:"AUTH_TOKEN_TTL"`
	AdminToken    string        `mapstructure:"ADMIN_TOKEN"`

	// --- кеш (секунды) ---
	CacheToolkitTTL int `mapstructure:"CACHE_TOOLKIT_TTL"`
	CacheListTTL    int `mapstructure:"CACHE_LIST_TTL"`
}

// String реализует интерфейс Stringer
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  AppPort: %s\n", c.AppPort))
	sb.WriteString(fmt.Sprintf("  DBHost: %s\n", c.DBHost))
	sb.WriteString(fmt.Sprintf("  DBPort: %d\n", c.DBPort))
	sb.WriteString(fmt.Sprintf("  DBUser: %s\n", c.DBUser))
	sb.WriteString(fmt.Sprintf("  DBName: %s\n", c.DBName))
	sb.WriteString(fmt.Sprintf("  DBScheme: %s\n", c.DBScheme))

	// пароли и секреты маскируем
	sb.WriteString("  DBPassword: " + mask(c.DBPassword) + "\n")
	sb.WriteString(fmt.Sprintf("  RedisAddr: %s\n", c.RedisAddr))
	sb.WriteString(fmt.Sprintf("  RedisDB: %d\n", c.RedisDB))
	sb.WriteString("  RedisPassword: " + mask(c.RedisPassword) + "\n")

	sb.WriteString(fmt.Sprintf("  StorageDriver: %s\n", c.StorageDriver))
	sb.WriteString(fmt.Sprintf("  UploadDir: %s\n", c.UploadDir))

	sb.WriteString(fmt.Sprintf("  S3Endpoint: %s\n", c.S3Endpoint))
	sb.WriteString(fmt.Sprintf("  S3Region: %s\n", c.S3Region))
	sb.WriteString(fmt.Sprintf("  S3Bucket: %s\n", c.S3Bucket))
	sb.WriteString("  S3AccessKey: " + mask(c.S3AccessKey) + "\n")
	sb.WriteString("  S3SecretKey: " + mask(c.S3SecretKey) + "\n")
	sb.WriteString(fmt.Sprintf("  S3UseSSL: %v\n", c.S3UseSSL))
	sb.WriteString(fmt.Sprintf("  S3PathStyle: %v\n", c.S3PathStyle))

	sb.WriteString("  AuthJWTSecret: " + mask(c.AuthJWTSecret) + "\n")
	sb.WriteString(fmt.Sprintf("  AuthIssuer: %s\n", c.AuthIssuer))
	sb.WriteString(fmt.Sprintf("  AuthTokenTTL: %s\n", c.AuthTokenTTL))
	sb.WriteString("  AdminToken: " + mask(c.AdminToken) + "\n")

	sb.WriteString(fmt.Sprintf("  CacheToolkitTTL: %d\n", c.CacheToolkitTTL))
	sb.WriteString(fmt.Sprintf("  CacheListTTL: %d\n", c.CacheListTTL))

	return sb.String()
}

func mask(s string) string {
	if s == "" {
		return "(empty)"
	}
	return "********"
}

// LoadFromEnv загружает конфигурацию из переменных окружения
func LoadFromEnv() (*Config, error) {
	// Загружаем .env только для локальной разработки
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// Регистрируем интересующие ключи окружения
	keys := []string{
		"APP_ENV", "APP_PORT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SCHEME",
		"REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD",
		"STORAGE_DRIVER", "UPLOAD_DIR",
		"S3_ENDPOINT", "S3_REGION", "S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY",
		"S3_USE_SSL", "S3_PATH_STYLE",
		"AUTH_JWT_SECRET", "AUTH_ISSUER", "AUTH_TOKEN_TTL", "ADMIN_TOKEN",
		"CACHE_TOOLKIT_TTL", "CACHE_LIST_TTL",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// значения по умолчанию
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_SCHEME", "public")
	v.SetDefault("STORAGE_DRIVER", "fs")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("AUTH_ISSUER", "toolkit-service")
	v.SetDefault("AUTH_TOKEN_TTL", "24h")
	v.SetDefault("CACHE_TOOLKIT_TTL", 300)
	v.SetDefault("CACHE_LIST_TTL", 60)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
