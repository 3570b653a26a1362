package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"taruf-api/core/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Storage    StorageConfig
	Assignment AssignmentConfig
	Queue      QueueConfig
	Log        LogConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Migrate  bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// StorageConfig points at the bucket holding candidate photos. An empty Bucket
// disables signing and photo references are returned as stored.
type StorageConfig struct {
	Bucket      string
	Region      string
	Endpoint    string
	AccessKey   string
	SecretKey   string
	PhotoURLTTL time.Duration
}

type AssignmentConfig struct {
	RoomCapacity  int
	MaxSlotSearch int
	LockTTL       time.Duration
}

type QueueConfig struct {
	Enabled     bool
	Concurrency int
}

type LogConfig struct {
	Level  string
	Format string
}

var (
	mu       sync.RWMutex
	instance *Config
)

// Load reads .env (when present) and the process environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("SERVER_HOST"),
			Port:        v.GetInt("SERVER_PORT"),
			CORSOrigins: splitList(v.GetString("SERVER_CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("JWT_KEY"),
			TokenTTL: v.GetDuration("JWT_TOKEN_TTL"),
		},
		Storage: StorageConfig{
			Bucket:      v.GetString("STORAGE_BUCKET"),
			Region:      v.GetString("STORAGE_REGION"),
			Endpoint:    v.GetString("STORAGE_ENDPOINT"),
			AccessKey:   v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey:   v.GetString("STORAGE_SECRET_KEY"),
			PhotoURLTTL: v.GetDuration("STORAGE_PHOTO_URL_TTL"),
		},
		Assignment: AssignmentConfig{
			RoomCapacity:  v.GetInt("ASSIGNMENT_ROOM_CAPACITY"),
			MaxSlotSearch: v.GetInt("ASSIGNMENT_MAX_SLOT_SEARCH"),
			LockTTL:       v.GetDuration("ASSIGNMENT_LOCK_TTL"),
		},
		Queue: QueueConfig{
			Enabled:     v.GetBool("QUEUE_ENABLED"),
			Concurrency: v.GetInt("QUEUE_CONCURRENCY"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("SERVER_CORS_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "taruf")
	v.SetDefault("DB_SSLMODE", constants.DatabaseSSLMode)
	v.SetDefault("DB_MIGRATE", true)

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_TOKEN_TTL", constants.TokenTTL)

	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_PHOTO_URL_TTL", 15*time.Minute)

	v.SetDefault("ASSIGNMENT_ROOM_CAPACITY", constants.RoomCapacity)
	v.SetDefault("ASSIGNMENT_MAX_SLOT_SEARCH", constants.MaxSlotSearch)
	v.SetDefault("ASSIGNMENT_LOCK_TTL", constants.AssignmentLockTTL)

	v.SetDefault("QUEUE_ENABLED", true)
	v.SetDefault("QUEUE_CONCURRENCY", constants.QueueWorkerConcurrency)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_KEY is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("config: invalid SERVER_PORT %d", c.Server.Port)
	}
	if c.Assignment.RoomCapacity <= 0 {
		return fmt.Errorf("config: ASSIGNMENT_ROOM_CAPACITY must be positive")
	}
	if c.Assignment.MaxSlotSearch <= 0 {
		return fmt.Errorf("config: ASSIGNMENT_MAX_SLOT_SEARCH must be positive")
	}
	return nil
}

// Get returns the loaded config and panics when Load has not run.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: not initialized")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

// Set installs cfg as the process config. Used by tests.
func Set(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
