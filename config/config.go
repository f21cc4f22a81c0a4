package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RateLimitConfig controls the registration throttle. Requests counts per
// window, per client IP and event.
type RateLimitConfig struct {
	Requests  int
	WindowSec int
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:    GetServerConfig(),
		Database:  GetDatabaseConfig(),
		Redis:     GetRedisConfig(),
		RateLimit: GetRateLimitConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // test DB runs on 5433
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // test Redis runs on 6380
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:    ServerConfig{Port: "8080", Debug: true},
		Database:  *testConfig,
		Redis:     testRedisConfig,
		RateLimit: RateLimitConfig{Requests: 10, WindowSec: 60},
	}
}

func GetServerConfig() ServerConfig {
	debug, err := strconv.ParseBool(getEnv("APP_DEBUG", "false"))
	if err != nil {
		debug = false
	}

	return ServerConfig{
		Port:  getEnv("APP_PORT", "8080"),
		Debug: debug,
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetRateLimitConfig() RateLimitConfig {
	requests, err := strconv.Atoi(getEnv("REGISTRATION_RATE_LIMIT", "10"))
	if err != nil {
		panic(err)
	}
	window, err := strconv.Atoi(getEnv("REGISTRATION_RATE_WINDOW_SEC", "60"))
	if err != nil {
		panic(err)
	}

	return RateLimitConfig{
		Requests:  requests,
		WindowSec: window,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
