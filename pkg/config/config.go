package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort  string
	Environment string

	MongoURI      string
	MongoDatabase string

	JWTSecret string
	JWTExpiry int64 // seconds

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PasswordCooldown time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
}

func Load() (*Config, error) {
	godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("MONGODB_DB", "studymarket")
	v.SetDefault("JWT_SECRET", "dev-secret")
	v.SetDefault("JWT_EXPIRY", 24*60*60)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("PASSWORD_COOLDOWN", "60s")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 30)

	config := &Config{
		ServerPort:       v.GetString("SERVER_PORT"),
		Environment:      v.GetString("ENVIRONMENT"),
		MongoURI:         v.GetString("MONGODB_URI"),
		MongoDatabase:    v.GetString("MONGODB_DB"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTExpiry:        v.GetInt64("JWT_EXPIRY"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		PasswordCooldown: v.GetDuration("PASSWORD_COOLDOWN"),
		RateLimitRPS:     v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:   v.GetInt("RATE_LIMIT_BURST"),
	}

	if config.Environment == "production" && config.JWTSecret == "dev-secret" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}
	if config.JWTExpiry <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRY must be positive, got %d", config.JWTExpiry)
	}
	if config.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", config.RateLimitRPS)
	}
	if config.RateLimitBurst < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", config.RateLimitBurst)
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
