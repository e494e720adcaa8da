package app

import (
	"github.com/renthaus/enlistd/internal/platform/logger"
	"github.com/renthaus/enlistd/internal/utils"
)

type Config struct {
	Port        string
	JWTSecret   string
	RedisAddr   string
	MetricsAddr string
	Environment string
	Version     string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:        utils.GetEnv("PORT", "8080", log),
		JWTSecret:   utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		RedisAddr:   utils.GetEnv("REDIS_ADDR", "", log),
		MetricsAddr: utils.GetEnv("METRICS_ADDR", "", log),
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	}
}
