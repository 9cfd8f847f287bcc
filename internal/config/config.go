package config

import (
	"os"
	"strconv"
)

// Config reúne tudo que vem do ambiente. Construída uma vez no boot e
// passada explicitamente. Nada de singleton de pool em nível de módulo.
type Config struct {
	DBHost     string
	DBUser     string
	DBPass     string
	DBPort     string
	DBName     string
	DBPoolSize int

	HTTPPort string

	RabbitHost string
	RabbitPort string
	RabbitUser string
	RabbitPass string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SMTPSender string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", ""),
		DBPass:     getEnv("DB_PASS", ""),
		DBPort:     getEnv("RDS_PORT", "3306"),
		DBName:     getEnv("DB_NAME", ""),
		DBPoolSize: getEnvInt("DB_POOL_SIZE", 10),

		HTTPPort: getEnv("PORT", "8080"),

		RabbitHost: getEnv("RABBITMQ_HOST", ""),
		RabbitPort: getEnv("RABBITMQ_PORT", "5672"),
		RabbitUser: getEnv("RABBITMQ_USER", "guest"),
		RabbitPass: getEnv("RABBITMQ_PASS", "guest"),

		SMTPHost:   getEnv("MAIL_HOST", ""),
		SMTPPort:   getEnvInt("MAIL_PORT", 587),
		SMTPUser:   getEnv("MAIL_USER", ""),
		SMTPPass:   getEnv("MAIL_PASS", ""),
		SMTPSender: getEnv("MAIL_SENDER", "nao-responda@pos-server.local"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
