package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret   string
	JWTTTLHours int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers    []string
	KafkaAuditTopic string

	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string

	FrontendURL string
	CORSOrigins []string
	PublicDir   string
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	ttl, _ := strconv.Atoi(os.Getenv("JWT_TTL_HOURS"))
	if ttl <= 0 {
		ttl = 24 * 7 // tokens live for 7 days
	}
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	publicDir := os.Getenv("PUBLIC_DIR")
	if publicDir == "" {
		publicDir = "./public"
	}

	return &Config{
		Port: port,

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  os.Getenv("DB_SSLMODE"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTTTLHours: ttl,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaAuditTopic: os.Getenv("KAFKA_AUDIT_TOPIC"),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:  os.Getenv("SMTP_FROM_NAME"),
		SMTPFromEmail: os.Getenv("SMTP_FROM_EMAIL"),

		FrontendURL: os.Getenv("FRONTEND_URL"),
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
		PublicDir:   publicDir,
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
