package config

import (
	"fmt"
	"os"
	"strings"

	"streamfront/internal/security"
)

type Config struct {
	DBDSN    string
	HTTPAddr string
	LogLevel string
	RedisDSN string

	// discord side
	BotToken string // raw token; never log this
	GuildID  string
	OwnerID  string

	// admin
	AdminSecretKey string
	CORSOrigins    []string

	// R2/S3 para upload da imagem do schedule
	R2Endpoint  string
	R2Bucket    string
	R2PublicURL string
	R2Region    string
}

func Load() (Config, error) {
	cfg := Config{
		DBDSN:          os.Getenv("DB_DSN"),
		HTTPAddr:       getenvDefault("HTTP_ADDR", ":8080"),
		LogLevel:       getenvDefault("LOG_LEVEL", "info"),
		RedisDSN:       getenvDefault("REDIS_DSN", "redis://localhost:6379/0"),
		BotToken:       os.Getenv("BOT_TOKEN"),
		GuildID:        strings.TrimSpace(os.Getenv("GUILD_ID")),
		OwnerID:        strings.TrimSpace(os.Getenv("OWNER_ID")),
		AdminSecretKey: getenvDefault("ADMIN_SECRET_KEY", ""),
		R2Endpoint:     getenvDefault("R2_ENDPOINT", ""),
		R2Bucket:       getenvDefault("R2_BUCKET", ""),
		R2PublicURL:    getenvDefault("R2_PUBLIC_URL", ""),
		R2Region:       getenvDefault("R2_REGION", "auto"),
	}

	// ids sao opcionais mas, se presentes, precisam ser snowflakes validos
	if cfg.GuildID != "" {
		if _, err := security.ParseSnowflake(cfg.GuildID); err != nil {
			return Config{}, fmt.Errorf("GUILD_ID invalido: %w", err)
		}
	}
	if cfg.OwnerID != "" {
		if _, err := security.ParseSnowflake(cfg.OwnerID); err != nil {
			return Config{}, fmt.Errorf("OWNER_ID invalido: %w", err)
		}
	}

	// parse CORS origins
	corsOrigins := getenvDefault("CORS_ORIGINS", "")
	if corsOrigins != "" {
		cfg.CORSOrigins = strings.Split(corsOrigins, ",")
		for i := range cfg.CORSOrigins {
			cfg.CORSOrigins[i] = strings.TrimSpace(cfg.CORSOrigins[i])
		}
	} else {
		cfg.CORSOrigins = []string{"http://localhost:3000"} // default
	}

	return cfg, nil
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
