package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr            string
	GinMode            string
	JWTSecret          string
	ExportTokenTTL     time.Duration
	CORSAllowedOrigins []string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	ttl := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("EXPORT_TOKEN_TTL")); raw != "" {
		if mins, err := strconv.Atoi(raw); err == nil && mins > 0 {
			ttl = time.Duration(mins) * time.Minute
		}
	}

	var origins []string
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Env{
		AppAddr:            appAddr,
		GinMode:            ginMode,
		JWTSecret:          secret,
		ExportTokenTTL:     ttl,
		CORSAllowedOrigins: origins,
	}
}
