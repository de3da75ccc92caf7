package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr   string
	GinMode   string
	DBUser    string
	DBPass    string
	DBHost    string
	DBName    string
	JWTSecret string
}

func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env tidak terbaca: %v", err)
	}

	return Env{
		AppAddr:   envOr("APP_ADDR", ":8080"),
		GinMode:   strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:    envOr("DB_USER", "root"),
		DBPass:    os.Getenv("DB_PASS"),
		DBHost:    envOr("DB_HOST", "127.0.0.1:3306"),
		DBName:    envOr("DB_NAME", "fleetdesk"),
		JWTSecret: envOr("JWT_SECRET", "super-secret-key-change-me"),
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
