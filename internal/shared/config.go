package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	JWTIssuer   string
	UploadRPS   int
	CacheTTL    time.Duration
	Storage     StorageConfig
}

// StorageConfig decides the media backend once at startup: a non-empty
// Bucket selects the object store, otherwise uploads land on local disk.
type StorageConfig struct {
	Bucket        string // object-store bucket; empty = filesystem backend
	PublicDomain  string // public domain prefixed to object keys
	UploadDir     string // filesystem root for the local backend
	PublicBaseURL string // URL prefix served for local files
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/andaman?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		JWTSecret:   env("JWT_SECRET", ""),
		JWTIssuer:   env("JWT_ISSUER", "andaman-market"),
		UploadRPS:   atoi("UPLOAD_RPS", 5),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		Storage: StorageConfig{
			Bucket:        env("MEDIA_BUCKET", ""),
			PublicDomain:  env("MEDIA_PUBLIC_DOMAIN", "https://media.andaman.example.com"),
			UploadDir:     env("UPLOAD_DIR", "./uploads"),
			PublicBaseURL: env("PUBLIC_BASE_URL", "http://localhost:8080/uploads"),
		},
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; vendor endpoints will reject all credentials")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
