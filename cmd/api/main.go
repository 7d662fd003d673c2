package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "andaman_market/internal/adapters/http_server"
	"andaman_market/internal/adapters/observability"
	redisad "andaman_market/internal/adapters/redis"
	"andaman_market/internal/app"
	"andaman_market/internal/auth"
	"andaman_market/internal/media"
	"andaman_market/internal/shared"
	mysqlrepo "andaman_market/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db: one lazily-pooled handle per process, reused by every request
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// media backend: chosen once from deployment config
	store, err := media.Select(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("media backend init failed")
	}
	log.Info().Str("backend", store.Name()).Msg("media backend selected")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	gate := app.NewAccessGate(repo)
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)
	v := app.NewVendorService(repo, cache, gate)
	u := app.NewUploadService(store, repo)
	verifier := auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	if cfg.Storage.Bucket == "" {
		// local backend: serve uploaded files straight from disk
		srv.Mount("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.UploadDir))))
	}
	srv.MountHandlers(&server.Handlers{Q: q, V: v, U: u, Gate: gate}, verifier, cfg.UploadRPS)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
