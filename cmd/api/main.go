package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/propsight-ai/internal/application"
	appanalysis "github.com/bryanwahyu/propsight-ai/internal/application/analysis"
	appcalc "github.com/bryanwahyu/propsight-ai/internal/application/calculations"
	"github.com/bryanwahyu/propsight-ai/internal/config"
	domanalysis "github.com/bryanwahyu/propsight-ai/internal/domain/analysis"
	domcalc "github.com/bryanwahyu/propsight-ai/internal/domain/calculations"
	"github.com/bryanwahyu/propsight-ai/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/propsight-ai/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/propsight-ai/internal/infra/db/postgres"
	"github.com/bryanwahyu/propsight-ai/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/propsight-ai/internal/infra/storage"
	"github.com/bryanwahyu/propsight-ai/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database sesuai driver
	var (
		db   *sql.DB
		repo domcalc.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewCalculationRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewCalculationRepository(db)
	}
	defer db.Close()

	// init minio (opsional, hanya kalau endpoint diisi)
	var archive domanalysis.ArchiveStore
	if cfg.ArchiveEnabled() {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archive = store
	}

	// init AI client
	generator := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.MaxTokens)

	// init services
	analysisSvc := &appanalysis.Service{
		Generator: generator,
		Archive:   archive,
		Clock:     application.SystemClock{},
	}
	calcSvc := &appcalc.Service{
		Repo:  repo,
		Clock: application.SystemClock{},
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if cfg.RateLimit.Enabled {
		mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	}
	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(analysisSvc, calcSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // model calls are slow, give the analyze flow room
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
