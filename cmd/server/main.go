package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/AnshRaj112/portfolio-admin/internal/config"
	"github.com/AnshRaj112/portfolio-admin/internal/database"
	"github.com/AnshRaj112/portfolio-admin/internal/handlers"
	"github.com/AnshRaj112/portfolio-admin/internal/logger"
	"github.com/AnshRaj112/portfolio-admin/internal/metrics"
	"github.com/AnshRaj112/portfolio-admin/internal/middleware"
	"github.com/AnshRaj112/portfolio-admin/internal/routes"
	"github.com/AnshRaj112/portfolio-admin/internal/services"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	zlog := logger.New(cfg.LogLevel)
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	zlog.Info("Connecting to PostgreSQL...")
	db, err := database.ConnectPostgres(cfg.PostgresURI, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer database.DisconnectPostgres(db)
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("Failed to migrate schema", zap.Error(err))
	}
	zlog.Info("✅ PostgreSQL schema migrated")

	// Connect to Redis
	zlog.Info("Connecting to Redis...")
	rdb, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		zlog.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer database.DisconnectRedis(rdb)

	// Media ledger (optional)
	var mediaLog services.MediaRecorder = services.NopMediaLog{}
	if cfg.MongoURI != "" {
		client, mdb, err := database.ConnectMongo(cfg.MongoURI)
		if err != nil {
			zlog.Warn("⚠️  MongoDB unavailable, media ledger disabled", zap.Error(err))
		} else {
			defer database.DisconnectMongo(client)
			ledger := services.NewMongoMediaLog(mdb)
			if err := ledger.EnsureIndexes(ctx); err != nil {
				zlog.Warn("⚠️  failed to ensure media ledger indexes", zap.Error(err))
			}
			mediaLog = ledger
			zlog.Info("✅ Media ledger connected", zap.String("database", mdb.Name()))
		}
	}

	// Cloudinary serves the homepage, about page and about-page tool media
	var cdn services.CDN
	if cfg.CloudinaryConfigured() {
		svc, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			zlog.Warn("Failed to initialize Cloudinary", zap.Error(err))
		} else {
			cdn = svc
			zlog.Info("✅ Cloudinary service initialized")
		}
	} else {
		zlog.Warn("Cloudinary credentials not found. Homepage and about page uploads will not be available")
	}

	pages := services.NewPageCache(rdb, cfg.PageCacheTTL)
	hub := services.NewRevalidationHub(zlog)
	hub.Start(ctx, rdb)

	auth := services.NewAdminAuth(db, services.NewRedisSessionStore(rdb), zlog)
	if cfg.AdminPassword != "" {
		created, err := auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			zlog.Fatal("Failed to seed admin account", zap.Error(err))
		}
		if created {
			zlog.Info("✅ Admin account created", zap.String("username", cfg.AdminUsername))
		}
	}

	backoffice := services.NewBackoffice(services.BackofficeDeps{
		DB:        db,
		CDN:       cdn,
		Host:      services.NewMediaHostClient(cfg.PortfolioAPIURL, cfg.PortfolioAPIToken),
		Pages:     pages,
		Media:     mediaLog,
		Log:       zlog,
		PublicDir: cfg.PublicDir,
	})

	handlers.Init(handlers.Deps{
		Backoffice:     backoffice,
		Auth:           auth,
		Pages:          pages,
		Hub:            hub,
		Media:          mediaLog,
		Log:            zlog,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	// Setup router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(zlog))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost()) {
			r.Use(mw)
		}
		zlog.Info("✅ Production security enabled (security headers, host check, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.LoginRateLimit)
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	// In production /metrics needs METRICS_TOKEN and is not mounted without it
	switch {
	case cfg.MetricsToken != "":
		r.With(middleware.RequireToken(cfg.MetricsToken)).Handle("/metrics", metrics.Handler())
	case !cfg.IsProduction():
		r.Handle("/metrics", metrics.Handler())
	default:
		zlog.Warn("METRICS_TOKEN not set, /metrics disabled")
	}

	routes.SetupRoutes(r, middleware.RequireAdmin(auth, zlog))

	zlog.Info("📋 Registered routes", zap.Strings("routes", routes.RouteList))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("🚀 Portfolio admin API running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Graceful shutdown failed", zap.Error(err))
	}
}
