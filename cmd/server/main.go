package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/mpavlov90/snapfeed/internal/config"
	"github.com/mpavlov90/snapfeed/internal/database"
	"github.com/mpavlov90/snapfeed/internal/logger"
	"github.com/mpavlov90/snapfeed/internal/metrics"
	postgresrepo "github.com/mpavlov90/snapfeed/internal/repository/postgres"
	"github.com/mpavlov90/snapfeed/internal/service"
	"github.com/mpavlov90/snapfeed/internal/transport/http/handlers"
	"github.com/mpavlov90/snapfeed/internal/transport/http/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	// Database
	if err := database.Migrate(cfg); err != nil {
		log.Error("migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := database.Connect(cfg)
	if err != nil {
		log.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()
	log.Info("connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	postRepo := postgresrepo.NewPostRepo(pool)
	uow := postgresrepo.NewUnitOfWork(pool)

	// Services
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService)
	postService := service.NewPostService(postRepo, userRepo, uow, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	postHandler := handlers.NewPostHandler(postService, log)
	userHandler := handlers.NewUserHandler(postService, log)

	// Auth middleware
	auth := middleware.Auth(tokenService)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)

	// Protected
	mux.Handle("GET /posts", auth(http.HandlerFunc(postHandler.List)))
	mux.Handle("POST /posts", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("POST /like/{id}", auth(http.HandlerFunc(postHandler.Like)))
	mux.Handle("DELETE /posts/{id}", auth(http.HandlerFunc(postHandler.Delete)))
	mux.Handle("GET /user", auth(http.HandlerFunc(userHandler.Me)))

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Info("starting server", slog.String("addr", addr))

	handler := middleware.CORS(metrics.Middleware(mux))
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
