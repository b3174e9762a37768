package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/secretsanta/internal/auth"
	"github.com/mmynk/secretsanta/internal/config"
	"github.com/mmynk/secretsanta/internal/draw"
	"github.com/mmynk/secretsanta/internal/metrics"
	"github.com/mmynk/secretsanta/internal/middleware"
	"github.com/mmynk/secretsanta/internal/notify"
	"github.com/mmynk/secretsanta/internal/service"
	"github.com/mmynk/secretsanta/internal/storage/sqlite"
	"github.com/mmynk/secretsanta/internal/web"
	"github.com/mmynk/secretsanta/pkg/api"
	"github.com/mmynk/secretsanta/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)
	if cfg.UsingDevSecret() {
		slog.Warn("SANTA_JWT_SECRET not set, using the development secret")
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.Secret(), cfg.TokenTTL)

	santaSvc := service.NewSantaService(store, cfg.BaseURL,
		service.WithGenerator(draw.NewGenerator(draw.WithMaxAttempts(cfg.MaxAttempts))),
		service.WithMetrics(m),
		service.WithSender(notify.LogSender{Logger: slog.Default()}),
	)
	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, slog.Default())

	interceptors := connect.WithInterceptors(
		middleware.Logging(m),
		middleware.Auth(jwtManager, api.PublicProcedures...),
	)

	mux := http.NewServeMux()

	santaPath, santaHandler := api.NewSantaServiceHandler(santaSvc, interceptors)
	mux.Handle(santaPath, santaHandler)

	authPath, authHandler := api.NewAuthServiceHandler(authSvc, interceptors)
	mux.Handle(authPath, authHandler)

	webHandler, err := web.New(cfg.BaseURL, m)
	if err != nil {
		slog.Error("Failed to initialize web handler", "error", err)
		os.Exit(1)
	}
	webHandler.Register(mux)

	mux.Handle("GET /metrics", m.Handler())

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(loggedHandler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Connect server starting", "address", addr, "base_url", cfg.BaseURL)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		// The query can hold a share token, which reveals every pair.
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
