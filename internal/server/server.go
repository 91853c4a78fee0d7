package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adudhe01/runroom/internal/auth"
	"github.com/adudhe01/runroom/internal/catalog"
	"github.com/adudhe01/runroom/internal/database"
	"github.com/adudhe01/runroom/internal/handler"
	"github.com/adudhe01/runroom/internal/ledger"
	"github.com/adudhe01/runroom/internal/logger"
	"github.com/adudhe01/runroom/internal/metrics"
	"github.com/adudhe01/runroom/internal/repository"
	"github.com/adudhe01/runroom/internal/snapshot"
	"github.com/adudhe01/runroom/internal/strava"
	"github.com/adudhe01/runroom/internal/upload"
)

// Deps bundles everything the router needs.
type Deps struct {
	DBPool         database.Pool
	Users          repository.User
	Catalog        catalog.Service
	Ledger         ledger.Service
	Snapshots      snapshot.Builder
	StravaClient   strava.Client
	StravaSync     strava.SyncService
	Tokens         *auth.TokenManager
	Avatars        *upload.AvatarStore
	FrontendURL    string
	UploadDir      string
	TrustedProxies []string
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, deps Deps) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	limiter := NewRateLimiter()

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(deps.TrustedProxies, limiter))
	r.Use(RequestSizeLimitMiddleware(maxRequestBytes))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.FrontendURL, "http://localhost:5173"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Uploaded avatars, served statically
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir))))

	authHandler := handler.NewAuthHandler(deps.Users, deps.Tokens, deps.Avatars, deps.Snapshots)
	userHandler := handler.NewUserHandler(deps.Users, deps.Ledger, deps.Catalog, deps.Snapshots, deps.Avatars)
	shopHandler := handler.NewShopHandler(deps.Catalog)
	stravaHandler := handler.NewStravaHandler(deps.Users, deps.StravaClient, deps.StravaSync, deps.Tokens, deps.FrontendURL)

	requireAuth := deps.Tokens.Middleware

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.HandleRegister)
			r.Post("/login", authHandler.HandleLogin)
		})

		r.Route("/user", func(r chi.Router) {
			r.Get("/all", userHandler.HandleAllUsers)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", userHandler.HandleMe)
				r.Post("/buy-item", userHandler.HandleBuyItem)
				r.Post("/save-room-layout", userHandler.HandleSaveRoomLayout)
				r.Post("/update-profile-picture", userHandler.HandleUpdateProfilePicture)
			})
		})

		r.Route("/shop", func(r chi.Router) {
			r.Get("/items", shopHandler.HandleListItems)
			r.With(requireAuth).Post("/buy", userHandler.HandleBuyItem)
		})

		r.Route("/room", func(r chi.Router) {
			r.With(requireAuth).Post("/save", userHandler.HandleSaveRoomLayout)
		})

		r.Route("/strava", func(r chi.Router) {
			r.Get("/connect", stravaHandler.HandleConnect)
			r.Get("/callback", stravaHandler.HandleCallback)
			r.With(requireAuth).Post("/sync", stravaHandler.HandleSync)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: deps.DBPool,
	}
}

// Handler exposes the root handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
