package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitormoschetta/captionai/internal/config"
	"github.com/vitormoschetta/captionai/internal/gemini"
	"github.com/vitormoschetta/captionai/internal/logger"
	"github.com/vitormoschetta/captionai/internal/mcptool"
	"github.com/vitormoschetta/captionai/internal/service"
	"github.com/vitormoschetta/captionai/internal/web"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server holds the HTTP dependencies shared by the handlers.
type Server struct {
	Config         *config.Config
	CaptionService *service.CaptionService
	MCPServer      *mcp.Server
	Static         http.Handler
	Router         chi.Router
}

// NewServer builds the caption service and its surfaces from cfg. A missing
// API key is not fatal: the server starts and rejects caption requests.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	var generator gemini.Generator
	if cfg.APIKey == "" {
		slog.Warn("⚠️  GOOGLE_API_KEY not found in environment or .env file")
		slog.Warn("The application will not function correctly without an API key")
	} else {
		g, err := gemini.New(ctx, gemini.Options{
			Backend: cfg.Backend,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		generator = g
		slog.Info("✅ Gemini client initialized", "backend", cfg.Backend, "model", cfg.Model)
	}

	captions := service.NewCaptionService(generator,
		service.WithBackend(cfg.Backend),
		service.WithLogger(logger.Default()),
	)

	s := &Server{
		Config:         cfg,
		CaptionService: captions,
		Static:         (&web.Server{Dir: cfg.PublicDir}).Handler(),
	}
	if cfg.MCPEnabled {
		s.MCPServer = mcptool.NewServer(captions, Version)
	}
	return s, nil
}

// MaxBodyBytes caps JSON request bodies under /api.
const MaxBodyBytes = 100 << 10

// SetupRouter configures the chi routes and middlewares.
func (s *Server) SetupRouter(
	handleHealth func(http.ResponseWriter, *http.Request),
	handleCaption func(http.ResponseWriter, *http.Request),
) {
	r := chi.NewRouter()

	r.Use(SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Default().Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(Recovery)
	r.Use(Metrics)

	r.Get("/health", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequestSize(MaxBodyBytes))
		r.Post("/caption", handleCaption)
	})

	if s.MCPServer != nil {
		r.Handle("/mcp", mcptool.Handler(s.MCPServer))
	}

	static := s.Static
	if static == nil {
		static = http.NotFoundHandler()
	}
	r.Get("/*", static.ServeHTTP)

	s.Router = r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:        s.Config.Addr(),
		Handler:     s.Router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info(fmt.Sprintf("🚀 CaptionAI Bot server running on http://localhost%s", s.Config.Addr()))
		slog.Info("📌 Endpoints",
			"ui", "GET /",
			"caption", "POST /api/caption",
			"health", "GET /health",
			"metrics", "GET /metrics",
			"mcp_enabled", s.MCPServer != nil,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("🛑 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("✅ Server stopped gracefully")
	return nil
}
