package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-studio/internal/ats"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/draft"
	"github.com/jonathan/resume-studio/internal/enhance"
	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/render"
	"github.com/jonathan/resume-studio/internal/resume"
	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/server/ratelimit"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/wizard"
)

// ResumeStore is the persistence surface the handlers need.
type ResumeStore interface {
	CreateResume(ctx context.Context, userID, resumeID string, doc resume.Document) error
	SaveResume(ctx context.Context, userID, resumeID string, doc resume.Document) error
	GetResume(ctx context.Context, userID, resumeID string) (*resume.Document, error)
	ListResumes(ctx context.Context, userID string) ([]store.Summary, error)
	DeleteResume(ctx context.Context, userID, resumeID string) error
	PatchResume(ctx context.Context, userID, resumeID string, patch map[string]any) (*resume.Document, error)
	ResumesCreated(ctx context.Context) (int64, error)
	GetProfile(ctx context.Context, userID string) (*store.Profile, error)
	SaveProfile(ctx context.Context, userID string, p store.Profile) error
}

// PDFExporter renders a document to PDF bytes plus a download filename.
type PDFExporter interface {
	ExportPDF(ctx context.Context, doc resume.Document, opts render.Options) ([]byte, string, error)
}

// Enhancer rewrites a description with the model.
type Enhancer interface {
	Enhance(ctx context.Context, description string) (string, error)
}

// ATSChecker analyzes an uploaded resume PDF.
type ATSChecker interface {
	Check(ctx context.Context, data []byte, contentType string) (*ats.Report, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       ResumeStore
	drafts      draft.Store
	wizard      *wizard.Wizard
	engine      *render.Engine
	exporter    PDFExporter
	enhancer    Enhancer
	checker     ATSChecker
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	closers     []func()
}

// Config holds server configuration
type Config struct {
	Port                 int
	DatabaseURL          string
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	APIKey               string
	ChromePath           string
	MaxExportConcurrency int64
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	// Connect to database
	documents, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := documents.Migrate(ctx); err != nil {
		documents.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Draft storage: Redis when configured, in-process otherwise
	var drafts draft.Store
	if cfg.RedisAddr != "" {
		redisStore, err := draft.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, 0)
		if err != nil {
			documents.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		drafts = redisStore
	} else {
		log.Println("REDIS_ADDR not set; drafts will not survive restarts")
		drafts = draft.NewMemoryStore()
	}

	engine, err := render.New()
	if err != nil {
		documents.Close()
		return nil, fmt.Errorf("failed to build render engine: %w", err)
	}

	s := &Server{
		store:    documents,
		drafts:   drafts,
		wizard:   wizard.New(drafts, documents),
		engine:   engine,
		exporter: export.New(engine, cfg.MaxExportConcurrency, cfg.ChromePath),
		closers:  []func(){documents.Close},
	}

	// AI features are optional; without an API key the endpoints report
	// themselves unavailable instead of failing startup.
	if cfg.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, nil, cfg.APIKey)
		if err != nil {
			documents.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.enhancer = enhance.New(client)
		s.checker = ats.New(client)
		s.closers = append(s.closers, func() {
			if err := client.Close(); err != nil {
				log.Printf("closing LLM client: %v", err)
			}
		})
	} else {
		log.Println("GEMINI_API_KEY not set; enhancement and ATS endpoints disabled")
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		documents.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.Handle("/", middleware.Auth(s.jwtService)(s.apiRoutes()))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Chrome exports can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// apiRoutes builds the authenticated portion of the router.
func (s *Server) apiRoutes() http.Handler {
	api := http.NewServeMux()

	// Resume documents
	api.HandleFunc("GET /resumes", s.handleListResumes)
	api.HandleFunc("POST /resumes", s.handleCreateResume)
	api.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	api.HandleFunc("PUT /resumes/{id}", s.handleSaveResume)
	api.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)
	api.HandleFunc("PATCH /resumes/{id}/fields", s.handlePatchFields)
	api.HandleFunc("POST /resumes/{id}/order", s.handleReorderSections)

	// Rendering and export
	api.HandleFunc("GET /resumes/{id}/preview", s.handlePreview)
	api.HandleFunc("GET /resumes/{id}/export", s.handleExport)

	// User settings
	api.HandleFunc("GET /profile", s.handleGetProfile)
	api.HandleFunc("PUT /profile", s.handleSaveProfile)

	// Builder wizard
	api.HandleFunc("GET /wizard", s.handleWizardState)
	api.HandleFunc("POST /wizard/fields", s.handleWizardField)
	api.HandleFunc("POST /wizard/next", s.handleWizardNext)
	api.HandleFunc("POST /wizard/previous", s.handleWizardPrevious)
	api.HandleFunc("POST /wizard/submit", s.handleWizardSubmit)

	// AI features
	api.HandleFunc("POST /enhance", s.handleEnhance)
	api.HandleFunc("POST /ats/check", s.handleATSCheck)

	return api
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	for _, close := range s.closers {
		close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStats returns public site statistics
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.ResumesCreated(r.Context())
	if err != nil {
		log.Printf("Error reading stats: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to read stats")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]int64{"resumesCreated": count})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For would only be
// safe behind a trusted proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
