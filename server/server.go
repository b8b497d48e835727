// Package server exposes the engine's five §6 external interfaces over
// HTTP: calc_ball_landing, classify_batted_ball_type,
// resolve_hit_type_from_landing, evaluate_fielders, and simulate_at_bat.
// The core engine has no I/O of its own (§5); this package is the only
// place in the repository that talks to a database, a cache, or a
// socket.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	"sim-engine/audit"
)

// Config configures the diagnostic server, grounded on sim-engine's
// main.go NewConfig/getEnv shape.
type Config struct {
	Port       string
	Workers    int
	DBDSN      string
	RedisAddr  string
	EnableAudit bool
}

// NewConfig populates a Config from the environment, defaulting every
// field the way sim-engine's NewConfig does.
func NewConfig() *Config {
	return &Config{
		Port:        getEnv("PORT", "8090"),
		Workers:     runtime.NumCPU(),
		DBDSN:       getEnv("AUDIT_DSN", ""),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		EnableAudit: getEnv("AUDIT_DSN", "") != "",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Server is the diagnostic HTTP server. Unlike sim-engine's Server, it
// owns no SimulationEngine and no mandatory database: the audit store is
// nil when unconfigured and the cache is a no-op disabledCache when Redis
// is unreachable, so the diagnostics still work against a bare engine
// package with nothing wired in.
type Server struct {
	config     *Config
	router     *mux.Router
	httpServer *http.Server
	db         *pgxpool.Pool
	audit      *audit.Store
	cache      *responseCache
	stream     *evaluationStream
}

// NewServer wires the router and, if configured, the audit store and
// Redis cache. A database connection failure at startup is fatal when
// audit is enabled via Config, mirroring sim-engine's NewServer failing
// fast on a bad DSN; a Redis failure is never fatal and only logs a
// warning before the server runs uncached.
func NewServer(config *Config) (*Server, error) {
	s := &Server{
		config: config,
		router: mux.NewRouter(),
		stream: newEvaluationStream(),
	}

	if config.EnableAudit {
		dbConfig, err := pgxpool.ParseConfig(config.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to parse audit db config: %w", err)
		}
		db, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to audit database: %w", err)
		}
		if err := db.Ping(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to ping audit database: %w", err)
		}
		s.db = db
		s.audit = audit.NewStore(db)
	}

	cache, err := newResponseCache(config.RedisAddr)
	if err != nil {
		log.Printf("Warning: Redis cache unavailable at %s, running uncached: %v", config.RedisAddr, err)
		cache = disabledCache()
	}
	s.cache = cache

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.healthHandler).Methods("GET")

	v1 := s.router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/calc-ball-landing", s.calcBallLandingHandler).Methods("POST")
	v1.HandleFunc("/classify-batted-ball", s.classifyBattedBallHandler).Methods("POST")
	v1.HandleFunc("/resolve-hit-type", s.resolveHitTypeHandler).Methods("POST")
	v1.HandleFunc("/evaluate-fielders", s.evaluateFieldersHandler).Methods("POST")
	v1.HandleFunc("/simulate-at-bat", s.simulateAtBatHandler).Methods("POST")
	v1.HandleFunc("/evaluate-fielders/stream", s.stream.serveWS).Methods("GET")

	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoveryMiddleware)
}

// Start begins serving, wrapping the router in CORS and gzip compression
// exactly as api-gateway's Start does for its own mux.Router.
func (s *Server) Start() error {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		MaxAge:         600,
	})

	var handler http.Handler = c.Handler(s.router)
	handler = handlers.CompressHandler(handler)

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting diagnostic server on port %s with %d workers", s.config.Port, s.config.Workers)
	return s.httpServer.ListenAndServe()
}

// Shutdown closes every owned collaborator, mirroring sim-engine's
// Server.Shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down diagnostic server...")
	if s.db != nil {
		s.db.Close()
	}
	s.cache.close()
	s.stream.closeAll()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func contextWithTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 2*time.Second)
}

// Middleware, same shape as sim-engine's loggingMiddleware/recoveryMiddleware.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf("%s %s %d %v", r.Method, r.URL.Path, lrw.statusCode, time.Since(start))
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic recovered: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}
