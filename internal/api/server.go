package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/gatefield/gatefield/internal/config"
	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/journal"
	intnet "github.com/gatefield/gatefield/internal/network"
	"github.com/gatefield/gatefield/internal/runner"
)

// Server is the local control API.
type Server struct {
	cfg      *config.Config
	loop     *runner.Loop
	bus      *events.EventBus
	journal  *journal.Journal
	gatherer prometheus.Gatherer
	version  string

	upgrader   websocket.Upgrader
	router     *gin.Engine
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithJournal serves /api/sessions from j.
func WithJournal(j *journal.Journal) Option {
	return func(s *Server) { s.journal = j }
}

// WithMetrics serves /metrics from g.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// NewServer creates an API server controlling loop.
func NewServer(cfg *config.Config, loop *runner.Loop, bus *events.EventBus, opts ...Option) *Server {
	if cfg.Logging.Level == "debug" || cfg.Logging.Level == "trace" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		loop:    loop,
		bus:     bus,
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on the configured address until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := s.cfg.API.Addr()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	lc := intnet.ReuseAddrListenConfig()
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("API server error: %w", err)
	}

	log.Info().Str("addr", ln.Addr().String()).Msg("control API listening")

	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	})
	defer stop()

	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("API server error: %w", err)
	}
	return nil
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	router.Use(SecurityHeaders())

	origins := s.cfg.API.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	limiter := NewRateLimiter(s.cfg.API.RateLimitRPS)
	router.Use(limiter.Middleware())

	public := router.Group("/api/public")
	{
		public.GET("/ping", s.handlePing)
		public.GET("/version", s.handleVersion)
		public.GET("/host", s.handleHost)
	}

	monitor := router.Group("/api")
	{
		monitor.GET("/status", s.handleStatus)
		monitor.GET("/catalog", s.handleCatalog)
		monitor.GET("/sessions", s.handleSessions)
		monitor.GET("/events", s.handleEvents)
	}

	auth := RequireToken(s.cfg.API.Token)

	control := router.Group("/api/control")
	control.Use(auth)
	{
		control.POST("/connect", s.handleConnect)
		control.POST("/login", s.handleLogin)
		control.POST("/chars", s.handleChars)
		control.POST("/select", s.handleSelect)
		control.POST("/move", s.handleMove)
		control.POST("/chat", s.handleChat)
		control.POST("/disconnect", s.handleDisconnect)
	}

	configure := router.Group("/api/config")
	configure.Use(auth)
	{
		configure.GET("", s.handleGetConfig)
		configure.POST("/gate", s.handleSetGate)
	}

	if s.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
	})

	return router
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.API.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// Stop shuts the HTTP server down.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
