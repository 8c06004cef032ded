package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/restkit/codec"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/server/endpoint"
	"github.com/kbukum/restkit/server/middleware"
)

// Server is an HTTP server backed by Gin. Extra http.Handler mounts share
// the same port, and h2c serves HTTP/2 without TLS.
type Server struct {
	httpServer  *http.Server
	engine      *gin.Engine
	mux         *http.ServeMux
	config      Config
	codec       *codec.JSON
	log         *logger.Logger
	middlewares []middleware.Middleware

	mu       sync.RWMutex
	listener net.Listener
}

// New creates a new Server. No middleware is applied yet; call
// ApplyMiddleware or Use.
func New(cfg Config, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	s := &Server{
		engine: gin.New(),
		mux:    http.NewServeMux(),
		config: cfg,
		codec:  cfg.Codec(),
		log:    log.WithComponent("server"),
	}
	s.engine.Use(func(c *gin.Context) {
		c.Set(codecKey, s.codec)
	})
	s.mux.Handle("/", s.engine)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}
	return s
}

// Engine returns the Gin engine for route registration.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Codec returns the codec response envelopes are written with.
func (s *Server) Codec() *codec.JSON {
	return s.codec
}

// Mount adds an http.Handler at pattern on the root ServeMux, next to Gin.
// Use a trailing slash for subtree matches.
func (s *Server) Mount(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
	s.log.Debug("Handler mounted", map[string]interface{}{
		"pattern": pattern,
	})
}

// Use appends server-level middleware. It wraps every mount, so it runs
// outside Gin's own chain.
func (s *Server) Use(mw ...middleware.Middleware) {
	s.middlewares = append(s.middlewares, mw...)
}

// Handler returns the full handler: server middleware around the mux,
// served over h2c.
func (s *Server) Handler() http.Handler {
	h := middleware.Chain(s.middlewares...)(s.mux)
	return h2c.NewHandler(h, &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	})
}

// Start binds the port and begins serving. It returns once the listener is
// bound; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.httpServer.Handler = s.Handler()

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Server error", map[string]interface{}{
				logger.FieldError: err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": listener.Addr().String(),
	})
	s.logRoutes()
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Running reports whether the server is bound.
func (s *Server) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listener != nil
}

// ApplyMiddleware installs the standard stack. Server level: request id,
// request logging, CORS and the body-size limit. Gin level: panic recovery,
// tracing and metrics, then bearer auth when enabled.
func (s *Server) ApplyMiddleware() {
	s.Use(
		middleware.RequestID(),
		middleware.RequestLogger(s.log),
		middleware.CORS(&s.config.CORS),
	)
	if s.config.MaxBodySize != "" {
		s.Use(middleware.BodySizeLimit(s.config.MaxBodySize))
	}

	s.engine.Use(middleware.Recovery(s.log), middleware.Observe())
	if s.config.Auth.Enabled {
		auth := s.config.Auth
		auth.SkipPaths = slices.Concat(auth.SkipPaths, systemPathList())
		s.engine.Use(middleware.Auth(auth))
	}
}

// RegisterDefaultEndpoints registers /health, /live, /ready and /info.
func (s *Server) RegisterDefaultEndpoints(serviceName string, checker endpoint.HealthChecker) {
	s.engine.GET("/health", Handle(endpoint.Health(serviceName, checker)))
	s.engine.GET("/live", Handle(endpoint.Live()))
	s.engine.GET("/ready", Handle(endpoint.Ready(checker)))
	s.engine.GET("/info", Handle(endpoint.Info(serviceName)))
}

// ApplyDefaults applies the standard middleware stack and registers the
// default endpoints.
func (s *Server) ApplyDefaults(serviceName string, checker endpoint.HealthChecker) {
	s.ApplyMiddleware()
	s.RegisterDefaultEndpoints(serviceName, checker)
}
