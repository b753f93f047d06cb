package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coolbeans/spellbook/pkg/library"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(catalog *library.Catalog, logger *log.Logger) *gin.Engine {
	h := NewSpellHandler(catalog)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger(logger))

	r.GET("/healthz", h.Liveness)

	apiGroup := r.Group("/api")
	apiGroup.GET("/spells", h.List)
	apiGroup.GET("/spells/:index", h.Get)
	apiGroup.GET("/classes/:class/spells", h.ByClass)
	apiGroup.GET("/stats", h.Stats)

	return r
}

// NewServer wraps the engine in an http.Server with the configured timeouts.
func NewServer(cfg ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}
